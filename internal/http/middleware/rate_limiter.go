package middleware

import (
	"net/http"
	"strconv"
	"sync"

	"auth-service/internal/auth"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	headerRateLimitLimit     = "X-RateLimit-Limit"
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRetryAfter         = "Retry-After"

	msgRateLimitExceeded = "Rate limit exceeded."
)

// RateLimiter implements token bucket rate limiting per caller
type RateLimiter struct {
	limiters sync.Map // key -> *rate.Limiter
	rate     rate.Limit
	burst    int
}

// NewRateLimiter creates a limiter allowing requestsPerSecond with the given
// burst for each caller key.
func NewRateLimiter(requestsPerSecond int, burst int) *RateLimiter {
	return &RateLimiter{
		rate:  rate.Limit(requestsPerSecond),
		burst: burst,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	if limiter, ok := rl.limiters.Load(key); ok {
		return limiter.(*rate.Limiter)
	}
	limiter, _ := rl.limiters.LoadOrStore(key, rate.NewLimiter(rl.rate, rl.burst))
	return limiter.(*rate.Limiter)
}

// Allow checks if a request should be allowed for the given key
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			limiter := rl.getLimiter(callerKey(c))
			limit := strconv.Itoa(rl.burst)

			if !limiter.Allow() {
				c.Response().Header().Set(headerRateLimitLimit, limit)
				c.Response().Header().Set(headerRateLimitRemaining, "0")
				c.Response().Header().Set(headerRetryAfter, "1")

				return echo.NewHTTPError(http.StatusTooManyRequests, msgRateLimitExceeded)
			}

			c.Response().Header().Set(headerRateLimitLimit, limit)
			c.Response().Header().Set(headerRateLimitRemaining, strconv.Itoa(int(limiter.Tokens())))

			return next(c)
		}
	}
}

// callerKey identifies an authenticated principal by username, anyone else
// by client IP. Limiters mounted after the bearer gate see the principal.
func callerKey(c echo.Context) string {
	if p, ok := auth.GetPrincipal(c); ok {
		return "user:" + p.Username
	}
	return "ip:" + c.RealIP()
}

// StrictRateLimiter is a more aggressive rate limiter for credential endpoints
type StrictRateLimiter struct {
	*RateLimiter
}

func NewStrictRateLimiter() *StrictRateLimiter {
	return &StrictRateLimiter{
		RateLimiter: NewRateLimiter(5, 10), // 5 req/sec, burst of 10
	}
}

// GlobalRateLimiter is a lenient rate limiter for general API usage
type GlobalRateLimiter struct {
	*RateLimiter
}

func NewGlobalRateLimiter() *GlobalRateLimiter {
	return &GlobalRateLimiter{
		RateLimiter: NewRateLimiter(100, 200), // 100 req/sec, burst of 200
	}
}

// UserRateLimiter limits each authenticated principal on protected routes.
// Mount it after the bearer gate.
type UserRateLimiter struct {
	*RateLimiter
}

func NewUserRateLimiter() *UserRateLimiter {
	return &UserRateLimiter{
		RateLimiter: NewRateLimiter(20, 40), // 20 req/sec, burst of 40
	}
}
