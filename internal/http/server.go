package http

import (
	"context"
	stdhttp "net/http"
	"strings"

	"auth-service/internal/auth"
	"auth-service/internal/config"
	"auth-service/internal/domain/user"
	"auth-service/internal/http/handler"
	"auth-service/internal/http/middleware"
	"auth-service/pkg/metrics"
	"auth-service/pkg/profiling"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const (
	jsonKeyStatus    = "status"
	statusOK         = "ok"
	requestBodyLimit = "1M"
)

type ServerDependencies struct {
	Config         *config.Config
	Credentials    handler.CredentialResolver
	Tokens         handler.TokenCodec
	AuthMiddleware *auth.Middleware
	RoleGuard      *auth.RoleGuard
	AuditLogger    handler.AuditLogger
}

type Server struct {
	echo    *echo.Echo
	deps    *ServerDependencies
	metrics *metrics.Metrics
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(ParseLogLevel(deps.Config.Log.Level))

	e.HTTPErrorHandler = CustomHTTPErrorHandler

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Request ID first, so all logs have it
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.LoggerWithConfig(echomiddleware.LoggerConfig{
		Skipper: func(c echo.Context) bool { return c.Path() == "/health" },
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(requestBodyLimit))

	requestMetrics := metrics.New()
	e.Use(requestMetrics.Middleware())

	globalRateLimiter := middleware.NewGlobalRateLimiter()
	e.Use(globalRateLimiter.Middleware())

	strictRateLimiter := middleware.NewStrictRateLimiter()
	userRateLimiter := middleware.NewUserRateLimiter()

	authHandler := handler.NewAuthHandler(deps.Credentials, deps.Tokens, deps.AuditLogger)
	profileHandler := handler.NewProfileHandler()

	requireJWT := deps.AuthMiddleware.RequireJWT()
	limitUser := userRateLimiter.Middleware()
	guard := deps.RoleGuard

	e.GET("/health", healthCheck)

	authGroup := e.Group("/auth", strictRateLimiter.Middleware())
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/verify", authHandler.Verify)
	authGroup.GET("/me", profileHandler.Me, requireJWT, limitUser, guard.RequireRole(user.RoleAdmin, user.RoleUser))

	e.GET("/user/profile", profileHandler.UserProfile, requireJWT, limitUser, guard.RequireRole(user.RoleUser))
	e.GET("/admin/dashboard", profileHandler.AdminDashboard, requireJWT, limitUser, guard.RequireRole(user.RoleAdmin))

	requestMetrics.Register(e.Group("/metrics", requireJWT, limitUser, guard.RequireRole(user.RoleAdmin)))

	if deps.Config.Server.EnableProfiling {
		profiling.Register(e.Group("/debug", requireJWT, limitUser, guard.RequireRole(user.RoleAdmin)))
	}

	return &Server{
		echo:    e,
		deps:    deps,
		metrics: requestMetrics,
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	s.echo.ServeHTTP(w, r)
}

// ParseLogLevel maps a LOG_LEVEL value onto the echo logger's levels.
// Unknown values fall back to info.
func ParseLogLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

func healthCheck(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}
