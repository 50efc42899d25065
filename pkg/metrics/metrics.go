package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
)

// Metrics holds request counters for one server. Safe for concurrent use via
// atomics and a mutex.
type Metrics struct {
	totalRequests     int64
	activeRequests    int64
	totalErrors       int64
	totalLatencyMs    int64
	maxLatencyMs      int64
	startTime         time.Time
	endpointCounts    map[string]int64
	endpointLatencies map[string]int64 // total ms per endpoint
	statusCodes       map[int]int64
	mu                sync.Mutex
}

func New() *Metrics {
	return &Metrics{
		startTime:         time.Now(),
		endpointCounts:    make(map[string]int64),
		endpointLatencies: make(map[string]int64),
		statusCodes:       make(map[int]int64),
	}
}

// Middleware tracks request count, latency, active requests and error rates.
// Errors are handed to echo's error handler here so the recorded status is
// the one the client receives.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			atomic.AddInt64(&m.activeRequests, 1)
			defer atomic.AddInt64(&m.activeRequests, -1)
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			latencyMs := time.Since(start).Milliseconds()
			atomic.AddInt64(&m.totalRequests, 1)
			atomic.AddInt64(&m.totalLatencyMs, latencyMs)

			for {
				current := atomic.LoadInt64(&m.maxLatencyMs)
				if latencyMs <= current {
					break
				}
				if atomic.CompareAndSwapInt64(&m.maxLatencyMs, current, latencyMs) {
					break
				}
			}

			statusCode := c.Response().Status
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			endpoint := fmt.Sprintf("%s %s", c.Request().Method, path)

			m.mu.Lock()
			m.endpointCounts[endpoint]++
			m.endpointLatencies[endpoint] += latencyMs
			m.statusCodes[statusCode]++
			m.mu.Unlock()

			if statusCode >= http.StatusBadRequest {
				atomic.AddInt64(&m.totalErrors, 1)
			}

			return nil
		}
	}
}

// Snapshot is a point-in-time view of the counters
type Snapshot struct {
	TotalRequests  int64            `json:"total_requests"`
	ActiveRequests int64            `json:"active_requests"`
	TotalErrors    int64            `json:"total_errors"`
	ErrorRate      float64          `json:"error_rate_pct"`
	AvgLatencyMs   float64          `json:"avg_latency_ms"`
	MaxLatencyMs   int64            `json:"max_latency_ms"`
	RequestsPerSec float64          `json:"requests_per_sec"`
	UptimeSeconds  float64          `json:"uptime_seconds"`
	EndpointCounts map[string]int64 `json:"endpoint_counts"`
	EndpointAvgMs  map[string]int64 `json:"endpoint_avg_latency_ms"`
	StatusCodes    map[int]int64    `json:"status_codes"`
}

func (m *Metrics) Snapshot() Snapshot {
	total := atomic.LoadInt64(&m.totalRequests)
	errs := atomic.LoadInt64(&m.totalErrors)
	totalLatency := atomic.LoadInt64(&m.totalLatencyMs)

	var avgLatency, errorRate float64
	if total > 0 {
		avgLatency = float64(totalLatency) / float64(total)
		errorRate = float64(errs) / float64(total) * 100
	}

	m.mu.Lock()
	uptime := time.Since(m.startTime).Seconds()
	endpointCounts := make(map[string]int64, len(m.endpointCounts))
	endpointAvg := make(map[string]int64, len(m.endpointLatencies))
	for k, v := range m.endpointCounts {
		endpointCounts[k] = v
		if v > 0 {
			endpointAvg[k] = m.endpointLatencies[k] / v
		}
	}
	statusCodes := make(map[int]int64, len(m.statusCodes))
	for k, v := range m.statusCodes {
		statusCodes[k] = v
	}
	m.mu.Unlock()

	var rps float64
	if uptime > 0 {
		rps = float64(total) / uptime
	}

	return Snapshot{
		TotalRequests:  total,
		ActiveRequests: atomic.LoadInt64(&m.activeRequests),
		TotalErrors:    errs,
		ErrorRate:      errorRate,
		AvgLatencyMs:   avgLatency,
		MaxLatencyMs:   atomic.LoadInt64(&m.maxLatencyMs),
		RequestsPerSec: rps,
		UptimeSeconds:  uptime,
		EndpointCounts: endpointCounts,
		EndpointAvgMs:  endpointAvg,
		StatusCodes:    statusCodes,
	}
}

func (m *Metrics) Reset() {
	atomic.StoreInt64(&m.totalRequests, 0)
	atomic.StoreInt64(&m.totalErrors, 0)
	atomic.StoreInt64(&m.totalLatencyMs, 0)
	atomic.StoreInt64(&m.maxLatencyMs, 0)
	m.mu.Lock()
	m.endpointCounts = make(map[string]int64)
	m.endpointLatencies = make(map[string]int64)
	m.statusCodes = make(map[int]int64)
	m.startTime = time.Now()
	m.mu.Unlock()
}

// Register adds GET /requests and POST /reset to g. Callers guard g.
func (m *Metrics) Register(g *echo.Group) {
	g.GET("/requests", func(c echo.Context) error {
		return c.JSON(http.StatusOK, m.Snapshot())
	})
	g.POST("/reset", func(c echo.Context) error {
		m.Reset()
		return c.JSON(http.StatusOK, map[string]string{"status": "metrics_reset"})
	})
}
