package profiling

import (
	"net/http"
	"net/http/pprof"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
)

// Register adds pprof endpoints under /pprof and a /memory snapshot to g.
// g must be mounted at /debug so pprof's index links resolve, and must be
// guarded by the caller.
func Register(g *echo.Group) {
	g.GET("/pprof/", echo.WrapHandler(http.HandlerFunc(pprof.Index)))
	g.GET("/pprof/cmdline", echo.WrapHandler(http.HandlerFunc(pprof.Cmdline)))
	g.GET("/pprof/profile", echo.WrapHandler(http.HandlerFunc(pprof.Profile)))
	g.GET("/pprof/symbol", echo.WrapHandler(http.HandlerFunc(pprof.Symbol)))
	g.GET("/pprof/trace", echo.WrapHandler(http.HandlerFunc(pprof.Trace)))
	for _, name := range []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"} {
		g.GET("/pprof/"+name, echo.WrapHandler(pprof.Handler(name)))
	}

	g.GET("/memory", func(c echo.Context) error {
		return c.JSON(http.StatusOK, GetMemoryStats())
	})
}

// MemoryStats is the current memory usage of the process
type MemoryStats struct {
	AllocMB      float64 `json:"alloc_mb"`
	TotalAllocMB float64 `json:"total_alloc_mb"`
	SysMB        float64 `json:"sys_mb"`
	NumGC        uint32  `json:"num_gc"`
	Goroutines   int     `json:"goroutines"`
	HeapObjects  uint64  `json:"heap_objects"`
	HeapInUseMB  float64 `json:"heap_in_use_mb"`
	StackInUseMB float64 `json:"stack_in_use_mb"`
	Timestamp    string  `json:"timestamp"`
}

func GetMemoryStats() MemoryStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemoryStats{
		AllocMB:      toMB(m.Alloc),
		TotalAllocMB: toMB(m.TotalAlloc),
		SysMB:        toMB(m.Sys),
		NumGC:        m.NumGC,
		Goroutines:   runtime.NumGoroutine(),
		HeapObjects:  m.HeapObjects,
		HeapInUseMB:  toMB(m.HeapInuse),
		StackInUseMB: toMB(m.StackInuse),
		Timestamp:    time.Now().Format(time.RFC3339),
	}
}

func toMB(b uint64) float64 {
	return float64(b) / 1024 / 1024
}
