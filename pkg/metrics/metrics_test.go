package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsRequests(t *testing.T) {
	e := echo.New()
	m := New()
	e.Use(m.Middleware())
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/fail", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusForbidden, "no")
	})
	e.GET("/boom", func(c echo.Context) error { return errors.New("boom") })

	for _, path := range []string{"/ok", "/ok", "/fail", "/boom"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	snap := m.Snapshot()
	assert.Equal(t, int64(4), snap.TotalRequests)
	assert.Equal(t, int64(2), snap.TotalErrors)
	assert.Equal(t, int64(0), snap.ActiveRequests)
	assert.Equal(t, int64(2), snap.EndpointCounts["GET /ok"])
	assert.Equal(t, int64(2), snap.StatusCodes[http.StatusOK])
	assert.Equal(t, int64(1), snap.StatusCodes[http.StatusForbidden])
	assert.Equal(t, int64(1), snap.StatusCodes[http.StatusInternalServerError])
	assert.InDelta(t, 50.0, snap.ErrorRate, 0.001)
}

func TestRegisterAndReset(t *testing.T) {
	e := echo.New()
	m := New()
	e.Use(m.Middleware())
	m.Register(e.Group("/metrics"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics/requests", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "total_requests")

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/metrics/reset", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// The reset request itself is counted after the reset.
	assert.Equal(t, int64(1), m.Snapshot().TotalRequests)
}
