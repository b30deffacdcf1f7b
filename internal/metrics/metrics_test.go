package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsByRoute(t *testing.T) {
	m := New("test")
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/products/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusForbidden, "no")
	})

	for _, path := range []string{"/products/1", "/products/2", "/boom"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestTotal.WithLabelValues("GET", "/products/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestTotal.WithLabelValues("GET", "/boom", "403")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
}

func TestHandler_ServesRegistry(t *testing.T) {
	m := New("test")
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/metrics", m.Handler())
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `test_http_requests_total{method="GET",route="/ping",status="204"} 1`)
}
