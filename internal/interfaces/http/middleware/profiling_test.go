package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mattilda/backend/internal/infrastructure/telemetry"
	"github.com/mattilda/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// labelsSeen records the route and method labels visible inside the handler.
type labelsSeen struct {
	route, method string
	routeOK       bool
}

func newProfiledRouter(cfg middleware.ProfilingConfig, seen *labelsSeen) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ProfilingWithConfig(cfg))
	handler := func(c *gin.Context) {
		seen.route, seen.routeOK = pprof.Label(c.Request.Context(), telemetry.ProfilingLabelRoute)
		seen.method, _ = pprof.Label(c.Request.Context(), telemetry.ProfilingLabelMethod)
		c.Status(http.StatusOK)
	}
	r.GET("/health", handler)
	r.GET("/swagger/*any", handler)
	r.GET("/api/v1/invoices/:id/payments", handler)
	r.POST("/api/v1/invoices/:id/payments", handler)
	return r
}

func TestDefaultProfilingConfig(t *testing.T) {
	cfg := middleware.DefaultProfilingConfig()

	assert.True(t, cfg.Enabled)
	assert.Contains(t, cfg.SkipPaths, "/health")
	assert.Contains(t, cfg.SkipPathPrefixes, "/swagger")
}

func TestProfilingMiddleware_Disabled(t *testing.T) {
	var seen labelsSeen
	r := newProfiledRouter(middleware.ProfilingConfig{Enabled: false}, &seen)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/invoices/abc/payments", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, seen.routeOK)
}

func TestProfilingMiddleware_LabelsRoutePattern(t *testing.T) {
	var seen labelsSeen
	r := newProfiledRouter(middleware.DefaultProfilingConfig(), &seen)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/invoices/0b4e/payments", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, seen.routeOK)
	assert.Equal(t, "/api/v1/invoices/:id/payments", seen.route)
	assert.Equal(t, http.MethodPost, seen.method)
}

func TestProfilingMiddleware_SkipPaths(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"health check", "/health"},
		{"swagger prefix", "/swagger/index.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen labelsSeen
			r := newProfiledRouter(middleware.DefaultProfilingConfig(), &seen)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.False(t, seen.routeOK, "skipped path should carry no labels")
		})
	}
}

func TestProfilingMiddleware_CustomSkipPaths(t *testing.T) {
	var seen labelsSeen
	cfg := middleware.ProfilingConfig{
		Enabled:          true,
		SkipPathPrefixes: []string{"/api/v1/invoices"},
	}
	r := newProfiledRouter(cfg, &seen)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/invoices/x/payments", nil))
	assert.False(t, seen.routeOK)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.True(t, seen.routeOK)
	assert.Equal(t, "/health", seen.route)
}

func TestProfilingMiddleware_UnmatchedRoute(t *testing.T) {
	r := gin.New()
	r.Use(middleware.Profiling())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
