package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mortgage-risk/domain"
	"mortgage-risk/logger"
	"mortgage-risk/metrics"
	"mortgage-risk/repository"
	"mortgage-risk/service"
)

func newTestRouter(t *testing.T, limiter Limiter) http.Handler {
	t.Helper()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	log := logger.NewTestLogger(t)
	svc := service.NewAnalysisService(log, m)

	return NewRouter(RouterDeps{
		Handler:        NewAnalysisHandler(svc, log, domain.ModeBalanced),
		Logger:         log,
		Limiter:        limiter,
		LimiterBackend: "memory",
		Metrics:        m,
		MetricsPath:    "/metrics",
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, postJSON("/mortgage/analyze", `{}`))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/mortgage/presets", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_MetricsExposed(t *testing.T) {
	router := newTestRouter(t, nil)

	router.ServeHTTP(httptest.NewRecorder(), postJSON("/mortgage/analyze", `{"incomeDropPct": 60}`))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `mortgage_risk_analyses_total{label="High Risk",mode="balanced"} 1`)
	assert.Contains(t, body, `mortgage_risk_http_requests_total{code="200",route="/mortgage/analyze"} 1`)
}

func TestRouter_RateLimited(t *testing.T) {
	limiter := NewWindowRateLimiter(repository.NewMemoryCounterStore(), 2, time.Minute)
	router := newTestRouter(t, limiter)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, postJSON("/mortgage/analyze", `{}`))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Health checks are never limited.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
