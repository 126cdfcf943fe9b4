package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"mortgage-risk/domain"
)

func TestObserveAnalysis(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveAnalysis(domain.ModeBalanced, domain.LabelGood, 2*time.Millisecond)
	m.ObserveAnalysis(domain.ModeBalanced, domain.LabelGood, time.Millisecond)
	m.ObserveAnalysis(domain.ModeConservative, domain.LabelHighRisk, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues("balanced", "Good")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues("conservative", "High Risk")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.AnalysisDuration))
}

func TestObserveRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRequest("/mortgage/analyze", 200, 5*time.Millisecond)
	m.ObserveRequest("/mortgage/analyze", 429, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/mortgage/analyze", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/mortgage/analyze", "429")))
}

func TestRateLimiterCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRateLimited("memory")
	m.ObserveLimiterError("redis")
	m.ObserveLimiterError("redis")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimited.WithLabelValues("memory")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LimiterErrors.WithLabelValues("redis")))
}

func TestNew_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
