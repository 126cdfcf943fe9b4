package http

import (
	"net/http"

	"mortgage-risk/logger"
)

// RouterDeps is everything NewRouter wires together. Limiter and the
// observers are optional.
type RouterDeps struct {
	Handler        *AnalysisHandler
	Logger         logger.Logger
	Limiter        Limiter
	LimiterBackend string
	Metrics        interface {
		RequestObserver
		RateLimitObserver
	}
	MetricsPath    string
	MetricsHandler http.Handler
}

func NewRouter(d RouterDeps) http.Handler {
	var (
		reqObs RequestObserver
		rlObs  RateLimitObserver
	)
	if d.Metrics != nil {
		reqObs, rlObs = d.Metrics, d.Metrics
	}

	wrap := func(route string, h http.HandlerFunc) http.Handler {
		var next http.Handler = h
		if d.Limiter != nil {
			next = RateLimitMiddleware(d.Limiter, d.LimiterBackend, d.Logger, rlObs, next)
		}
		return AccessLogMiddleware(d.Logger, reqObs, route, next)
	}

	mux := http.NewServeMux()
	mux.Handle("/mortgage/analyze", wrap("/mortgage/analyze", d.Handler.Analyze))
	mux.Handle("/mortgage/summary", wrap("/mortgage/summary", d.Handler.Summary))
	mux.Handle("/mortgage/presets", wrap("/mortgage/presets", d.Handler.Presets))
	mux.HandleFunc("/healthz", Health)

	if d.MetricsHandler != nil && d.MetricsPath != "" {
		mux.Handle(d.MetricsPath, d.MetricsHandler)
	}

	return RequestIDMiddleware(mux)
}
