package http

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"mortgage-risk/logger"
)

const RequestIDHeader = "X-Request-ID"

type ctxKey int

const requestIDKey ctxKey = iota

// RequestIDFromContext returns the id assigned by RequestIDMiddleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// RequestIDMiddleware keeps a caller supplied X-Request-ID or assigns a new
// one, and echoes it on the response.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestObserver receives one observation per finished request.
type RequestObserver interface {
	ObserveRequest(route string, status int, d time.Duration)
}

// AccessLogMiddleware logs every request and reports it to obs when obs is
// not nil. route is the registered pattern, not the raw path.
func AccessLogMiddleware(log logger.Logger, obs RequestObserver, route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		if obs != nil {
			obs.ObserveRequest(route, rec.status, elapsed)
		}
		log.Info("request handled", map[string]interface{}{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"durationMs": elapsed.Milliseconds(),
			"requestId":  RequestIDFromContext(r.Context()),
		})
	})
}

// RateLimitObserver counts rejected requests and backend failures.
type RateLimitObserver interface {
	ObserveRateLimited(backend string)
	ObserveLimiterError(backend string)
}

// RateLimitMiddleware rejects clients over their limit with 429. When the
// limiter backend fails the request is let through.
func RateLimitMiddleware(
	limiter Limiter,
	backend string,
	log logger.Logger,
	obs RateLimitObserver,
	next http.Handler,
) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)

		allowed, err := limiter.Allow(r.Context(), ip)
		if err != nil {
			if obs != nil {
				obs.ObserveLimiterError(backend)
			}
			log.WithError(err).Warn("rate limiter unavailable, allowing request", map[string]interface{}{
				"backend":   backend,
				"requestId": RequestIDFromContext(r.Context()),
			})
			allowed = true
		}

		if !allowed {
			if obs != nil {
				obs.ObserveRateLimited(backend)
			}
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
