package http

import (
	"context"
	"time"

	"mortgage-risk/repository"
)

// WindowRateLimiter allows capacity requests per client in each fixed
// window, counting in a shared CounterStore so several instances enforce
// one limit.
type WindowRateLimiter struct {
	store    repository.CounterStore
	capacity int64
	window   time.Duration
}

func NewWindowRateLimiter(store repository.CounterStore, capacity int, window time.Duration) *WindowRateLimiter {
	return &WindowRateLimiter{
		store:    store,
		capacity: int64(capacity),
		window:   window,
	}
}

func (l *WindowRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := l.store.Incr(ctx, key, l.window)
	if err != nil {
		return false, err
	}
	return n <= l.capacity, nil
}
