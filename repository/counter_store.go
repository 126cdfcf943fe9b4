package repository

import (
	"context"
	"time"
)

// CounterStore keeps short-lived counters keyed by client. Incr returns the
// value after incrementing; the first increment of a key starts its window.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}
