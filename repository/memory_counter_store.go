package repository

import (
	"context"
	"sync"
	"time"
)

type counter struct {
	value     int64
	expiresAt time.Time
}

// MemoryCounterStore is the in-process CounterStore test double. The server
// never uses it: the memory rate-limit backend keeps token buckets instead.
// Expired counters are only dropped by Len.
type MemoryCounterStore struct {
	mu   sync.Mutex
	data map[string]*counter
	now  func() time.Time
}

func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{
		data: make(map[string]*counter),
		now:  time.Now,
	}
}

func (m *MemoryCounterStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	c, ok := m.data[key]
	if !ok || !now.Before(c.expiresAt) {
		c = &counter{expiresAt: now.Add(window)}
		m.data[key] = c
	}
	c.value++
	return c.value, nil
}

// Len reports how many live counters are held.
func (m *MemoryCounterStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	n := 0
	for k, c := range m.data {
		if !now.Before(c.expiresAt) {
			delete(m.data, k)
			continue
		}
		n++
	}
	return n
}
