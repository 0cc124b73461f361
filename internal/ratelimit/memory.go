package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Memory is a process-local sliding-window limiter.
type Memory struct {
	limit   int
	now     func() time.Time
	mu      sync.Mutex
	clients map[string][]time.Time
	done    chan struct{}
	once    sync.Once
}

// NewMemory creates a limiter allowing limit requests per key per Window and
// starts a goroutine that drops idle keys every cleanupEvery. Call Close to stop it.
func NewMemory(limit int, cleanupEvery time.Duration) *Memory {
	m := &Memory{
		limit:   limit,
		now:     time.Now,
		clients: make(map[string][]time.Time),
		done:    make(chan struct{}),
	}
	go m.cleanupLoop(cleanupEvery)
	return m
}

var _ Limiter = (*Memory)(nil)

// Allow records a hit for key if the window still has room.
func (m *Memory) Allow(_ context.Context, key string) (Decision, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	hits := prune(m.clients[key], now.Add(-Window))
	if len(hits) >= m.limit {
		m.clients[key] = hits
		retry := hits[0].Add(Window).Sub(now)
		return Decision{Allowed: false, RetryAfter: retry}, nil
	}
	m.clients[key] = append(hits, now)
	return Decision{Allowed: true}, nil
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (m *Memory) Close() error {
	m.once.Do(func() { close(m.done) })
	return nil
}

func (m *Memory) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

// sweep removes keys with no hits inside the current window.
func (m *Memory) sweep() {
	windowStart := m.now().Add(-Window)
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, hits := range m.clients {
		hits = prune(hits, windowStart)
		if len(hits) == 0 {
			delete(m.clients, key)
			continue
		}
		m.clients[key] = hits
	}
}

// prune filters in place, keeping timestamps after windowStart.
func prune(hits []time.Time, windowStart time.Time) []time.Time {
	valid := hits[:0]
	for _, ts := range hits {
		if ts.After(windowStart) {
			valid = append(valid, ts)
		}
	}
	return valid
}
