package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter admits at most Limit requests per key in any trailing Window.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// Memory is a process-local sliding window limiter.
type Memory struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu   sync.Mutex
	hits map[string][]time.Time
}

func NewMemory(limit int, window time.Duration) *Memory {
	if limit <= 0 {
		limit = 100
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Memory{
		limit:  limit,
		window: window,
		now:    time.Now,
		hits:   make(map[string][]time.Time),
	}
}

func (m *Memory) Allow(_ context.Context, key string) (Decision, error) {
	now := m.now()
	cutoff := now.Add(-m.window)

	m.mu.Lock()
	defer m.mu.Unlock()

	kept := prune(m.hits[key], cutoff)
	if len(kept) >= m.limit {
		m.hits[key] = kept
		return Decision{
			Allowed:    false,
			Limit:      m.limit,
			Remaining:  0,
			RetryAfter: kept[0].Add(m.window).Sub(now),
		}, nil
	}

	kept = append(kept, now)
	m.hits[key] = kept
	m.sweep(cutoff)

	return Decision{
		Allowed:   true,
		Limit:     m.limit,
		Remaining: m.limit - len(kept),
	}, nil
}

// sweep drops idle keys once the map grows past a bound. Caller holds mu.
func (m *Memory) sweep(cutoff time.Time) {
	if len(m.hits) < 4096 {
		return
	}
	for k, v := range m.hits {
		if kept := prune(v, cutoff); len(kept) == 0 {
			delete(m.hits, k)
		} else {
			m.hits[k] = kept
		}
	}
}

func prune(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	return hits[i:]
}
