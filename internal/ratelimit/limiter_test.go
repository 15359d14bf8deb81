package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }
func newClock() *clock                   { return &clock{t: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)} }

func newRedisLimiter(t *testing.T, limit int, window time.Duration) *Redis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client, limit, window)
}

func TestLimiters_SlidingWindow(t *testing.T) {
	tests := []struct {
		name string
		make func(t *testing.T, c *clock) Limiter
	}{
		{
			name: "memory",
			make: func(t *testing.T, c *clock) Limiter {
				m := NewMemory(3, time.Minute)
				m.now = c.now
				return m
			},
		},
		{
			name: "redis",
			make: func(t *testing.T, c *clock) Limiter {
				r := newRedisLimiter(t, 3, time.Minute)
				r.now = c.now
				return r
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			c := newClock()
			l := tt.make(t, c)

			for i := 0; i < 3; i++ {
				d, err := l.Allow(ctx, "user-a")
				require.NoError(t, err)
				assert.True(t, d.Allowed)
				assert.Equal(t, 2-i, d.Remaining)
				c.advance(10 * time.Second)
			}

			d, err := l.Allow(ctx, "user-a")
			require.NoError(t, err)
			assert.False(t, d.Allowed)
			assert.Equal(t, 30*time.Second, d.RetryAfter)

			d, err = l.Allow(ctx, "user-b")
			require.NoError(t, err)
			assert.True(t, d.Allowed, "keys are independent")

			c.advance(31 * time.Second)
			d, err = l.Allow(ctx, "user-a")
			require.NoError(t, err)
			assert.True(t, d.Allowed, "oldest hit left the window")
			assert.Equal(t, 0, d.Remaining)
		})
	}
}

func TestLimiters_ConcurrentCallersShareLimit(t *testing.T) {
	tests := []struct {
		name string
		make func(t *testing.T) Limiter
	}{
		{name: "memory", make: func(*testing.T) Limiter { return NewMemory(5, time.Minute) }},
		{name: "redis", make: func(t *testing.T) Limiter { return newRedisLimiter(t, 5, time.Minute) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := tt.make(t)
			ctx := context.Background()

			var allowed atomic.Int64
			var wg sync.WaitGroup
			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					d, err := l.Allow(ctx, "k")
					if err == nil && d.Allowed {
						allowed.Add(1)
					}
				}()
			}
			wg.Wait()

			assert.Equal(t, int64(5), allowed.Load())
		})
	}
}

func TestRedis_DeniedReportsRetryAfter(t *testing.T) {
	c := newClock()
	r := newRedisLimiter(t, 1, time.Minute)
	r.now = c.now
	ctx := context.Background()

	d, err := r.Allow(ctx, "k")
	require.NoError(t, err)
	require.True(t, d.Allowed)

	c.advance(15 * time.Second)
	d, err = r.Allow(ctx, "k")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 1, d.Limit)
	assert.Equal(t, 45*time.Second, d.RetryAfter)
}

func TestMemory_Defaults(t *testing.T) {
	m := NewMemory(0, 0)
	assert.Equal(t, 100, m.limit)
	assert.Equal(t, time.Minute, m.window)
}
