package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

// allowScript prunes expired entries, counts the window and records the
// request in one step so concurrent callers cannot all pass the check.
//
// KEYS[1] window key
// ARGV: cutoff, limit, now, member, window in ms
// Returns {allowed, count before this request, oldest score or -1}.
var allowScript = redis.NewScript(`
redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
local count = redis.call('ZCARD', KEYS[1])
if count >= tonumber(ARGV[2]) then
	local oldest = redis.call('ZRANGE', KEYS[1], 0, 0, 'WITHSCORES')
	local first = -1
	if oldest[2] then
		first = tonumber(oldest[2])
	end
	return {0, count, first}
end
redis.call('ZADD', KEYS[1], ARGV[3], ARGV[4])
redis.call('PEXPIRE', KEYS[1], ARGV[5])
return {1, count, -1}
`)

// Redis is a sliding window limiter shared by every server instance. Each
// key is a sorted set of request timestamps.
type Redis struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRedis(client *redis.Client, limit int, window time.Duration) *Redis {
	if limit <= 0 {
		limit = 100
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Redis{client: client, limit: limit, window: window, now: time.Now}
}

func (r *Redis) Allow(ctx context.Context, key string) (Decision, error) {
	now := r.now()
	k := keyPrefix + key
	cutoff := now.Add(-r.window).UnixMicro()

	res, err := allowScript.Run(ctx, r.client, []string{k},
		cutoff,
		r.limit,
		now.UnixMicro(),
		uuid.NewString(),
		r.window.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit: %w", err)
	}
	if len(res) != 3 {
		return Decision{}, fmt.Errorf("rate limit: unexpected reply %v", res)
	}

	count := int(res[1])
	if res[0] == 0 {
		retry := r.window
		if res[2] >= 0 {
			retry = time.UnixMicro(res[2]).Add(r.window).Sub(now)
		}
		return Decision{Allowed: false, Limit: r.limit, RetryAfter: retry}, nil
	}

	return Decision{Allowed: true, Limit: r.limit, Remaining: r.limit - count - 1}, nil
}
