package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Result is the outcome of a single Take call.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// SlidingWindow counts events per key in a Redis sorted set scored by
// nanosecond timestamps, so the window slides instead of resetting on a
// fixed boundary.
type SlidingWindow struct {
	Client *redis.Client
	Prefix string
}

// Take records one event for key and reports whether it fits in the window.
// A nil client or non-positive limit disables limiting entirely.
func (sw SlidingWindow) Take(ctx context.Context, key string, window time.Duration, limit int) (Result, error) {
	now := time.Now()
	res := Result{Allowed: true, Remaining: limit, ResetAt: now.Add(window)}
	if sw.Client == nil || limit <= 0 || window <= 0 {
		return res, nil
	}

	setKey := sw.Prefix + key
	cutoff := strconv.FormatInt(now.Add(-window).UnixNano(), 10)

	pipe := sw.Client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, setKey, "-inf", cutoff)
	pipe.ZAdd(ctx, setKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: uuid.NewString(),
	})
	count := pipe.ZCard(ctx, setKey)
	pipe.Expire(ctx, setKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{ResetAt: res.ResetAt}, err
	}

	used := int(count.Val())
	res.Allowed = used <= limit
	res.Remaining = limit - used
	if res.Remaining < 0 {
		res.Remaining = 0
	}
	return res, nil
}
