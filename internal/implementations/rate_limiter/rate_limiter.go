package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/logging"
	ratelimiter "remindchat/internal/core/domain/rate_limiter"
	"time"

	"github.com/go-redis/redis/v9"
)

const KEY_PREFIX = "rate-limit::"

// Redis counts hits in fixed windows aligned to the wall clock.
type Redis struct {
	redisClient *redis.Client
	log         logging.Logger
	now         func() time.Time
}

func NewRedis(redisClient *redis.Client, log logging.Logger, now func() time.Time) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Redis{redisClient: redisClient, log: log, now: now}
}

func windowKey(key string, interval ratelimiter.Interval, now time.Time) (string, time.Duration) {
	switch interval {
	case ratelimiter.Hour:
		return fmt.Sprintf("%s%s::h%d", KEY_PREFIX, key, now.Unix()/3600), time.Hour
	case ratelimiter.Minute:
		return fmt.Sprintf("%s%s::m%d", KEY_PREFIX, key, now.Unix()/60), time.Minute
	default:
		panic("invalid rate limiting interval")
	}
}

func (r *Redis) CheckLimit(ctx context.Context, key string, limit ratelimiter.Limit) ratelimiter.Result {
	k, ttl := windowKey(key, limit.Interval, r.now())

	var incr *redis.IntCmd
	_, err := r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, ttl)
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return ratelimiter.NotAllowed()
	}
	if err != nil {
		logging.Error(
			ctx,
			r.log,
			fmt.Errorf("could not check rate limit: %w", err),
			logging.Entry("key", key),
		)
		return ratelimiter.Allowed()
	}
	if incr.Val() > int64(limit.Value) {
		return ratelimiter.NotAllowed()
	}
	return ratelimiter.Allowed()
}
