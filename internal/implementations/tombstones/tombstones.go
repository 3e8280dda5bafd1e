package tombstones

import (
	"context"
	"fmt"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/reminder"
	"time"

	"github.com/go-redis/redis/v9"
)

// TTL outlives any fire message that can already sit in the delayed exchange.
const TTL = reminder.DURATION_FOR_SCHEDULING + reminder.MAX_FIRING_DELAY + time.Hour

func key(id reminder.ID) string {
	return fmt.Sprintf("reminder::cancelled::%d", id)
}

type Redis struct {
	redisClient *redis.Client
}

func NewRedis(redisClient *redis.Client) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	return &Redis{redisClient: redisClient}
}

func (r *Redis) Mark(ctx context.Context, id reminder.ID) error {
	if err := r.redisClient.Set(ctx, key(id), 1, TTL).Err(); err != nil {
		return fmt.Errorf("could not mark reminder %d as cancelled: %w", id, err)
	}
	return nil
}

func (r *Redis) IsMarked(ctx context.Context, id reminder.ID) (bool, error) {
	n, err := r.redisClient.Exists(ctx, key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("could not check tombstone of reminder %d: %w", id, err)
	}
	return n > 0, nil
}
