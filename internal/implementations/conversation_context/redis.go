package conversationcontext

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"remindchat/internal/core/domain/conversation"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/reminder"
	"remindchat/internal/core/domain/user"
	"time"

	"github.com/go-redis/redis/v9"
)

const DEFAULT_TTL = 30 * time.Minute

func key(userID user.ID) string {
	return fmt.Sprintf("conversation::%d", userID)
}

// Redis stores one JSON snapshot per user and lets it expire after ttl.
type Redis struct {
	redisClient *redis.Client
	ttl         time.Duration
	now         func() time.Time
}

func NewRedis(redisClient *redis.Client, ttl time.Duration, now func() time.Time) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if ttl <= 0 {
		ttl = DEFAULT_TTL
	}
	return &Redis{redisClient: redisClient, ttl: ttl, now: now}
}

func (r *Redis) RecordList(ctx context.Context, userID user.ID, ids []reminder.ID) error {
	snapshot := conversation.Snapshot{ReminderIDs: ids, CapturedAt: r.now().UTC()}
	if snapshot.ReminderIDs == nil {
		snapshot.ReminderIDs = []reminder.ID{}
	}
	value, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not encode conversation snapshot: %w", err)
	}
	if err := r.redisClient.Set(ctx, key(userID), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("could not store conversation snapshot: %w", err)
	}
	return nil
}

func (r *Redis) ResolveIndex(ctx context.Context, userID user.ID, oneBasedIndex int) (reminder.ID, error) {
	value, err := r.redisClient.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return 0, conversation.ErrNoSuchIndex
	}
	if err != nil {
		return 0, fmt.Errorf("could not load conversation snapshot: %w", err)
	}
	var snapshot conversation.Snapshot
	if err := json.Unmarshal(value, &snapshot); err != nil {
		return 0, fmt.Errorf("could not decode conversation snapshot: %w", err)
	}
	return snapshot.At(oneBasedIndex)
}
