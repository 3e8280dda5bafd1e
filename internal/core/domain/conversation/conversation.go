package conversation

import (
	"context"
	"errors"
	"remindchat/internal/core/domain/reminder"
	"remindchat/internal/core/domain/user"
	"time"
)

var ErrNoSuchIndex = errors.New("no such index in the last listing")

// Snapshot is the last reminder listing shown to a user.
type Snapshot struct {
	ReminderIDs []reminder.ID `json:"reminder_ids"`
	CapturedAt  time.Time     `json:"captured_at"`
}

// At resolves a one-based position.
func (s Snapshot) At(oneBasedIndex int) (reminder.ID, error) {
	if oneBasedIndex < 1 || oneBasedIndex > len(s.ReminderIDs) {
		return 0, ErrNoSuchIndex
	}
	return s.ReminderIDs[oneBasedIndex-1], nil
}

// ContextStore keeps one snapshot per user; a new listing replaces the old one.
type ContextStore interface {
	RecordList(ctx context.Context, userID user.ID, ids []reminder.ID) error
	ResolveIndex(ctx context.Context, userID user.ID, oneBasedIndex int) (reminder.ID, error)
}
