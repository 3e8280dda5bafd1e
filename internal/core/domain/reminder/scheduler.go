package reminder

import (
	"context"
	"time"
)

// DURATION_FOR_SCHEDULING is how far ahead reminders are handed to the delayed queue.
const DURATION_FOR_SCHEDULING = 2 * time.Hour

// MAX_FIRING_DELAY bounds how late a fire may still be delivered.
const MAX_FIRING_DELAY = time.Hour

// IsWithinSchedulingWindow reports whether at is close enough to be handed over now.
func IsWithinSchedulingWindow(at time.Time, now time.Time) bool {
	return at.Sub(now) < DURATION_FOR_SCHEDULING
}

type FireRequest struct {
	ReminderID ID
	At         time.Time
	Cadence    Cadence
}

func NewFireRequest(r Reminder) FireRequest {
	return FireRequest{ReminderID: r.ID, At: r.DueAt.Value, Cadence: r.Cadence}
}

// Scheduler calls are idempotent.
type Scheduler interface {
	RegisterFire(ctx context.Context, request FireRequest) error
	Cancel(ctx context.Context, id ID) error
}

type Tombstones interface {
	Mark(ctx context.Context, id ID) error
	IsMarked(ctx context.Context, id ID) (bool, error)
}

type FiredEvent struct {
	Reminder ReminderWithRecipients
	FiredAt  time.Time
}

type EventPublisher interface {
	PublishFired(ctx context.Context, event FiredEvent) error
}
