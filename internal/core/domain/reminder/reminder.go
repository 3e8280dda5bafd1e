package reminder

import (
	c "remindchat/internal/core/domain/common"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/user"
	"time"
)

type ID int64

type Reminder struct {
	ID          ID
	OwnerID     user.ID
	Title       string
	DueAt       c.Optional[time.Time]
	Status      Status
	IsRecurring bool
	Cadence     Cadence
	TimeOfDay   c.Optional[TimeOfDay]
	EndDate     c.Optional[time.Time]
	ScheduledAt c.Optional[time.Time]
	CreatedAt   time.Time
	CompletedAt c.Optional[time.Time]
	CancelledAt c.Optional[time.Time]
}

func (r *Reminder) Validate() error {
	if r.IsRecurring != r.Cadence.IsRecurring() {
		return e.NewInvalidStateErrorf("recurrence flag does not match cadence of reminder %d", r.ID)
	}
	if r.IsRecurring && !r.DueAt.IsPresent && !r.TimeOfDay.IsPresent {
		return e.NewInvalidStateErrorf("recurring reminder %d has neither due time nor time of day", r.ID)
	}
	if r.Status == StatusCancelled && !r.CancelledAt.IsPresent {
		return e.NewInvalidStateError("CancelledAt must be set for cancelled reminders")
	}
	if r.Status == StatusCompleted && !r.CompletedAt.IsPresent {
		return e.NewInvalidStateError("CompletedAt must be set for completed reminders")
	}
	return nil
}

// NextFireAfter returns the first occurrence strictly after now, or false when
// the reminder does not recur or the occurrence lies beyond EndDate.
func (r *Reminder) NextFireAfter(now time.Time) (next time.Time, ok bool) {
	if !r.IsRecurring || !r.DueAt.IsPresent {
		return next, false
	}
	next = r.Cadence.NextFrom(r.DueAt.Value)
	for !next.After(now) {
		next = r.Cadence.NextFrom(next)
	}
	if r.EndDate.IsPresent && next.After(r.EndDate.Value) {
		return next, false
	}
	return next, true
}

type RecipientStatus struct {
	v string
}

func (s RecipientStatus) String() string {
	return s.v
}

var (
	RecipientStatusUnknown   = RecipientStatus{}
	RecipientStatusScheduled = RecipientStatus{v: "scheduled"}
	RecipientStatusCancelled = RecipientStatus{v: "cancelled"}
)

func ParseRecipientStatus(value string) (RecipientStatus, error) {
	switch value {
	case "scheduled":
		return RecipientStatusScheduled, nil
	case "cancelled":
		return RecipientStatusCancelled, nil
	default:
		return RecipientStatusUnknown, ErrParseStatus
	}
}

type Recipient struct {
	ID          int64
	ReminderID  ID
	RecipientID user.ID
	Username    c.Handle
	Phone       c.PhoneHandle
	Status      RecipientStatus
}

type ReminderWithRecipients struct {
	Reminder   Reminder
	Recipients []Recipient
}

func (r ReminderWithRecipients) RecipientHandles() []c.Handle {
	handles := make([]c.Handle, 0, len(r.Recipients))
	for _, recipient := range r.Recipients {
		handles = append(handles, recipient.Username)
	}
	return handles
}

func (r ReminderWithRecipients) ActiveRecipients() []Recipient {
	active := make([]Recipient, 0, len(r.Recipients))
	for _, recipient := range r.Recipients {
		if recipient.Status == RecipientStatusScheduled {
			active = append(active, recipient)
		}
	}
	return active
}
