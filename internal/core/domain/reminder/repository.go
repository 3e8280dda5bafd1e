package reminder

import (
	"context"
	c "remindchat/internal/core/domain/common"
	"remindchat/internal/core/domain/user"
	"time"
)

type CreateInput struct {
	OwnerID     user.ID
	Title       string
	DueAt       c.Optional[time.Time]
	Status      Status
	Cadence     Cadence
	TimeOfDay   c.Optional[TimeOfDay]
	EndDate     c.Optional[time.Time]
	ScheduledAt c.Optional[time.Time]
	CreatedAt   time.Time
}

type ReadOptions struct {
	OwnerIDEquals   c.Optional[user.ID]
	StatusIn        c.Optional[[]Status]
	StatusNotEquals c.Optional[Status]
	TitleContains   c.Optional[string]
	OrderBy         OrderBy
	Limit           c.Optional[uint]
	Offset          uint
}

type UpdateInput struct {
	ID                  ID
	DoDueAtUpdate       bool
	DueAt               c.Optional[time.Time]
	DoStatusUpdate      bool
	Status              Status
	DoScheduledAtUpdate bool
	ScheduledAt         c.Optional[time.Time]
	DoCompletedAtUpdate bool
	CompletedAt         c.Optional[time.Time]
	DoCancelledAtUpdate bool
	CancelledAt         c.Optional[time.Time]
}

type ScheduleInput struct {
	ScheduledAt time.Time
	DueBefore   time.Time
}

type ReminderRepository interface {
	Create(ctx context.Context, input CreateInput) (Reminder, error)
	Lock(ctx context.Context, id ID) error
	GetByID(ctx context.Context, id ID) (ReminderWithRecipients, error)
	Read(ctx context.Context, options ReadOptions) ([]ReminderWithRecipients, error)
	Count(ctx context.Context, options ReadOptions) (uint, error)
	Update(ctx context.Context, input UpdateInput) (Reminder, error)
	Schedule(ctx context.Context, input ScheduleInput) ([]Reminder, error)
	Delete(ctx context.Context, id ID) error
}

type CreateRecipientsInput struct {
	ReminderID   ID
	RecipientIDs []user.ID
}

type RecipientRepository interface {
	Create(ctx context.Context, input CreateRecipientsInput) ([]Recipient, error)
	UpdateStatusByReminderID(ctx context.Context, reminderID ID, status RecipientStatus) error
}
