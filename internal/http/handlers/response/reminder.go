package response

import (
	"remindchat/internal/core/domain/reminder"
	"time"
)

type Recipient struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Status   string `json:"status"`
}

type ReminderWithRecipients struct {
	ID          int64       `json:"id"`
	OwnerID     int64       `json:"owner_id"`
	Title       string      `json:"title"`
	DueAt       *time.Time  `json:"due_at"`
	Status      string      `json:"status"`
	IsRecurring bool        `json:"is_recurring"`
	RepeatType  string      `json:"repeat_type"`
	Interval    uint32      `json:"repeat_interval"`
	TimeOfDay   *string     `json:"time_of_day"`
	EndDate     *time.Time  `json:"end_date"`
	Recurrence  string      `json:"recurrence"`
	ScheduledAt *time.Time  `json:"scheduled_at"`
	CreatedAt   time.Time   `json:"created_at"`
	CompletedAt *time.Time  `json:"completed_at"`
	CancelledAt *time.Time  `json:"cancelled_at"`
	Recipients  []Recipient `json:"recipients"`
}

func (r *ReminderWithRecipients) FromDomainType(dr reminder.ReminderWithRecipients) {
	rem := dr.Reminder
	r.ID = int64(rem.ID)
	r.OwnerID = int64(rem.OwnerID)
	r.Title = rem.Title
	if rem.DueAt.IsPresent {
		r.DueAt = &rem.DueAt.Value
	}
	r.Status = rem.Status.String()
	r.IsRecurring = rem.IsRecurring
	r.RepeatType = reminder.RepeatNone.String()
	if rem.Cadence.IsRecurring() {
		r.RepeatType = rem.Cadence.Type.String()
		r.Interval = rem.Cadence.Interval
	}
	if rem.TimeOfDay.IsPresent {
		tod := rem.TimeOfDay.Value.String()
		r.TimeOfDay = &tod
	}
	if rem.EndDate.IsPresent {
		r.EndDate = &rem.EndDate.Value
	}
	r.Recurrence = rem.Cadence.Label()
	if rem.ScheduledAt.IsPresent {
		r.ScheduledAt = &rem.ScheduledAt.Value
	}
	r.CreatedAt = rem.CreatedAt
	if rem.CompletedAt.IsPresent {
		r.CompletedAt = &rem.CompletedAt.Value
	}
	if rem.CancelledAt.IsPresent {
		r.CancelledAt = &rem.CancelledAt.Value
	}
	r.Recipients = make([]Recipient, 0, len(dr.Recipients))
	for _, recipient := range dr.Recipients {
		r.Recipients = append(r.Recipients, Recipient{
			UserID:   int64(recipient.RecipientID),
			Username: string(recipient.Username),
			Status:   recipient.Status.String(),
		})
	}
}
