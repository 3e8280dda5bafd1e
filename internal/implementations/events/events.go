package events

import (
	"context"
	"encoding/json"
	"fmt"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/logging"
	"remindchat/internal/core/domain/reminder"
	"remindchat/internal/core/domain/user"
	"time"

	"github.com/r3labs/sse/v2"
)

const EVENT_REMINDER_FIRED = "reminder_fired"

// StreamID is the SSE stream a user subscribes to.
func StreamID(userID user.ID) string {
	return fmt.Sprintf("%d", userID)
}

type firedRecipient struct {
	Username string `json:"username"`
	Status   string `json:"status"`
}

type firedPayload struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Status      string           `json:"status"`
	DueAt       *time.Time       `json:"due_at"`
	IsRecurring bool             `json:"is_recurring"`
	Recurrence  string           `json:"recurrence"`
	Recipients  []firedRecipient `json:"recipients"`
	FiredAt     time.Time        `json:"fired_at"`
}

func encodeFired(event reminder.FiredEvent) ([]byte, error) {
	rem := event.Reminder.Reminder
	payload := firedPayload{
		ID:          int64(rem.ID),
		Title:       rem.Title,
		Status:      rem.Status.String(),
		IsRecurring: rem.IsRecurring,
		Recurrence:  rem.Cadence.String(),
		Recipients:  make([]firedRecipient, 0, len(event.Reminder.Recipients)),
		FiredAt:     event.FiredAt.UTC(),
	}
	if rem.DueAt.IsPresent {
		dueAt := rem.DueAt.Value.UTC()
		payload.DueAt = &dueAt
	}
	for _, r := range event.Reminder.Recipients {
		payload.Recipients = append(payload.Recipients, firedRecipient{
			Username: string(r.Username),
			Status:   r.Status.String(),
		})
	}
	return json.Marshal(payload)
}

// SSEPublisher pushes fired reminders to the owner's stream. Nothing is
// buffered for owners that are not connected.
type SSEPublisher struct {
	log       logging.Logger
	sseServer *sse.Server
}

func NewSSEPublisher(log logging.Logger, sseServer *sse.Server) *SSEPublisher {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	return &SSEPublisher{log: log, sseServer: sseServer}
}

func (p *SSEPublisher) PublishFired(ctx context.Context, event reminder.FiredEvent) error {
	streamID := StreamID(event.Reminder.Reminder.OwnerID)
	if !p.sseServer.StreamExists(streamID) {
		p.log.Debug(ctx, "Owner is not subscribed to events.", logging.Entry("streamID", streamID))
		return nil
	}
	data, err := encodeFired(event)
	if err != nil {
		return fmt.Errorf("could not encode fired event: %w", err)
	}
	p.sseServer.Publish(streamID, &sse.Event{Event: []byte(EVENT_REMINDER_FIRED), Data: data})
	return nil
}
