package events

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	c "remindchat/internal/core/domain/common"
	"remindchat/internal/core/domain/logging"
	"remindchat/internal/core/domain/reminder"
	"testing"
	"time"

	"github.com/r3labs/sse/v2"
	"github.com/stretchr/testify/require"
)

var Now = time.Date(2024, 3, 10, 5, 0, 0, 0, time.UTC)

func firedEvent() reminder.FiredEvent {
	return reminder.FiredEvent{
		Reminder: reminder.ReminderWithRecipients{
			Reminder: reminder.Reminder{
				ID:      7,
				OwnerID: 42,
				Title:   "minum obat",
				DueAt:   c.NewOptional(Now, true),
				Status:  reminder.StatusCompleted,
				Cadence: reminder.NoCadence,
			},
			Recipients: []reminder.Recipient{
				{ReminderID: 7, RecipientID: 2, Username: "budi", Status: reminder.RecipientStatusScheduled},
			},
		},
		FiredAt: Now,
	}
}

func TestEncodeFired(t *testing.T) {
	// Setup ---
	require := require.New(t)

	// Exercise ---
	data, err := encodeFired(firedEvent())

	// Verify ---
	require.Nil(err)
	var decoded map[string]interface{}
	require.Nil(json.Unmarshal(data, &decoded))
	require.EqualValues(7, decoded["id"])
	require.Equal("minum obat", decoded["title"])
	require.Equal("completed", decoded["status"])
	require.Equal("none", decoded["recurrence"])
	require.Equal("2024-03-10T05:00:00Z", decoded["due_at"])
	recipients := decoded["recipients"].([]interface{})
	require.Len(recipients, 1)
	require.Equal("budi", recipients[0].(map[string]interface{})["username"])
}

func TestPublishWithoutSubscriberIsNoop(t *testing.T) {
	require := require.New(t)
	server := sse.New()
	defer server.Close()
	log := logging.NewFakeLogger()

	err := NewSSEPublisher(log, server).PublishFired(context.Background(), firedEvent())

	require.Nil(err)
	require.False(server.StreamExists(StreamID(42)))
}

func TestPublishReachesOwnerStream(t *testing.T) {
	// Setup ---
	require := require.New(t)
	server := sse.New()
	defer server.Close()
	server.CreateStream(StreamID(42))
	httpServer := httptest.NewServer(server)
	defer httpServer.Close()

	// Exercise ---
	err := NewSSEPublisher(logging.NewFakeLogger(), server).PublishFired(context.Background(), firedEvent())
	require.Nil(err)

	// Verify ---
	received := make(chan *sse.Event, 1)
	client := sse.NewClient(httpServer.URL)
	go client.SubscribeChan(StreamID(42), received)
	defer client.Unsubscribe(received)

	select {
	case event := <-received:
		require.Equal(EVENT_REMINDER_FIRED, string(event.Event))
		require.Contains(string(event.Data), `"title":"minum obat"`)
	case <-time.After(5 * time.Second):
		require.Fail("event was not delivered")
	}
}
