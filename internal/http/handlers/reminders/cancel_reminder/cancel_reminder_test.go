package cancelreminder

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"remindchat/internal/core/domain/reminder"
	"remindchat/internal/core/domain/user"
	service "remindchat/internal/core/services/cancel_reminder"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	input *service.Input
	err   error
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	result.Reminder = reminder.ReminderWithRecipients{
		Reminder: reminder.Reminder{
			ID:        input.ReminderID,
			OwnerID:   1,
			Title:     "rapat",
			Status:    reminder.StatusCancelled,
			Cadence:   reminder.NoCadence,
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	return result, nil
}

func serve(s *stubService, reminderID string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Method(http.MethodPut, "/reminders/{reminderID}/cancel", New(s))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/reminders/"+reminderID+"/cancel", nil))
	return rec
}

func TestCancelReminder(t *testing.T) {
	// Setup ---
	require := require.New(t)
	s := &stubService{}

	// Exercise ---
	rec := serve(s, "42")

	// Verify ---
	require.Equal(http.StatusOK, rec.Code)
	require.Equal(reminder.ID(42), s.input.ReminderID)
	require.Contains(rec.Body.String(), `"status":"cancelled"`)
}

func TestCancelReminderErrors(t *testing.T) {
	cases := []struct {
		name   string
		id     string
		err    error
		status int
	}{
		{name: "invalid id", id: "abc", status: http.StatusBadRequest},
		{name: "zero id", id: "0", status: http.StatusBadRequest},
		{name: "unauthorized", id: "1", err: user.ErrInvalidAccessToken, status: http.StatusUnauthorized},
		{name: "not found", id: "1", err: reminder.ErrReminderDoesNotExist, status: http.StatusNotFound},
		{name: "permission", id: "1", err: reminder.ErrReminderPermission, status: http.StatusForbidden},
		{name: "not active", id: "1", err: reminder.ErrReminderNotActive, status: http.StatusUnprocessableEntity},
		{name: "internal", id: "1", err: errors.New("boom"), status: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(&stubService{err: tc.err}, tc.id)
			require.Equal(t, tc.status, rec.Code)
		})
	}
}
