package respondfriendrequest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"remindchat/internal/core/domain/friend"
	service "remindchat/internal/core/services/respond_friend_request"
	"strings"
	"testing"

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
	result.Friend = friend.Friend{ID: input.FriendID, UserID: 2, FriendID: 1, Status: friend.StatusAccepted}
	return result, nil
}

func serve(s *stubService, friendID string, body string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Method(http.MethodPut, "/friends/{friendID}", New(s))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/friends/"+friendID, strings.NewReader(body)))
	return rec
}

func TestRespondFriendRequest(t *testing.T) {
	// Setup ---
	require := require.New(t)
	s := &stubService{}

	// Exercise ---
	rec := serve(s, "9", `{"action": "accept"}`)

	// Verify ---
	require.Equal(http.StatusOK, rec.Code)
	require.Equal(friend.ID(9), s.input.FriendID)
	require.Equal(friend.ActionAccept, s.input.Action)
	require.Contains(rec.Body.String(), `"status":"accepted"`)
}

func TestRespondFriendRequestErrors(t *testing.T) {
	cases := []struct {
		name   string
		id     string
		body   string
		err    error
		status int
	}{
		{name: "invalid id", id: "x", body: `{"action": "accept"}`, status: http.StatusBadRequest},
		{name: "invalid action", id: "9", body: `{"action": "maybe"}`, status: http.StatusBadRequest},
		{name: "missing action", id: "9", body: `{}`, status: http.StatusBadRequest},
		{name: "not found", id: "9", body: `{"action": "reject"}`, err: friend.ErrFriendDoesNotExist, status: http.StatusNotFound},
		{name: "permission", id: "9", body: `{"action": "reject"}`, err: friend.ErrFriendPermission, status: http.StatusForbidden},
		{name: "not pending", id: "9", body: `{"action": "accept"}`, err: friend.ErrNotPending, status: http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(&stubService{err: tc.err}, tc.id, tc.body)
			require.Equal(t, tc.status, rec.Code)
		})
	}
}
