package sendfriendrequest

import (
	"context"
	"net/http"
	"net/http/httptest"
	c "remindchat/internal/core/domain/common"
	"remindchat/internal/core/domain/friend"
	"remindchat/internal/core/domain/user"
	service "remindchat/internal/core/services/send_friend_request"
	"strings"
	"testing"

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
	result.Friend = friend.Friend{ID: 5, UserID: 1, FriendID: 2, Status: friend.StatusPending}
	return result, nil
}

func serve(s *stubService, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	New(s).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/friends", strings.NewReader(body)))
	return rec
}

func TestSendFriendRequest(t *testing.T) {
	// Setup ---
	require := require.New(t)
	s := &stubService{}

	// Exercise ---
	rec := serve(s, `{"username": "@Andi"}`)

	// Verify ---
	require.Equal(http.StatusCreated, rec.Code)
	require.Equal(c.Handle("andi"), s.input.Username)
	require.Contains(rec.Body.String(), `"status":"pending"`)
}

func TestSendFriendRequestErrors(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "malformed", body: `[`, status: http.StatusBadRequest},
		{name: "empty username", body: `{"username": ""}`, status: http.StatusBadRequest},
		{name: "unauthorized", body: `{"username": "andi"}`, err: user.ErrInvalidAccessToken, status: http.StatusUnauthorized},
		{name: "self", body: `{"username": "budi"}`, err: friend.ErrSelfFriendship, status: http.StatusBadRequest},
		{name: "unknown user", body: `{"username": "nobody"}`, err: user.ErrUserDoesNotExist, status: http.StatusNotFound},
		{name: "duplicate", body: `{"username": "andi"}`, err: friend.ErrFriendRequestExists, status: http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(&stubService{err: tc.err}, tc.body)
			require.Equal(t, tc.status, rec.Code)
		})
	}
}
