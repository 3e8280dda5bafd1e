package me

import (
	"context"
	"net/http"
	"net/http/httptest"
	"remindchat/internal/core/domain/user"
	service "remindchat/internal/core/services/get_user_profile"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubService struct {
	err error
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	result.Profile = user.Profile{
		ID:        1,
		Username:  "budi",
		Phone:     "+6281234567890",
		TimeZone:  user.DEFAULT_TIME_ZONE,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	return result, nil
}

func TestMe(t *testing.T) {
	require := require.New(t)
	rr := httptest.NewRecorder()

	New(&stubService{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/profile/me", nil))

	require.Equal(http.StatusOK, rr.Code)
	require.JSONEq(
		`{"profile": {"id": 1, "username": "budi", "phone": "+6281234567890", "timezone": "Asia/Jakarta", "created_at": "2024-01-01T00:00:00Z"}}`,
		rr.Body.String(),
	)
}

func TestMeUnauthorized(t *testing.T) {
	rr := httptest.NewRecorder()

	New(&stubService{err: user.ErrInvalidAccessToken}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/profile/me", nil))

	require.Equal(t, http.StatusUnauthorized, rr.Code)
}
