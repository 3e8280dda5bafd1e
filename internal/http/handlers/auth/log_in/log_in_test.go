package login

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"remindchat/internal/core/domain/common"
	ratelimiter "remindchat/internal/core/domain/rate_limiter"
	"remindchat/internal/core/domain/user"
	login "remindchat/internal/core/services/log_in"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubService struct {
	input *login.Input
	err   error
}

func (s *stubService) Run(ctx context.Context, input login.Input) (result login.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	result.Token = "jwt"
	result.User = user.User{ID: 1, Username: input.Username, Phone: "+6281234567890"}
	return result, nil
}

func serve(service *stubService, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	New(service).ServeHTTP(rec, req)
	return rec
}

func TestLogIn(t *testing.T) {
	// Setup ---
	require := require.New(t)
	service := &stubService{}

	// Exercise ---
	rec := serve(service, `{"username": "@Budi", "password": "rahasia"}`)

	// Verify ---
	require.Equal(http.StatusOK, rec.Code)
	require.Equal(common.Handle("budi"), service.input.Username)
	require.Equal(user.RawPassword("rahasia"), service.input.Password)
	var result Result
	require.Nil(json.Unmarshal(rec.Body.Bytes(), &result))
	require.Equal("jwt", result.Token)
	require.Equal("budi", result.Profile.Username)
	require.NotContains(rec.Body.String(), "password")
}

func TestLogInErrors(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "malformed", body: `{`, status: http.StatusBadRequest},
		{name: "missing password", body: `{"username": "budi"}`, status: http.StatusBadRequest},
		{name: "invalid credentials", body: `{"username": "budi", "password": "x"}`, err: user.ErrInvalidCredentials, status: http.StatusUnauthorized},
		{name: "rate limit", body: `{"username": "budi", "password": "x"}`, err: ratelimiter.ErrRateLimitExceeded, status: http.StatusTooManyRequests},
		{name: "internal", body: `{"username": "budi", "password": "x"}`, err: errors.New("boom"), status: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(&stubService{err: tc.err}, tc.body)
			require.Equal(t, tc.status, rec.Code)
			require.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}
