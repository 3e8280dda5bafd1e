package getuserprofile

import (
	"context"
	c "remindchat/internal/core/domain/common"
	"remindchat/internal/core/domain/logging"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services/auth"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProfileOfAuthenticatedUser(t *testing.T) {
	// Setup
	users := user.NewFakeUserRepository()
	u := users.Add(user.User{
		Username:     c.NewHandle("budi"),
		Phone:        c.NewPhoneHandle("+6281100000001"),
		PasswordHash: c.NewOptional(user.PasswordHash("secret"), true),
		TimeZone:     "Asia/Jakarta",
	})
	tokens := user.NewFakeAccessTokens()
	token, err := tokens.IssueToken(u.ID, time.Now())
	require.Nil(t, err)
	service := auth.WithAuthentication[Input, Result](tokens, users, New(logging.NewFakeLogger()))

	// Exercise
	result, err := service.Run(auth.WithAccessToken(context.Background(), token), Input{})

	// Verify
	assert := require.New(t)
	assert.Nil(err)
	assert.Equal(u.ID, result.Profile.ID)
	assert.Equal(c.Handle("budi"), result.Profile.Username)
	assert.Equal("Asia/Jakarta", result.Profile.TimeZone)
}

func TestAnonymousInputIsRejected(t *testing.T) {
	_, err := New(logging.NewFakeLogger()).Run(context.Background(), Input{})
	require.ErrorIs(t, err, user.ErrInvalidAccessToken)
}
