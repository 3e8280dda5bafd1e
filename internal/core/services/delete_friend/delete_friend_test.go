package deletefriend

import (
	"context"
	"remindchat/internal/core/domain/friend"
	"remindchat/internal/core/domain/logging"
	uow "remindchat/internal/core/domain/unit_of_work"
	"remindchat/internal/core/domain/user"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	USER_1   = user.ID(1)
	USER_2   = user.ID(2)
	STRANGER = user.ID(3)
)

func TestDeleteBothDirections(t *testing.T) {
	// Setup
	assert := require.New(t)
	unitOfWork := uow.NewFakeUnitOfWork()
	friends := unitOfWork.Context.FriendRepository
	friends.AddMirrored(USER_1, USER_2)
	service := New(logging.NewFakeLogger(), unitOfWork)

	// Exercise
	result, err := service.Run(context.Background(), Input{UserID: USER_2, FriendID: friends.Friends[0].ID})

	// Verify
	assert.Nil(err)
	assert.Equal(int64(2), result.Deleted)
	assert.Empty(friends.Friends)
	assert.True(unitOfWork.Context.WasCommitCalled)
}

func TestDeleteMissingRelation(t *testing.T) {
	assert := require.New(t)
	service := New(logging.NewFakeLogger(), uow.NewFakeUnitOfWork())

	_, err := service.Run(context.Background(), Input{UserID: USER_1, FriendID: friend.ID(999)})

	assert.ErrorIs(err, friend.ErrFriendDoesNotExist)
}

func TestStrangerCannotDelete(t *testing.T) {
	// Setup
	assert := require.New(t)
	unitOfWork := uow.NewFakeUnitOfWork()
	friends := unitOfWork.Context.FriendRepository
	friends.AddMirrored(USER_1, USER_2)
	service := New(logging.NewFakeLogger(), unitOfWork)

	// Exercise
	_, err := service.Run(context.Background(), Input{UserID: STRANGER, FriendID: friends.Friends[0].ID})

	// Verify
	assert.ErrorIs(err, friend.ErrFriendPermission)
	assert.Len(friends.Friends, 2)
	assert.False(unitOfWork.Context.WasCommitCalled)
}
