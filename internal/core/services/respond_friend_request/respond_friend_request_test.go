package respondfriendrequest

import (
	"context"
	"remindchat/internal/core/domain/friend"
	"remindchat/internal/core/domain/logging"
	uow "remindchat/internal/core/domain/unit_of_work"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	USER_1 = user.ID(1)
	USER_2 = user.ID(2)
	USER_3 = user.ID(3)
)

type testSuite struct {
	suite.Suite
	unitOfWork *uow.FakeUnitOfWork
	friends    *friend.FakeFriendRepository
	service    services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.unitOfWork = uow.NewFakeUnitOfWork()
	suite.friends = suite.unitOfWork.Context.FriendRepository
	suite.service = New(logging.NewFakeLogger(), suite.unitOfWork, time.Now)
}

func TestRespondFriendRequestService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) pending(from user.ID, to user.ID) friend.Friend {
	f, err := s.friends.Create(context.Background(), friend.CreateInput{UserID: from, FriendID: to, Status: friend.StatusPending})
	s.Require().Nil(err)
	return f
}

func (s *testSuite) TestAcceptCreatesMirror() {
	// Setup
	request := s.pending(USER_1, USER_2)

	// Exercise
	result, err := s.service.Run(context.Background(), Input{UserID: USER_2, FriendID: request.ID, Action: friend.ActionAccept})

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.Equal(request.ID, result.Friend.ID)
	assert.Equal(friend.StatusAccepted, result.Friend.Status)
	assert.Len(s.friends.Friends, 2)
	assert.Len(s.friends.Accepted(USER_1, USER_2), 2)
	assert.True(s.unitOfWork.Context.WasCommitCalled)
}

func (s *testSuite) TestAcceptUpgradesExistingMirror() {
	// Setup
	request := s.pending(USER_1, USER_2)
	s.pending(USER_2, USER_1)

	// Exercise
	_, err := s.service.Run(context.Background(), Input{UserID: USER_2, FriendID: request.ID, Action: friend.ActionAccept})

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.Len(s.friends.Friends, 2)
	assert.Len(s.friends.Accepted(USER_1, USER_2), 2)
}

func (s *testSuite) TestRejectRemovesRequest() {
	request := s.pending(USER_1, USER_2)

	result, err := s.service.Run(context.Background(), Input{UserID: USER_2, FriendID: request.ID, Action: friend.ActionReject})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(friend.StatusRejected, result.Friend.Status)
	assert.Empty(s.friends.Friends)
}

func (s *testSuite) TestInvalidAction() {
	request := s.pending(USER_1, USER_2)

	_, err := s.service.Run(context.Background(), Input{UserID: USER_2, FriendID: request.ID})

	assert := s.Require()
	assert.ErrorIs(err, friend.ErrParseAction)
	assert.Equal(friend.StatusPending, s.friends.Friends[0].Status)
}

func (s *testSuite) TestOnlyReceiverMayRespond() {
	request := s.pending(USER_1, USER_2)

	for _, userID := range []user.ID{USER_1, USER_3} {
		_, err := s.service.Run(context.Background(), Input{UserID: userID, FriendID: request.ID, Action: friend.ActionAccept})
		s.Require().ErrorIs(err, friend.ErrFriendPermission)
	}
	s.Require().False(s.unitOfWork.Context.WasCommitCalled)
}

func (s *testSuite) TestAlreadyAnswered() {
	ctx := context.Background()
	request := s.pending(USER_1, USER_2)
	_, err := s.service.Run(ctx, Input{UserID: USER_2, FriendID: request.ID, Action: friend.ActionAccept})
	s.Require().Nil(err)

	_, err = s.service.Run(ctx, Input{UserID: USER_2, FriendID: request.ID, Action: friend.ActionReject})

	s.Require().ErrorIs(err, friend.ErrNotPending)
}

func (s *testSuite) TestMissingRequest() {
	_, err := s.service.Run(context.Background(), Input{UserID: USER_2, FriendID: friend.ID(99), Action: friend.ActionAccept})

	s.Require().ErrorIs(err, friend.ErrFriendDoesNotExist)
}
