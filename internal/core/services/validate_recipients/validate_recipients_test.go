package validaterecipients

import (
	"context"
	c "remindchat/internal/core/domain/common"
	"remindchat/internal/core/domain/friend"
	"remindchat/internal/core/domain/logging"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services"
	"testing"

	"github.com/stretchr/testify/suite"
)

type testSuite struct {
	suite.Suite
	logger  *logging.FakeLogger
	users   *user.FakeUserRepository
	friends *friend.FakeFriendRepository
	service services.Service[Input, Result]
	owner   user.User
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.users = user.NewFakeUserRepository()
	suite.friends = friend.NewFakeFriendRepository()
	suite.owner = suite.users.Add(user.User{Username: c.NewHandle("budi")})
	suite.service = New(suite.logger, suite.users, suite.friends)
}

func TestValidateRecipientsService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestAllFriends() {
	// Setup
	ctx := context.Background()
	siti := s.users.Add(user.User{Username: c.NewHandle("siti")})
	andi := s.users.Add(user.User{Username: c.NewHandle("andi")})
	s.friends.AddMirrored(s.owner.ID, siti.ID)
	s.friends.AddMirrored(s.owner.ID, andi.ID)

	// Exercise
	result, err := s.service.Run(ctx, Input{
		OwnerID: s.owner.ID,
		Handles: []c.Handle{"siti", "andi", "siti"},
	})

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.True(result.IsValid())
	assert.Len(result.Valid, 2)
	assert.Equal(siti.ID, result.Valid[0].ID)
	assert.Equal(andi.ID, result.Valid[1].ID)
}

func (s *testSuite) TestUnknownAndNotFriend() {
	// Setup
	ctx := context.Background()
	s.users.Add(user.User{Username: c.NewHandle("user2")})
	user3 := s.users.Add(user.User{Username: c.NewHandle("user3")})
	s.friends.AddMirrored(s.owner.ID, user3.ID)

	// Exercise
	result, err := s.service.Run(ctx, Input{
		OwnerID: s.owner.ID,
		Handles: []c.Handle{"user2", "user3", "unknown123"},
	})

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.False(result.IsValid())
	assert.Equal([]c.Handle{"unknown123"}, result.Unknown)
	assert.Equal([]c.Handle{"user2"}, result.NotFriend)
	assert.Len(result.Valid, 1)
}

func (s *testSuite) TestOneSidedFriendshipIsNotEnough() {
	// Setup
	ctx := context.Background()
	siti := s.users.Add(user.User{Username: c.NewHandle("siti")})
	_, err := s.friends.Create(ctx, friend.CreateInput{
		UserID:   s.owner.ID,
		FriendID: siti.ID,
		Status:   friend.StatusAccepted,
	})
	s.Require().Nil(err)

	// Exercise
	result, err := s.service.Run(ctx, Input{OwnerID: s.owner.ID, Handles: []c.Handle{"siti"}})

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.Equal([]c.Handle{"siti"}, result.NotFriend)
}

func (s *testSuite) TestOwnHandleIsNotFriend() {
	// Setup
	ctx := context.Background()
	siti := s.users.Add(user.User{Username: c.NewHandle("siti")})
	s.friends.AddMirrored(s.owner.ID, siti.ID)

	// Exercise
	result, err := s.service.Run(ctx, Input{OwnerID: s.owner.ID, Handles: []c.Handle{"budi", "siti"}})

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.False(result.IsValid())
	assert.Equal([]c.Handle{"budi"}, result.NotFriend)
	assert.Empty(result.Unknown)
	assert.Len(result.Valid, 1)
}

func (s *testSuite) TestNoHandles() {
	result, err := s.service.Run(context.Background(), Input{OwnerID: s.owner.ID})

	assert := s.Require()
	assert.Nil(err)
	assert.True(result.IsValid())
}
