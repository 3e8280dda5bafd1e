package sendfriendrequest

import (
	"context"
	"errors"
	c "remindchat/internal/core/domain/common"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/friend"
	"remindchat/internal/core/domain/logging"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services"
	"remindchat/internal/core/services/auth"
	"time"
)

type Input struct {
	UserID   user.ID
	Username c.Handle
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	Friend friend.Friend
}

type service struct {
	log              logging.Logger
	userRepository   user.UserRepository
	friendRepository friend.FriendRepository
	now              func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	friendRepository friend.FriendRepository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if friendRepository == nil {
		panic(e.NewNilArgumentError("friendRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:              log,
		userRepository:   userRepository,
		friendRepository: friendRepository,
		now:              now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.Username == "" {
		return result, friend.ErrUsernameRequired
	}

	target, err := s.userRepository.GetByHandle(ctx, input.Username)
	if err != nil {
		if !errors.Is(err, user.ErrUserDoesNotExist) {
			logging.Error(ctx, s.log, err, logging.Entry("username", input.Username))
		}
		return result, err
	}
	if target.ID == input.UserID {
		return result, friend.ErrSelfFriendship
	}

	created, err := s.friendRepository.Create(ctx, friend.CreateInput{
		UserID:    input.UserID,
		FriendID:  target.ID,
		Status:    friend.StatusPending,
		CreatedAt: s.now(),
	})
	if errors.Is(err, friend.ErrFriendRequestExists) {
		s.log.Info(
			ctx,
			"Friend request already exists.",
			logging.Entry("userID", input.UserID),
			logging.Entry("friendID", target.ID),
		)
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.UserID))
		return result, err
	}

	s.log.Info(
		ctx,
		"Friend request sent.",
		logging.Entry("userID", input.UserID),
		logging.Entry("friendID", target.ID),
	)
	result.Friend = created
	return result, nil
}
