package validaterecipients

import (
	"context"
	"errors"
	c "remindchat/internal/core/domain/common"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/friend"
	"remindchat/internal/core/domain/logging"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services"
)

type Input struct {
	OwnerID user.ID
	Handles []c.Handle
}

type Result struct {
	Valid     []user.User
	Unknown   []c.Handle
	NotFriend []c.Handle
}

func (r Result) IsValid() bool {
	return len(r.Unknown) == 0 && len(r.NotFriend) == 0
}

type service struct {
	log              logging.Logger
	userRepository   user.UserRepository
	friendRepository friend.FriendRepository
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	friendRepository friend.FriendRepository,
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
	return &service{
		log:              log,
		userRepository:   userRepository,
		friendRepository: friendRepository,
	}
}

// Run classifies every handle as valid, unknown or not an accepted friend.
// Duplicates are dropped and order is preserved. The owner is never their own friend.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	seen := make(map[c.Handle]struct{}, len(input.Handles))
	for _, handle := range input.Handles {
		if handle == "" {
			continue
		}
		if _, ok := seen[handle]; ok {
			continue
		}
		seen[handle] = struct{}{}

		u, err := s.userRepository.GetByHandle(ctx, handle)
		if errors.Is(err, user.ErrUserDoesNotExist) {
			result.Unknown = append(result.Unknown, handle)
			continue
		}
		if err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("handle", handle))
			return result, err
		}
		if u.ID == input.OwnerID {
			result.NotFriend = append(result.NotFriend, handle)
			continue
		}

		isFriend, err := s.friendRepository.IsAcceptedFriend(ctx, input.OwnerID, u.ID)
		if err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("handle", handle))
			return result, err
		}
		if !isFriend {
			result.NotFriend = append(result.NotFriend, handle)
			continue
		}
		result.Valid = append(result.Valid, u)
	}

	if !result.IsValid() {
		s.log.Info(
			ctx,
			"Recipients rejected.",
			logging.Entry("ownerID", input.OwnerID),
			logging.Entry("unknown", result.Unknown),
			logging.Entry("notFriend", result.NotFriend),
		)
	}
	return result, nil
}
