package deletefriend

import (
	"context"
	"errors"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/friend"
	"remindchat/internal/core/domain/logging"
	uow "remindchat/internal/core/domain/unit_of_work"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services"
	"remindchat/internal/core/services/auth"
)

type Input struct {
	UserID   user.ID
	FriendID friend.ID
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	Deleted int64
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
}

func New(log logging.Logger, unitOfWork uow.UnitOfWork) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	return &service{log: log, unitOfWork: unitOfWork}
}

// Run removes the relation in both directions. Either side may do it.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("friendID", input.FriendID))
		return result, err
	}
	defer uow.Rollback(ctx)

	relation, err := uow.Friends().GetByID(ctx, input.FriendID)
	if err != nil {
		if !errors.Is(err, friend.ErrFriendDoesNotExist) {
			logging.Error(ctx, s.log, err, logging.Entry("friendID", input.FriendID))
		}
		return result, err
	}
	if relation.UserID != input.UserID && relation.FriendID != input.UserID {
		s.log.Warning(
			ctx,
			"Friend relation deletion by a stranger.",
			logging.Entry("friendID", input.FriendID),
			logging.Entry("userID", input.UserID),
		)
		return result, friend.ErrFriendPermission
	}

	deleted, err := uow.Friends().DeletePair(ctx, relation.UserID, relation.FriendID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("friendID", input.FriendID))
		return result, err
	}
	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("friendID", input.FriendID))
		return result, err
	}

	s.log.Info(
		ctx,
		"Friend relation deleted.",
		logging.Entry("friendID", input.FriendID),
		logging.Entry("userID", input.UserID),
		logging.Entry("rows", deleted),
	)
	result.Deleted = deleted
	return result, nil
}
