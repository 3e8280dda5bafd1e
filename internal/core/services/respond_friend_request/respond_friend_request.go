package respondfriendrequest

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
	"time"
)

type Input struct {
	UserID   user.ID
	FriendID friend.ID
	Action   friend.Action
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	Friend friend.Friend
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
	now        func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:        log,
		unitOfWork: unitOfWork,
		now:        now,
	}
}

// Run accepts or rejects a pending request addressed to the user. Accepting
// also makes the mirrored edge accepted, rejecting removes the request.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.Action != friend.ActionAccept && input.Action != friend.ActionReject {
		return result, friend.ErrParseAction
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("friendID", input.FriendID))
		return result, err
	}
	defer uow.Rollback(ctx)

	request, err := uow.Friends().GetByID(ctx, input.FriendID)
	if err != nil {
		if !errors.Is(err, friend.ErrFriendDoesNotExist) {
			logging.Error(ctx, s.log, err, logging.Entry("friendID", input.FriendID))
		}
		return result, err
	}
	if request.FriendID != input.UserID {
		return result, friend.ErrFriendPermission
	}
	if request.Status != friend.StatusPending {
		return result, friend.ErrNotPending
	}

	switch input.Action {
	case friend.ActionAccept:
		result.Friend, err = s.accept(ctx, uow, request)
	case friend.ActionReject:
		err = uow.Friends().Delete(ctx, request.ID)
		request.Status = friend.StatusRejected
		result.Friend = request
	}
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
		"Friend request answered.",
		logging.Entry("friendID", input.FriendID),
		logging.Entry("action", input.Action.String()),
	)
	return result, nil
}

func (s *service) accept(ctx context.Context, uow uow.Context, request friend.Friend) (friend.Friend, error) {
	accepted, err := uow.Friends().UpdateStatus(ctx, request.ID, friend.StatusAccepted)
	if err != nil {
		return accepted, err
	}
	_, err = uow.Friends().Upsert(ctx, friend.CreateInput{
		UserID:    request.FriendID,
		FriendID:  request.UserID,
		Status:    friend.StatusAccepted,
		CreatedAt: s.now(),
	})
	return accepted, err
}
