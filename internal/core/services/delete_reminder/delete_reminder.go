package deletereminder

import (
	"context"
	"errors"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/logging"
	"remindchat/internal/core/domain/reminder"
	uow "remindchat/internal/core/domain/unit_of_work"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services"
	"remindchat/internal/core/services/auth"
)

type Input struct {
	UserID     user.ID
	ReminderID reminder.ID
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	Reminder reminder.ReminderWithRecipients
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
	scheduler  reminder.Scheduler
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	scheduler reminder.Scheduler,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if scheduler == nil {
		panic(e.NewNilArgumentError("scheduler"))
	}
	return &service{
		log:        log,
		unitOfWork: unitOfWork,
		scheduler:  scheduler,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", input.ReminderID))
		return result, err
	}
	defer uow.Rollback(ctx)

	reminderRepository := uow.Reminders()
	rem, err := reminderRepository.GetByID(ctx, input.ReminderID)
	if err != nil {
		switch {
		case errors.Is(err, reminder.ErrReminderDoesNotExist):
			s.log.Info(ctx, "Reminder not found.", logging.Entry("reminderID", input.ReminderID))
		default:
			logging.Error(ctx, s.log, err, logging.Entry("reminderID", input.ReminderID))
		}
		return result, err
	}

	if rem.Reminder.OwnerID != input.UserID {
		s.log.Info(
			ctx,
			"Reminder belongs to another user.",
			logging.Entry("reminderID", input.ReminderID),
			logging.Entry("userID", input.UserID),
		)
		return result, reminder.ErrReminderPermission
	}

	if err := reminderRepository.Delete(ctx, rem.Reminder.ID); err != nil {
		if !errors.Is(err, reminder.ErrReminderDoesNotExist) {
			logging.Error(ctx, s.log, err, logging.Entry("reminderID", input.ReminderID))
		}
		return result, err
	}

	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", input.ReminderID))
		return result, err
	}

	s.log.Info(
		ctx,
		"Reminder has been successfully deleted.",
		logging.Entry("reminderID", rem.Reminder.ID),
		logging.Entry("userID", input.UserID),
	)

	if rem.Reminder.Status == reminder.StatusScheduled {
		if err := s.scheduler.Cancel(ctx, rem.Reminder.ID); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.Reminder.ID))
		}
	}

	result.Reminder = rem
	return result, nil
}
