package cancelreminder

import (
	"context"
	c "remindchat/internal/core/domain/common"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/logging"
	"remindchat/internal/core/domain/reminder"
	uow "remindchat/internal/core/domain/unit_of_work"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services"
	"remindchat/internal/core/services/auth"
	"time"
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
	now        func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	scheduler reminder.Scheduler,
	now func() time.Time,
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
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:        log,
		unitOfWork: unitOfWork,
		scheduler:  scheduler,
		now:        now,
	}
}

// Run cancels the reminder together with its recipient rows in one transaction.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", input.ReminderID))
		return result, err
	}
	defer uow.Rollback(ctx)

	if err := uow.Reminders().Lock(ctx, input.ReminderID); err != nil {
		return result, err
	}
	rem, err := uow.Reminders().GetByID(ctx, input.ReminderID)
	if err != nil {
		return result, err
	}
	if rem.Reminder.OwnerID != input.UserID {
		s.log.Warning(
			ctx,
			"Reminder cancellation by a non-owner.",
			logging.Entry("reminderID", input.ReminderID),
			logging.Entry("userID", input.UserID),
		)
		return result, reminder.ErrReminderPermission
	}
	if rem.Reminder.Status == reminder.StatusCancelled {
		s.log.Info(ctx, "Reminder is already cancelled.", logging.Entry("reminderID", input.ReminderID))
		return result, reminder.ErrReminderNotActive
	}

	now := s.now()
	updated, err := uow.Reminders().Update(ctx, reminder.UpdateInput{
		ID:                  input.ReminderID,
		DoStatusUpdate:      true,
		Status:              reminder.StatusCancelled,
		DoCancelledAtUpdate: true,
		CancelledAt:         c.NewOptional(now, true),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", input.ReminderID))
		return result, err
	}
	err = uow.ReminderRecipients().UpdateStatusByReminderID(ctx, input.ReminderID, reminder.RecipientStatusCancelled)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", input.ReminderID))
		return result, err
	}
	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", input.ReminderID))
		return result, err
	}

	s.log.Info(
		ctx,
		"Reminder cancelled.",
		logging.Entry("reminderID", input.ReminderID),
		logging.Entry("userID", input.UserID),
	)

	if err := s.scheduler.Cancel(ctx, input.ReminderID); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", input.ReminderID))
	}

	recipients := make([]reminder.Recipient, 0, len(rem.Recipients))
	for _, recipient := range rem.Recipients {
		recipient.Status = reminder.RecipientStatusCancelled
		recipients = append(recipients, recipient)
	}
	result.Reminder = reminder.ReminderWithRecipients{Reminder: updated, Recipients: recipients}
	return result, nil
}
