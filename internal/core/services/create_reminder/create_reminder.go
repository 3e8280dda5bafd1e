package createreminder

import (
	"context"
	c "remindchat/internal/core/domain/common"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/logging"
	"remindchat/internal/core/domain/reminder"
	uow "remindchat/internal/core/domain/unit_of_work"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services"
	"strings"
	"time"
)

const MAX_TITLE_LENGTH = 500

type Input struct {
	User       user.User
	Title      string
	Resolution reminder.Resolution
	Recipients []user.User
}

func (i Input) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return reminder.ErrReminderTitleEmpty
	}
	if i.Resolution.DueAt.IsZero() {
		return reminder.ErrMissingTime
	}
	return nil
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

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := input.Validate(); err != nil {
		return result, err
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
		return result, err
	}
	defer uow.Rollback(ctx)

	title := truncateTitle(strings.TrimSpace(input.Title))
	now := s.now()
	dueAt := input.Resolution.DueAt.UTC()
	createdReminder, err := uow.Reminders().Create(ctx, reminder.CreateInput{
		OwnerID:     input.User.ID,
		Title:       title,
		DueAt:       c.NewOptional(dueAt, true),
		Status:      reminder.StatusScheduled,
		Cadence:     reminder.NewCadence(input.Resolution.Cadence.Type, input.Resolution.Cadence.Interval),
		TimeOfDay:   input.Resolution.TimeOfDay,
		EndDate:     input.Resolution.EndDate,
		ScheduledAt: c.NewOptional(now, reminder.IsWithinSchedulingWindow(dueAt, now)),
		CreatedAt:   now,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
		return result, err
	}
	if err := createdReminder.Validate(); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", createdReminder.ID))
		return result, err
	}

	recipients := make([]reminder.Recipient, 0, len(input.Recipients))
	if len(input.Recipients) > 0 {
		recipientIDs := make([]user.ID, 0, len(input.Recipients))
		byID := make(map[user.ID]user.User, len(input.Recipients))
		for _, u := range input.Recipients {
			recipientIDs = append(recipientIDs, u.ID)
			byID[u.ID] = u
		}
		created, err := uow.ReminderRecipients().Create(ctx, reminder.CreateRecipientsInput{
			ReminderID:   createdReminder.ID,
			RecipientIDs: recipientIDs,
		})
		if err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("reminderID", createdReminder.ID))
			return result, err
		}
		for _, recipient := range created {
			recipient.Username = byID[recipient.RecipientID].Username
			recipient.Phone = byID[recipient.RecipientID].Phone
			recipients = append(recipients, recipient)
		}
	}

	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", createdReminder.ID))
		return result, err
	}

	s.log.Info(
		ctx,
		"Reminder created.",
		logging.Entry("reminderID", createdReminder.ID),
		logging.Entry("userID", input.User.ID),
		logging.Entry("cadence", createdReminder.Cadence.String()),
		logging.Entry("recipients", len(recipients)),
	)

	if createdReminder.ScheduledAt.IsPresent {
		if err := s.scheduler.RegisterFire(ctx, reminder.NewFireRequest(createdReminder)); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("reminderID", createdReminder.ID))
		}
	}

	result.Reminder = reminder.ReminderWithRecipients{Reminder: createdReminder, Recipients: recipients}
	return result, nil
}

// truncateTitle keeps at most MAX_TITLE_LENGTH runes.
func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= MAX_TITLE_LENGTH {
		return title
	}
	return string(runes[:MAX_TITLE_LENGTH])
}
