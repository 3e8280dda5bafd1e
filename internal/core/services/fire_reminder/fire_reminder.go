package firereminder

import (
	"context"
	"errors"
	"math"
	"remindchat/internal/core/domain/chat"
	c "remindchat/internal/core/domain/common"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/logging"
	"remindchat/internal/core/domain/reminder"
	"remindchat/internal/core/domain/reply"
	uow "remindchat/internal/core/domain/unit_of_work"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services"
	"time"
)

type Input struct {
	ReminderID reminder.ID
	At         time.Time
}

type Result struct {
	Reminder reminder.ReminderWithRecipients
	Fired    bool
	Next     c.Optional[time.Time]
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
	sender     chat.MessageSender
	events     reminder.EventPublisher
	scheduler  reminder.Scheduler
	tombstones reminder.Tombstones
	now        func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	sender chat.MessageSender,
	events reminder.EventPublisher,
	scheduler reminder.Scheduler,
	tombstones reminder.Tombstones,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if events == nil {
		panic(e.NewNilArgumentError("events"))
	}
	if scheduler == nil {
		panic(e.NewNilArgumentError("scheduler"))
	}
	if tombstones == nil {
		panic(e.NewNilArgumentError("tombstones"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:        log,
		unitOfWork: unitOfWork,
		sender:     sender,
		events:     events,
		scheduler:  scheduler,
		tombstones: tombstones,
		now:        now,
	}
}

// Run delivers one due occurrence. Stale messages (cancelled, rescheduled or
// already delivered reminders) are dropped without error.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	marked, err := s.tombstones.IsMarked(ctx, input.ReminderID)
	if err != nil {
		s.log.Warning(
			ctx,
			"Could not check tombstone, falling back to the database.",
			logging.Entry("reminderID", input.ReminderID),
			logging.Entry("err", err),
		)
	}
	if marked {
		s.log.Info(ctx, "Reminder is cancelled, skip firing.", logging.Entry("reminderID", input.ReminderID))
		return result, nil
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", input.ReminderID))
		return result, err
	}
	defer uow.Rollback(ctx)

	reminderRepo := uow.Reminders()
	err = reminderRepo.Lock(ctx, input.ReminderID)
	if errors.Is(err, reminder.ErrReminderDoesNotExist) {
		s.log.Info(ctx, "Reminder does not exist anymore, skip firing.", logging.Entry("reminderID", input.ReminderID))
		return result, nil
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", input.ReminderID))
		return result, err
	}
	rem, err := reminderRepo.GetByID(ctx, input.ReminderID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", input.ReminderID))
		return result, err
	}
	result.Reminder = rem

	if rem.Reminder.Status != reminder.StatusScheduled {
		s.log.Info(
			ctx,
			"Reminder status is not scheduled, skip firing.",
			logging.Entry("reminderID", input.ReminderID),
			logging.Entry("status", rem.Reminder.Status.String()),
		)
		return result, nil
	}
	if !rem.Reminder.DueAt.IsPresent ||
		math.Abs(float64(rem.Reminder.DueAt.Value.Sub(input.At.Truncate(time.Second)))) > float64(time.Second) {
		s.log.Info(
			ctx,
			"Reminder due time changed, skip firing.",
			logging.Entry("reminderID", input.ReminderID),
			logging.Entry("at", input.At),
			logging.Entry("dueAt", rem.Reminder.DueAt.Value),
		)
		return result, nil
	}

	owner, err := uow.Users().GetByID(ctx, rem.Reminder.OwnerID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", input.ReminderID))
		return result, err
	}

	now := s.now()
	update := reminder.UpdateInput{ID: rem.Reminder.ID}
	if next, ok := rem.Reminder.NextFireAfter(now); ok {
		update.DoDueAtUpdate = true
		update.DueAt = c.NewOptional(next.UTC(), true)
		update.DoScheduledAtUpdate = true
		update.ScheduledAt = c.NewOptional(now, reminder.IsWithinSchedulingWindow(next, now))
		result.Next = c.NewOptional(next.UTC(), true)
	} else {
		update.DoStatusUpdate = true
		update.Status = reminder.StatusCompleted
		update.DoCompletedAtUpdate = true
		update.CompletedAt = c.NewOptional(now, true)
	}

	updated, err := reminderRepo.Update(ctx, update)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", input.ReminderID))
		return result, err
	}
	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", input.ReminderID))
		return result, err
	}
	result.Reminder.Reminder = updated

	if now.Sub(rem.Reminder.DueAt.Value) > reminder.MAX_FIRING_DELAY {
		s.log.Error(
			ctx,
			"Firing delay exceeded, skip delivery.",
			logging.Entry("reminderID", input.ReminderID),
			logging.Entry("dueAt", rem.Reminder.DueAt.Value),
		)
	} else {
		s.deliver(ctx, owner, rem, now)
		result.Fired = true
	}

	if result.Next.IsPresent && updated.ScheduledAt.IsPresent {
		if err := s.scheduler.RegisterFire(ctx, reminder.NewFireRequest(updated)); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("reminderID", updated.ID))
		}
	}

	s.log.Info(
		ctx,
		"Reminder fired.",
		logging.Entry("reminderID", input.ReminderID),
		logging.Entry("fired", result.Fired),
		logging.Entry("status", updated.Status.String()),
		logging.Entry("next", result.Next),
	)
	return result, nil
}

func (s *service) deliver(ctx context.Context, owner user.User, rem reminder.ReminderWithRecipients, now time.Time) {
	title := rem.Reminder.Title
	if err := s.sender.Send(ctx, owner.Phone, reply.Fired(title, c.Optional[c.Handle]{})); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.Reminder.ID), logging.Entry("to", owner.ID))
	}
	for _, recipient := range rem.ActiveRecipients() {
		text := reply.Fired(title, c.NewOptional(owner.Username, true))
		if err := s.sender.Send(ctx, recipient.Phone, text); err != nil {
			logging.Error(
				ctx,
				s.log,
				err,
				logging.Entry("reminderID", rem.Reminder.ID),
				logging.Entry("to", recipient.RecipientID),
			)
		}
	}

	err := s.events.PublishFired(ctx, reminder.FiredEvent{Reminder: rem, FiredAt: now})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.Reminder.ID))
	}
}
