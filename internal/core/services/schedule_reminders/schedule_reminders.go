package schedulereminders

import (
	"context"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/logging"
	"remindchat/internal/core/domain/reminder"
	uow "remindchat/internal/core/domain/unit_of_work"
	"remindchat/internal/core/services"
	"time"
)

type Input struct{}

type Result struct {
	ScheduledIDs []reminder.ID
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

// Run claims reminders falling due within the scheduling window and hands
// them to the scheduler. A failed hand-over rolls back the whole claim so
// the next run picks the batch up again.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	defer uow.Rollback(ctx)

	now := s.now()
	claimed, err := uow.Reminders().Schedule(
		ctx,
		reminder.ScheduleInput{
			ScheduledAt: now,
			DueBefore:   now.Add(reminder.DURATION_FOR_SCHEDULING),
		},
	)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	s.log.Info(ctx, "Got reminders for scheduling.", logging.Entry("count", len(claimed)))
	scheduledIDs := make([]reminder.ID, 0, len(claimed))
	for ix, rem := range claimed {
		if err := s.scheduler.RegisterFire(ctx, reminder.NewFireRequest(rem)); err != nil {
			logging.Error(
				ctx,
				s.log,
				err,
				logging.Entry("index", ix),
				logging.Entry("reminderID", rem.ID),
				logging.Entry("scheduledIDs", scheduledIDs),
			)
			return result, err
		}
		scheduledIDs = append(scheduledIDs, rem.ID)
	}

	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	if len(scheduledIDs) > 0 {
		s.log.Info(
			ctx,
			"Reminders successfully scheduled.",
			logging.Entry("scheduledCount", len(scheduledIDs)),
			logging.Entry("scheduledIDs", scheduledIDs),
		)
	}
	result.ScheduledIDs = scheduledIDs
	return result, nil
}
