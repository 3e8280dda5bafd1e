package listuserreminders

import (
	"context"
	c "remindchat/internal/core/domain/common"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/logging"
	"remindchat/internal/core/domain/reminder"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services"
	"remindchat/internal/core/services/auth"
	"strings"
)

const DEFAULT_LIMIT = 100

type Input struct {
	UserID        user.ID
	StatusIn      c.Optional[[]reminder.Status]
	TitleContains c.Optional[string]
	OrderBy       reminder.OrderBy
	Limit         c.Optional[uint]
	Offset        uint
	// AllRows lifts DEFAULT_LIMIT; Limit is ignored.
	AllRows       bool
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	Reminders  []reminder.ReminderWithRecipients
	TotalCount uint
}

type service struct {
	log                logging.Logger
	reminderRepository reminder.ReminderRepository
}

func New(
	log logging.Logger,
	reminderRepository reminder.ReminderRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
	}
	return &service{
		log:                log,
		reminderRepository: reminderRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	limit := c.NewOptional[uint](DEFAULT_LIMIT, true)
	if input.Limit.IsPresent {
		limit.Value = input.Limit.Value
	}
	if input.AllRows {
		limit = c.Optional[uint]{}
	}
	orderBy := input.OrderBy
	if orderBy == reminder.OrderByNotSet {
		orderBy = reminder.OrderByDueAtAsc
	}

	readOptions := reminder.ReadOptions{
		OwnerIDEquals: c.NewOptional(input.UserID, true),
		StatusIn:      input.StatusIn,
		OrderBy:       orderBy,
		Limit:         limit,
		Offset:        input.Offset,
	}
	if !input.StatusIn.IsPresent {
		readOptions.StatusNotEquals = c.NewOptional(reminder.StatusCancelled, true)
	}
	if input.TitleContains.IsPresent && strings.TrimSpace(input.TitleContains.Value) != "" {
		readOptions.TitleContains = c.NewOptional(strings.TrimSpace(input.TitleContains.Value), true)
	}

	reminders, err := s.reminderRepository.Read(ctx, readOptions)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.UserID))
		return result, err
	}
	totalCount, err := s.reminderRepository.Count(ctx, readOptions)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.UserID))
		return result, err
	}

	s.log.Info(
		ctx,
		"User reminders successfully read.",
		logging.Entry("userID", input.UserID),
		logging.Entry("count", len(reminders)),
		logging.Entry("totalCount", totalCount),
	)
	result.Reminders = reminders
	result.TotalCount = totalCount
	return result, nil
}
