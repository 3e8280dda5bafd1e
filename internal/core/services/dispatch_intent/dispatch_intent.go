package dispatchintent

import (
	"context"
	"errors"
	"regexp"
	"remindchat/internal/core/domain/chat"
	c "remindchat/internal/core/domain/common"
	"remindchat/internal/core/domain/conversation"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/logging"
	"remindchat/internal/core/domain/reminder"
	"remindchat/internal/core/domain/reply"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services"
	cancelreminder "remindchat/internal/core/services/cancel_reminder"
	createreminder "remindchat/internal/core/services/create_reminder"
	listuserreminders "remindchat/internal/core/services/list_user_reminders"
	validaterecipients "remindchat/internal/core/services/validate_recipients"
	"strconv"
	"strings"
	"time"
)

var numberPattern = regexp.MustCompile(`\d+`)

type Input struct {
	User       user.User
	Text       string
	Extraction chat.Extraction
}

type Result struct {
	Intent chat.Intent
	Reply  string
}

type service struct {
	log                logging.Logger
	validateRecipients services.Service[validaterecipients.Input, validaterecipients.Result]
	createReminder     services.Service[createreminder.Input, createreminder.Result]
	listReminders      services.Service[listuserreminders.Input, listuserreminders.Result]
	cancelReminder     services.Service[cancelreminder.Input, cancelreminder.Result]
	contextStore       conversation.ContextStore
	now                func() time.Time
}

func New(
	log logging.Logger,
	validateRecipients services.Service[validaterecipients.Input, validaterecipients.Result],
	createReminder services.Service[createreminder.Input, createreminder.Result],
	listReminders services.Service[listuserreminders.Input, listuserreminders.Result],
	cancelReminder services.Service[cancelreminder.Input, cancelreminder.Result],
	contextStore conversation.ContextStore,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if validateRecipients == nil {
		panic(e.NewNilArgumentError("validateRecipients"))
	}
	if createReminder == nil {
		panic(e.NewNilArgumentError("createReminder"))
	}
	if listReminders == nil {
		panic(e.NewNilArgumentError("listReminders"))
	}
	if cancelReminder == nil {
		panic(e.NewNilArgumentError("cancelReminder"))
	}
	if contextStore == nil {
		panic(e.NewNilArgumentError("contextStore"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                log,
		validateRecipients: validateRecipients,
		createReminder:     createReminder,
		listReminders:      listReminders,
		cancelReminder:     cancelReminder,
		contextStore:       contextStore,
		now:                now,
	}
}

// Run always produces a reply. Unexpected failures are logged and replaced
// with the technical issue text, so the returned error is always nil.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	ex := input.Extraction
	result.Intent = ex.Intent

	var text string
	switch ex.Intent {
	case chat.IntentNeedTime:
		text = reply.NeedTime(strings.TrimSpace(ex.Title))
	case chat.IntentNeedContent:
		text = reply.NeedContent(ex.Reply)
	case chat.IntentPotentialReminder:
		text = reply.PotentialReminder(strings.TrimSpace(ex.Title))
	case chat.IntentCreate:
		text, err = s.create(ctx, input)
	case chat.IntentList:
		text, err = s.list(ctx, input)
	case chat.IntentStopNumber:
		text, err = s.stop(ctx, input)
	default:
		text = reply.WithCanned(ex.Reply, reply.SmallTalk)
	}
	if err != nil {
		logging.Error(
			ctx,
			s.log,
			err,
			logging.Entry("userID", input.User.ID),
			logging.Entry("intent", ex.Intent.String()),
		)
		text = reply.TechnicalIssue
	}

	s.log.Info(
		ctx,
		"Intent dispatched.",
		logging.Entry("userID", input.User.ID),
		logging.Entry("intent", ex.Intent.String()),
	)
	result.Reply = text
	return result, nil
}

func (s *service) create(ctx context.Context, input Input) (string, error) {
	ex := input.Extraction
	now := s.now()
	loc := input.User.Location()

	title := strings.TrimSpace(ex.Title)
	handles := chat.NormalizeHandles(ex.RecipientUsernames)
	if title == "" || len(handles) == 0 {
		mentions := chat.ParseMentions(input.Text)
		if len(handles) == 0 {
			handles = mentions.Handles
		}
		if title == "" {
			title = mentions.Cleaned
		}
	}

	repeat, err := reminder.ParseRepeatType(strings.TrimSpace(strings.ToLower(ex.Repeat)))
	if err != nil {
		s.log.Warning(ctx, "Unknown repeat type, treated as none.", logging.Entry("repeat", ex.Repeat))
		repeat = reminder.RepeatNone
	}
	resolution, err := reminder.Resolve(reminder.ResolveInput{
		DueAtRaw:  optionalString(ex.DueAtWIB),
		Repeat:    repeat,
		Interval:  ex.RepeatDetails.Interval,
		TimeOfDay: optionalString(ex.RepeatDetails.TimeOfDay),
		EndDate:   optionalString(ex.RepeatDetails.EndDate),
	}, now, loc)
	switch {
	case errors.Is(err, reminder.ErrMissingTime):
		return reply.WithCanned(ex.Reply, reply.SmallTalk), nil
	case errors.Is(err, reminder.ErrTimeInPast):
		return reply.TimeInPast, nil
	case errors.Is(err, reminder.ErrInvalidTime):
		s.log.Info(ctx, "Could not resolve time.", logging.Entry("dueAt", ex.DueAtWIB), logging.Entry("err", err))
		return reply.InvalidTime, nil
	case err != nil:
		return "", err
	}

	if title == "" {
		return reply.NeedContent(ex.Reply), nil
	}

	var recipients []user.User
	if len(handles) > 0 {
		validation, err := s.validateRecipients.Run(ctx, validaterecipients.Input{
			OwnerID: input.User.ID,
			Handles: handles,
		})
		if err != nil {
			return "", err
		}
		if !validation.IsValid() {
			return reply.RecipientProblems(validation.Unknown, validation.NotFriend), nil
		}
		recipients = validation.Valid
	}

	created, err := s.createReminder.Run(ctx, createreminder.Input{
		User:       input.User,
		Title:      title,
		Resolution: resolution,
		Recipients: recipients,
	})
	if err != nil {
		return "", err
	}

	return reply.Confirmation(reply.Created{
		Title:      created.Reminder.Reminder.Title,
		DueAt:      resolution.DueAt,
		Label:      resolution.Label(),
		Recipients: created.Reminder.RecipientHandles(),
	}, now, loc), nil
}

func (s *service) list(ctx context.Context, input Input) (string, error) {
	listed, err := s.listReminders.Run(ctx, listuserreminders.Input{
		UserID:  input.User.ID,
		OrderBy: reminder.OrderByDueAtAsc,
		AllRows: true,
	})
	if err != nil {
		return "", err
	}

	ids := make([]reminder.ID, 0, len(listed.Reminders))
	items := make([]reply.ListItem, 0, len(listed.Reminders))
	for _, rem := range listed.Reminders {
		ids = append(ids, rem.Reminder.ID)
		items = append(items, reply.ListItem{
			Title:      rem.Reminder.Title,
			DueAt:      rem.Reminder.DueAt,
			Label:      rem.Reminder.Cadence.Label(),
			Recipients: rem.RecipientHandles(),
		})
	}
	if err := s.contextStore.RecordList(ctx, input.User.ID, ids); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
	}
	return reply.List(items, input.User.Location()), nil
}

func (s *service) stop(ctx context.Context, input Input) (string, error) {
	index, ok := stopNumber(input)
	if !ok {
		return reply.NotFound(0), nil
	}

	reminderID, err := s.contextStore.ResolveIndex(ctx, input.User.ID, index)
	if errors.Is(err, conversation.ErrNoSuchIndex) {
		s.log.Info(ctx, "Stop index not in context.", logging.Entry("userID", input.User.ID), logging.Entry("index", index))
		return reply.NotFound(index), nil
	}
	if err != nil {
		return "", err
	}

	cancelled, err := s.cancelReminder.Run(ctx, cancelreminder.Input{
		UserID:     input.User.ID,
		ReminderID: reminderID,
	})
	switch {
	case errors.Is(err, reminder.ErrReminderDoesNotExist),
		errors.Is(err, reminder.ErrReminderNotActive),
		errors.Is(err, reminder.ErrReminderPermission):
		return reply.NotFound(index), nil
	case err != nil:
		return "", err
	}
	return reply.Cancelled(cancelled.Reminder.Reminder.Title, cancelled.Reminder.RecipientHandles()), nil
}

// stopNumber prefers the extracted slot and falls back to the first number in the text.
func stopNumber(input Input) (int, bool) {
	if input.Extraction.StopNumber.IsPresent {
		return input.Extraction.StopNumber.Value, input.Extraction.StopNumber.Value > 0
	}
	match := numberPattern.FindString(input.Text)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func optionalString(value string) c.Optional[string] {
	value = strings.TrimSpace(value)
	return c.NewOptional(value, value != "")
}
