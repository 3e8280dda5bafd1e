package reminder

import (
	"context"
	"database/sql"
	"errors"
	c "remindchat/internal/core/domain/common"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/reminder"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/db/sqlcgen"
	"time"

	"github.com/jackc/pgx/v4"
)

type PgxReminderRepository struct {
	queries *sqlcgen.Queries
}

func NewPgxReminderRepository(db sqlcgen.DBTX) *PgxReminderRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxReminderRepository{queries: sqlcgen.New(db)}
}

func (r *PgxReminderRepository) Create(
	ctx context.Context,
	input reminder.CreateInput,
) (rem reminder.Reminder, err error) {
	dbReminder, err := r.queries.CreateReminder(
		ctx,
		sqlcgen.CreateReminderParams{
			OwnerID:        int64(input.OwnerID),
			Title:          input.Title,
			DueAt:          encodeOptionalTime(input.DueAt),
			Status:         input.Status.String(),
			IsRecurring:    input.Cadence.IsRecurring(),
			RepeatType:     encodeRepeatType(input.Cadence),
			RepeatInterval: int32(input.Cadence.Interval),
			TimeOfDay: sql.NullString{
				String: input.TimeOfDay.Value.String(),
				Valid:  input.TimeOfDay.IsPresent,
			},
			EndDate:     encodeOptionalTime(input.EndDate),
			ScheduledAt: encodeOptionalTime(input.ScheduledAt),
			CreatedAt:   input.CreatedAt,
		},
	)
	if err != nil {
		return rem, err
	}
	return decodeReminder(dbReminder)
}

func (r *PgxReminderRepository) Lock(ctx context.Context, id reminder.ID) error {
	// The method works only within a DB transaction
	_, err := r.queries.LockReminder(ctx, int64(id))
	if errors.Is(err, pgx.ErrNoRows) {
		return reminder.ErrReminderDoesNotExist
	}
	return err
}

func (r *PgxReminderRepository) GetByID(
	ctx context.Context,
	id reminder.ID,
) (rem reminder.ReminderWithRecipients, err error) {
	dbReminder, err := r.queries.GetReminderByID(ctx, int64(id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rem, reminder.ErrReminderDoesNotExist
		}
		return rem, err
	}
	reminders, err := r.withRecipients(ctx, []sqlcgen.Reminder{dbReminder})
	if err != nil {
		return rem, err
	}
	return reminders[0], nil
}

func (r *PgxReminderRepository) Read(
	ctx context.Context,
	options reminder.ReadOptions,
) (reminders []reminder.ReminderWithRecipients, err error) {
	filter := encodeFilter(options)
	dbReminders, err := r.queries.ReadReminders(
		ctx,
		sqlcgen.ReadRemindersParams{
			AnyOwnerID:           filter.AnyOwnerID,
			OwnerIDEquals:        filter.OwnerIDEquals,
			AnyStatus:            filter.AnyStatus,
			StatusIn:             filter.StatusIn,
			AnyStatusNotEquals:   filter.AnyStatusNotEquals,
			StatusNotEquals:      filter.StatusNotEquals,
			AnyTitle:             filter.AnyTitle,
			TitleContains:        filter.TitleContains,
			OrderByDueAtAsc:      options.OrderBy == reminder.OrderByDueAtAsc,
			OrderByDueAtDesc:     options.OrderBy == reminder.OrderByDueAtDesc,
			OrderByCreatedAtDesc: options.OrderBy == reminder.OrderByCreatedAtDesc,
			AllRows:              !options.Limit.IsPresent,
			Limit:                int32(options.Limit.Value),
			Offset:               int32(options.Offset),
		},
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []reminder.ReminderWithRecipients{}, nil
		}
		return reminders, err
	}
	return r.withRecipients(ctx, dbReminders)
}

func (r *PgxReminderRepository) Count(ctx context.Context, options reminder.ReadOptions) (uint, error) {
	count, err := r.queries.CountReminders(ctx, encodeFilter(options))
	if err != nil {
		return 0, err
	}
	return uint(count), nil
}

func (r *PgxReminderRepository) Update(
	ctx context.Context,
	input reminder.UpdateInput,
) (rem reminder.Reminder, err error) {
	dbReminder, err := r.queries.UpdateReminder(
		ctx,
		sqlcgen.UpdateReminderParams{
			ID:                  int64(input.ID),
			DoDueAtUpdate:       input.DoDueAtUpdate,
			DueAt:               encodeOptionalTime(input.DueAt),
			DoStatusUpdate:      input.DoStatusUpdate,
			Status:              input.Status.String(),
			DoScheduledAtUpdate: input.DoScheduledAtUpdate,
			ScheduledAt:         encodeOptionalTime(input.ScheduledAt),
			DoCompletedAtUpdate: input.DoCompletedAtUpdate,
			CompletedAt:         encodeOptionalTime(input.CompletedAt),
			DoCancelledAtUpdate: input.DoCancelledAtUpdate,
			CancelledAt:         encodeOptionalTime(input.CancelledAt),
		},
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rem, reminder.ErrReminderDoesNotExist
		}
		return rem, err
	}
	return decodeReminder(dbReminder)
}

func (r *PgxReminderRepository) Schedule(
	ctx context.Context,
	input reminder.ScheduleInput,
) (reminders []reminder.Reminder, err error) {
	dbReminders, err := r.queries.ScheduleReminders(ctx, sqlcgen.ScheduleRemindersParams{
		ScheduledAt: sql.NullTime{Time: input.ScheduledAt, Valid: true},
		Status:      reminder.StatusScheduled.String(),
		DueBefore:   input.DueBefore,
	})
	if err != nil {
		return reminders, err
	}
	reminders = make([]reminder.Reminder, 0, len(dbReminders))
	for _, dbReminder := range dbReminders {
		rem, err := decodeReminder(dbReminder)
		if err != nil {
			return reminders, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, nil
}

func (r *PgxReminderRepository) Delete(ctx context.Context, id reminder.ID) error {
	count, err := r.queries.DeleteReminder(ctx, int64(id))
	if err != nil {
		return err
	}
	if count == 0 {
		return reminder.ErrReminderDoesNotExist
	}
	return nil
}

func (r *PgxReminderRepository) withRecipients(
	ctx context.Context,
	dbReminders []sqlcgen.Reminder,
) ([]reminder.ReminderWithRecipients, error) {
	result := make([]reminder.ReminderWithRecipients, 0, len(dbReminders))
	if len(dbReminders) == 0 {
		return result, nil
	}
	ids := make([]int64, 0, len(dbReminders))
	for _, dbReminder := range dbReminders {
		ids = append(ids, dbReminder.ID)
	}
	rows, err := r.queries.ListRecipientsByReminderIDs(ctx, ids)
	if err != nil {
		return result, err
	}
	recipients := make(map[reminder.ID][]reminder.Recipient, len(dbReminders))
	for _, row := range rows {
		recipient, err := decodeRecipient(row)
		if err != nil {
			return result, err
		}
		recipients[recipient.ReminderID] = append(recipients[recipient.ReminderID], recipient)
	}

	for _, dbReminder := range dbReminders {
		rem, err := decodeReminder(dbReminder)
		if err != nil {
			return result, err
		}
		result = append(result, reminder.ReminderWithRecipients{
			Reminder:   rem,
			Recipients: recipients[rem.ID],
		})
	}
	return result, nil
}

func encodeFilter(options reminder.ReadOptions) sqlcgen.CountRemindersParams {
	var statusIn []string
	if options.StatusIn.IsPresent {
		statusIn = make([]string, len(options.StatusIn.Value))
		for ix, status := range options.StatusIn.Value {
			statusIn[ix] = status.String()
		}
	}
	return sqlcgen.CountRemindersParams{
		AnyOwnerID:         !options.OwnerIDEquals.IsPresent,
		OwnerIDEquals:      int64(options.OwnerIDEquals.Value),
		AnyStatus:          !options.StatusIn.IsPresent,
		StatusIn:           statusIn,
		AnyStatusNotEquals: !options.StatusNotEquals.IsPresent,
		StatusNotEquals:    options.StatusNotEquals.Value.String(),
		AnyTitle:           !options.TitleContains.IsPresent,
		TitleContains:      options.TitleContains.Value,
	}
}

func encodeOptionalTime(at c.Optional[time.Time]) sql.NullTime {
	return sql.NullTime{Time: at.Value, Valid: at.IsPresent}
}

func encodeRepeatType(cadence reminder.Cadence) string {
	if !cadence.IsRecurring() {
		return reminder.RepeatNone.String()
	}
	return cadence.Type.String()
}

func decodeOptionalTime(at sql.NullTime) c.Optional[time.Time] {
	return c.NewOptional(at.Time.UTC(), at.Valid)
}

func decodeReminder(dbReminder sqlcgen.Reminder) (rem reminder.Reminder, err error) {
	rem.ID = reminder.ID(dbReminder.ID)
	rem.OwnerID = user.ID(dbReminder.OwnerID)
	rem.Title = dbReminder.Title
	rem.DueAt = decodeOptionalTime(dbReminder.DueAt)
	status, err := reminder.ParseStatus(dbReminder.Status)
	if err != nil {
		return rem, err
	}
	rem.Status = status
	repeatType, err := reminder.ParseRepeatType(dbReminder.RepeatType)
	if err != nil {
		return rem, err
	}
	rem.Cadence = reminder.NewCadence(repeatType, uint32(dbReminder.RepeatInterval))
	rem.IsRecurring = dbReminder.IsRecurring
	if dbReminder.TimeOfDay.Valid {
		tod, err := reminder.ParseTimeOfDay(dbReminder.TimeOfDay.String)
		if err != nil {
			return rem, err
		}
		rem.TimeOfDay = c.NewOptional(tod, true)
	}
	rem.EndDate = decodeOptionalTime(dbReminder.EndDate)
	rem.ScheduledAt = decodeOptionalTime(dbReminder.ScheduledAt)
	rem.CreatedAt = dbReminder.CreatedAt.UTC()
	rem.CompletedAt = decodeOptionalTime(dbReminder.CompletedAt)
	rem.CancelledAt = decodeOptionalTime(dbReminder.CancelledAt)
	return rem, rem.Validate()
}

func decodeRecipient(row sqlcgen.ListRecipientsByReminderIDsRow) (recipient reminder.Recipient, err error) {
	status, err := reminder.ParseRecipientStatus(row.Status)
	if err != nil {
		return recipient, err
	}
	return reminder.Recipient{
		ID:          row.ID,
		ReminderID:  reminder.ID(row.ReminderID),
		RecipientID: user.ID(row.RecipientID),
		Username:    c.Handle(row.Username),
		Phone:       c.PhoneHandle(row.Phone),
		Status:      status,
	}, nil
}

type PgxRecipientRepository struct {
	queries *sqlcgen.Queries
}

func NewPgxRecipientRepository(db sqlcgen.DBTX) *PgxRecipientRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxRecipientRepository{queries: sqlcgen.New(db)}
}

func (r *PgxRecipientRepository) Create(
	ctx context.Context,
	input reminder.CreateRecipientsInput,
) ([]reminder.Recipient, error) {
	recipients := make([]reminder.Recipient, 0, len(input.RecipientIDs))
	for _, recipientID := range input.RecipientIDs {
		row, err := r.queries.CreateReminderRecipient(ctx, sqlcgen.CreateReminderRecipientParams{
			ReminderID:  int64(input.ReminderID),
			RecipientID: int64(recipientID),
			Status:      reminder.RecipientStatusScheduled.String(),
		})
		if err != nil {
			return recipients, err
		}
		recipients = append(recipients, reminder.Recipient{
			ID:          row.ID,
			ReminderID:  reminder.ID(row.ReminderID),
			RecipientID: user.ID(row.RecipientID),
			Status:      reminder.RecipientStatusScheduled,
		})
	}
	return recipients, nil
}

func (r *PgxRecipientRepository) UpdateStatusByReminderID(
	ctx context.Context,
	reminderID reminder.ID,
	status reminder.RecipientStatus,
) error {
	return r.queries.UpdateRecipientsStatus(ctx, sqlcgen.UpdateRecipientsStatusParams{
		ReminderID: int64(reminderID),
		Status:     status.String(),
	})
}
