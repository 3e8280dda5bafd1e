package firereminder

import (
	"context"
	"errors"
	"remindchat/internal/core/domain/chat"
	c "remindchat/internal/core/domain/common"
	"remindchat/internal/core/domain/logging"
	"remindchat/internal/core/domain/reminder"
	uow "remindchat/internal/core/domain/unit_of_work"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var Now = time.Date(2024, 3, 10, 5, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger     *logging.FakeLogger
	unitOfWork *uow.FakeUnitOfWork
	sender     *chat.FakeMessageSender
	events     *reminder.FakeEventPublisher
	scheduler  *reminder.FakeScheduler
	tombstones *reminder.FakeTombstones
	service    services.Service[Input, Result]
	owner      user.User
	friend     user.User
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.unitOfWork = uow.NewFakeUnitOfWork()
	suite.sender = chat.NewFakeMessageSender()
	suite.events = reminder.NewFakeEventPublisher()
	suite.scheduler = reminder.NewFakeScheduler()
	suite.tombstones = reminder.NewFakeTombstones()
	suite.owner = suite.unitOfWork.Context.UserRepository.Add(user.User{
		Username: c.NewHandle("budi"),
		Phone:    c.NewPhoneHandle("+6281100000001"),
	})
	suite.friend = suite.unitOfWork.Context.UserRepository.Add(user.User{
		Username: c.NewHandle("siti"),
		Phone:    c.NewPhoneHandle("+6281100000002"),
	})
	suite.service = New(
		suite.logger,
		suite.unitOfWork,
		suite.sender,
		suite.events,
		suite.scheduler,
		suite.tombstones,
		func() time.Time { return Now },
	)
}

func (s *testSuite) put(r reminder.Reminder, recipients ...user.ID) reminder.Reminder {
	r.OwnerID = s.owner.ID
	if r.Title == "" {
		r.Title = "minum obat"
	}
	return s.unitOfWork.Context.ReminderStore.Put(r, recipients...)
}

func TestFireReminderService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestOneOffReminderFiredAndCompleted() {
	// Setup
	ctx := context.Background()
	rem := s.put(reminder.Reminder{
		DueAt:       c.NewOptional(Now, true),
		Cadence:     reminder.NoCadence,
		ScheduledAt: c.NewOptional(Now.Add(-time.Hour), true),
	})

	// Exercise
	result, err := s.service.Run(ctx, Input{ReminderID: rem.ID, At: Now})

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.True(result.Fired)
	assert.False(result.Next.IsPresent)
	assert.True(s.unitOfWork.Context.WasCommitCalled)

	stored, _ := s.unitOfWork.Context.ReminderStore.Get(rem.ID)
	assert.Equal(reminder.StatusCompleted, stored.Reminder.Status)
	assert.Equal(Now, stored.Reminder.CompletedAt.Value)

	assert.Equal(1, s.sender.SentCount())
	assert.Equal(s.owner.Phone, s.sender.LastSent().To)
	assert.Equal("Pengingat: minum obat", s.sender.LastSent().Text)
	assert.Len(s.events.Published, 1)
	assert.Empty(s.scheduler.Registered)
}

func (s *testSuite) TestRecipientsGetAttributedMessage() {
	// Setup
	ctx := context.Background()
	rem := s.put(reminder.Reminder{
		DueAt:   c.NewOptional(Now, true),
		Cadence: reminder.NoCadence,
	}, s.friend.ID)

	// Exercise
	result, err := s.service.Run(ctx, Input{ReminderID: rem.ID, At: Now})

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.True(result.Fired)
	assert.Equal(2, s.sender.SentCount())
	assert.Equal(s.owner.Phone, s.sender.Sent[0].To)
	assert.Equal(s.friend.Phone, s.sender.Sent[1].To)
	assert.Equal("Pengingat dari @budi: minum obat", s.sender.Sent[1].Text)
}

func (s *testSuite) TestCancelledRecipientIsSkipped() {
	// Setup
	ctx := context.Background()
	rem := s.put(reminder.Reminder{
		DueAt:   c.NewOptional(Now, true),
		Cadence: reminder.NoCadence,
	}, s.friend.ID)
	err := s.unitOfWork.Context.ReminderStore.Recipients().UpdateStatusByReminderID(
		ctx, rem.ID, reminder.RecipientStatusCancelled,
	)
	s.Require().Nil(err)

	// Exercise
	_, err = s.service.Run(ctx, Input{ReminderID: rem.ID, At: Now})

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.Equal(1, s.sender.SentCount())
	assert.Equal(s.owner.Phone, s.sender.LastSent().To)
}

func (s *testSuite) TestRecurringReminderAdvances() {
	// Setup
	ctx := context.Background()
	rem := s.put(reminder.Reminder{
		DueAt:     c.NewOptional(Now, true),
		Cadence:   reminder.NewCadence(reminder.RepeatHours, 1),
		TimeOfDay: c.NewOptional(reminder.TimeOfDay{Hour: 12}, true),
	})

	// Exercise
	result, err := s.service.Run(ctx, Input{ReminderID: rem.ID, At: Now})

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.True(result.Fired)
	assert.True(result.Next.IsPresent)
	assert.Equal(Now.Add(time.Hour), result.Next.Value)

	stored, _ := s.unitOfWork.Context.ReminderStore.Get(rem.ID)
	assert.Equal(reminder.StatusScheduled, stored.Reminder.Status)
	assert.Equal(Now.Add(time.Hour), stored.Reminder.DueAt.Value)
	assert.True(stored.Reminder.ScheduledAt.IsPresent)

	assert.Len(s.scheduler.Registered, 1)
	assert.Equal(rem.ID, s.scheduler.Registered[0].ReminderID)
	assert.Equal(Now.Add(time.Hour), s.scheduler.Registered[0].At)
}

func (s *testSuite) TestDistantNextOccurrenceLeftForPeriodicScheduling() {
	// Setup
	ctx := context.Background()
	rem := s.put(reminder.Reminder{
		DueAt:       c.NewOptional(Now, true),
		Cadence:     reminder.NewCadence(reminder.RepeatDaily, 1),
		TimeOfDay:   c.NewOptional(reminder.TimeOfDay{Hour: 12}, true),
		ScheduledAt: c.NewOptional(Now.Add(-time.Hour), true),
	})

	// Exercise
	result, err := s.service.Run(ctx, Input{ReminderID: rem.ID, At: Now})

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.Equal(Now.AddDate(0, 0, 1), result.Next.Value)

	stored, _ := s.unitOfWork.Context.ReminderStore.Get(rem.ID)
	assert.False(stored.Reminder.ScheduledAt.IsPresent)
	assert.Empty(s.scheduler.Registered)
}

func (s *testSuite) TestRecurringReminderPastEndDateCompletes() {
	// Setup
	ctx := context.Background()
	rem := s.put(reminder.Reminder{
		DueAt:   c.NewOptional(Now, true),
		Cadence: reminder.NewCadence(reminder.RepeatDaily, 1),
		EndDate: c.NewOptional(Now.Add(time.Hour), true),
	})

	// Exercise
	result, err := s.service.Run(ctx, Input{ReminderID: rem.ID, At: Now})

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.True(result.Fired)
	assert.False(result.Next.IsPresent)

	stored, _ := s.unitOfWork.Context.ReminderStore.Get(rem.ID)
	assert.Equal(reminder.StatusCompleted, stored.Reminder.Status)
	assert.Empty(s.scheduler.Registered)
}

func (s *testSuite) TestTombstonedReminderIsSkipped() {
	// Setup
	ctx := context.Background()
	rem := s.put(reminder.Reminder{DueAt: c.NewOptional(Now, true)})
	s.tombstones.Marked[rem.ID] = true

	// Exercise
	result, err := s.service.Run(ctx, Input{ReminderID: rem.ID, At: Now})

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.False(result.Fired)
	assert.Equal(0, s.sender.SentCount())
	assert.Equal(0, s.unitOfWork.Context.ReminderStore.LockCalls)
}

func (s *testSuite) TestTombstoneFailureFallsBackToDatabase() {
	// Setup
	ctx := context.Background()
	rem := s.put(reminder.Reminder{DueAt: c.NewOptional(Now, true)})
	s.tombstones.Error = errors.New("redis is down")

	// Exercise
	result, err := s.service.Run(ctx, Input{ReminderID: rem.ID, At: Now})

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.True(result.Fired)
	assert.Equal(1, s.logger.CountLevel(logging.WARNING))
}

func (s *testSuite) TestMissingReminderIsSkipped() {
	// Exercise
	result, err := s.service.Run(context.Background(), Input{ReminderID: 42, At: Now})

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.False(result.Fired)
	assert.False(s.unitOfWork.Context.WasCommitCalled)
	assert.Equal(0, s.sender.SentCount())
}

func (s *testSuite) TestCancelledReminderIsSkipped() {
	// Setup
	ctx := context.Background()
	rem := s.put(reminder.Reminder{
		DueAt:       c.NewOptional(Now, true),
		Status:      reminder.StatusCancelled,
		CancelledAt: c.NewOptional(Now.Add(-time.Minute), true),
	})

	// Exercise
	result, err := s.service.Run(ctx, Input{ReminderID: rem.ID, At: Now})

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.False(result.Fired)
	assert.False(s.unitOfWork.Context.WasCommitCalled)
	assert.Equal(0, s.sender.SentCount())
}

func (s *testSuite) TestStaleFireTimeIsSkipped() {
	// Setup
	ctx := context.Background()
	rem := s.put(reminder.Reminder{DueAt: c.NewOptional(Now.Add(time.Hour), true)})

	// Exercise
	result, err := s.service.Run(ctx, Input{ReminderID: rem.ID, At: Now})

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.False(result.Fired)
	assert.Equal(0, s.sender.SentCount())

	stored, _ := s.unitOfWork.Context.ReminderStore.Get(rem.ID)
	assert.Equal(reminder.StatusScheduled, stored.Reminder.Status)
}

func (s *testSuite) TestSubSecondFireTimeIsAccepted() {
	// Setup
	ctx := context.Background()
	rem := s.put(reminder.Reminder{DueAt: c.NewOptional(Now, true)})

	// Exercise
	result, err := s.service.Run(ctx, Input{ReminderID: rem.ID, At: Now.Add(400 * time.Millisecond)})

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.True(result.Fired)
}

func (s *testSuite) TestLateFireCompletesWithoutDelivery() {
	// Setup
	ctx := context.Background()
	dueAt := Now.Add(-reminder.MAX_FIRING_DELAY - time.Minute)
	rem := s.put(reminder.Reminder{DueAt: c.NewOptional(dueAt, true)})

	// Exercise
	result, err := s.service.Run(ctx, Input{ReminderID: rem.ID, At: dueAt})

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.False(result.Fired)
	assert.Equal(0, s.sender.SentCount())
	assert.Equal(1, s.logger.CountLevel(logging.ERROR))

	stored, _ := s.unitOfWork.Context.ReminderStore.Get(rem.ID)
	assert.Equal(reminder.StatusCompleted, stored.Reminder.Status)
}

func (s *testSuite) TestSendFailureIsNotFatal() {
	// Setup
	ctx := context.Background()
	rem := s.put(reminder.Reminder{DueAt: c.NewOptional(Now, true)})
	s.sender.ReturnError = true

	// Exercise
	result, err := s.service.Run(ctx, Input{ReminderID: rem.ID, At: Now})

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.True(result.Fired)
	assert.True(s.unitOfWork.Context.WasCommitCalled)
	assert.Equal(1, s.logger.CountLevel(logging.ERROR))
	assert.Len(s.events.Published, 1)
}

func (s *testSuite) TestRepositoryFailure() {
	// Setup
	ctx := context.Background()
	rem := s.put(reminder.Reminder{DueAt: c.NewOptional(Now, true)})
	s.unitOfWork.Context.ReminderStore.ReturnError = errors.New("db is down")

	// Exercise
	_, err := s.service.Run(ctx, Input{ReminderID: rem.ID, At: Now})

	// Verify
	assert := s.Require()
	assert.NotNil(err)
	assert.False(s.unitOfWork.Context.WasCommitCalled)
	assert.True(s.unitOfWork.Context.WasRollbackCalled)
	assert.Equal(0, s.sender.SentCount())
}
