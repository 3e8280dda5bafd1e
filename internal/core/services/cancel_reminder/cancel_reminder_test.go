package cancelreminder

import (
	"context"
	"errors"
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
	scheduler  *reminder.FakeScheduler
	service    services.Service[Input, Result]
	owner      user.User
	friend     user.User
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.unitOfWork = uow.NewFakeUnitOfWork()
	suite.scheduler = reminder.NewFakeScheduler()
	suite.owner = suite.unitOfWork.Context.UserRepository.Add(user.User{Username: c.NewHandle("budi")})
	suite.friend = suite.unitOfWork.Context.UserRepository.Add(user.User{Username: c.NewHandle("siti")})
	suite.service = New(
		suite.logger,
		suite.unitOfWork,
		suite.scheduler,
		func() time.Time { return Now },
	)
}

func TestCancelReminderService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) putReminder() reminder.Reminder {
	return s.unitOfWork.Context.ReminderStore.Put(reminder.Reminder{
		OwnerID: s.owner.ID,
		Title:   "rapat",
		DueAt:   c.NewOptional(Now.Add(time.Hour), true),
		Status:  reminder.StatusScheduled,
	}, s.friend.ID)
}

func (s *testSuite) TestCancelCascadesToRecipients() {
	// Setup
	ctx := context.Background()
	rem := s.putReminder()

	// Exercise
	result, err := s.service.Run(ctx, Input{UserID: s.owner.ID, ReminderID: rem.ID})

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.True(s.unitOfWork.Context.WasCommitCalled)
	assert.Equal(reminder.StatusCancelled, result.Reminder.Reminder.Status)
	assert.True(result.Reminder.Reminder.CancelledAt.Value.Equal(Now))
	assert.Equal([]c.Handle{c.NewHandle("siti")}, result.Reminder.RecipientHandles())

	stored, ok := s.unitOfWork.Context.ReminderStore.Get(rem.ID)
	assert.True(ok)
	assert.Equal(reminder.StatusCancelled, stored.Reminder.Status)
	for _, recipient := range stored.Recipients {
		assert.Equal(reminder.RecipientStatusCancelled, recipient.Status)
	}
	assert.Equal([]reminder.ID{rem.ID}, s.scheduler.Cancelled)
}

func (s *testSuite) TestNonOwnerCannotCancel() {
	// Setup
	ctx := context.Background()
	rem := s.putReminder()

	// Exercise
	_, err := s.service.Run(ctx, Input{UserID: s.friend.ID, ReminderID: rem.ID})

	// Verify
	assert := s.Require()
	assert.ErrorIs(err, reminder.ErrReminderPermission)
	assert.False(s.unitOfWork.Context.WasCommitCalled)
	stored, _ := s.unitOfWork.Context.ReminderStore.Get(rem.ID)
	assert.Equal(reminder.StatusScheduled, stored.Reminder.Status)
	assert.Empty(s.scheduler.Cancelled)
}

func (s *testSuite) TestMissingReminder() {
	ctx := context.Background()

	_, err := s.service.Run(ctx, Input{UserID: s.owner.ID, ReminderID: reminder.ID(404)})

	assert := s.Require()
	assert.ErrorIs(err, reminder.ErrReminderDoesNotExist)
	assert.True(s.unitOfWork.Context.WasRollbackCalled)
}

func (s *testSuite) TestCancelTwiceIsRejected() {
	// Setup
	ctx := context.Background()
	rem := s.putReminder()
	_, err := s.service.Run(ctx, Input{UserID: s.owner.ID, ReminderID: rem.ID})
	s.Require().Nil(err)

	// Exercise
	_, err = s.service.Run(ctx, Input{UserID: s.owner.ID, ReminderID: rem.ID})

	// Verify
	assert := s.Require()
	assert.ErrorIs(err, reminder.ErrReminderNotActive)
	assert.Equal(1, s.unitOfWork.Context.CommitCount)
	assert.Len(s.scheduler.Cancelled, 1)
}

func (s *testSuite) TestSchedulerFailureIsLogged() {
	// Setup
	ctx := context.Background()
	rem := s.putReminder()
	s.scheduler.Error = errors.New("broker unavailable")

	// Exercise
	_, err := s.service.Run(ctx, Input{UserID: s.owner.ID, ReminderID: rem.ID})

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.Equal(1, s.logger.CountLevel(logging.ERROR))
}
