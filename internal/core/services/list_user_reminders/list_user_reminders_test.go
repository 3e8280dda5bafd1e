package listuserreminders

import (
	"context"
	"errors"
	c "remindchat/internal/core/domain/common"
	"remindchat/internal/core/domain/logging"
	"remindchat/internal/core/domain/reminder"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	OWNER_ID = user.ID(1)
	OTHER_ID = user.ID(2)
)

var Now = time.Date(2024, 3, 10, 5, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger  *logging.FakeLogger
	store   *reminder.FakeStore
	service services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.store = reminder.NewFakeStore(user.NewFakeUserRepository())
	suite.service = New(suite.logger, suite.store.Reminders())
}

func TestListUserRemindersService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) put(owner user.ID, title string, dueIn time.Duration, status reminder.Status) reminder.Reminder {
	r := reminder.Reminder{
		OwnerID:   owner,
		Title:     title,
		DueAt:     c.NewOptional(Now.Add(dueIn), true),
		Status:    status,
		CreatedAt: Now,
	}
	if status == reminder.StatusCancelled {
		r.CancelledAt = c.NewOptional(Now, true)
	}
	if status == reminder.StatusCompleted {
		r.CompletedAt = c.NewOptional(Now, true)
	}
	return s.store.Put(r)
}

func (s *testSuite) TestDefaultsSkipCancelledAndOrderByDueAt() {
	// Setup
	ctx := context.Background()
	s.put(OWNER_ID, "later", 3*time.Hour, reminder.StatusScheduled)
	s.put(OWNER_ID, "sooner", time.Hour, reminder.StatusScheduled)
	s.put(OWNER_ID, "done", -time.Hour, reminder.StatusCompleted)
	s.put(OWNER_ID, "dropped", 2*time.Hour, reminder.StatusCancelled)
	s.put(OTHER_ID, "not mine", time.Minute, reminder.StatusScheduled)

	// Exercise
	result, err := s.service.Run(ctx, Input{UserID: OWNER_ID})

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.Equal(uint(3), result.TotalCount)
	titles := make([]string, 0, len(result.Reminders))
	for _, r := range result.Reminders {
		titles = append(titles, r.Reminder.Title)
	}
	assert.Equal([]string{"done", "sooner", "later"}, titles)
}

func (s *testSuite) TestStatusFilterAndSearch() {
	// Setup
	ctx := context.Background()
	s.put(OWNER_ID, "Minum obat", time.Hour, reminder.StatusScheduled)
	s.put(OWNER_ID, "rapat", time.Hour, reminder.StatusScheduled)
	s.put(OWNER_ID, "obat lama", time.Hour, reminder.StatusCancelled)

	// Exercise
	result, err := s.service.Run(ctx, Input{
		UserID:        OWNER_ID,
		StatusIn:      c.NewOptional([]reminder.Status{reminder.StatusScheduled, reminder.StatusCancelled}, true),
		TitleContains: c.NewOptional(" obat ", true),
	})

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.Equal(uint(2), result.TotalCount)
}

func (s *testSuite) TestLimitAndOffset() {
	// Setup
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		s.put(OWNER_ID, "r", time.Duration(i)*time.Hour, reminder.StatusScheduled)
	}

	// Exercise
	result, err := s.service.Run(ctx, Input{
		UserID: OWNER_ID,
		Limit:  c.NewOptional[uint](2, true),
		Offset: 1,
	})

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.Len(result.Reminders, 2)
	assert.Equal(uint(5), result.TotalCount)
	assert.True(result.Reminders[0].Reminder.DueAt.Value.Equal(Now.Add(2 * time.Hour)))
}

func (s *testSuite) TestAllRowsIgnoresDefaultLimit() {
	// Setup
	ctx := context.Background()
	for i := 1; i <= DEFAULT_LIMIT+5; i++ {
		s.put(OWNER_ID, "r", time.Duration(i)*time.Minute, reminder.StatusScheduled)
	}

	// Exercise
	capped, err := s.service.Run(ctx, Input{UserID: OWNER_ID})
	s.Require().Nil(err)
	all, err := s.service.Run(ctx, Input{UserID: OWNER_ID, AllRows: true})

	// Verify
	assert := s.Require()
	assert.Nil(err)
	assert.Len(capped.Reminders, DEFAULT_LIMIT)
	assert.Len(all.Reminders, DEFAULT_LIMIT+5)
	assert.Equal(uint(DEFAULT_LIMIT+5), all.TotalCount)
}

func (s *testSuite) TestRepositoryError() {
	ctx := context.Background()
	s.store.ReturnError = errors.New("db is down")

	_, err := s.service.Run(ctx, Input{UserID: OWNER_ID})

	assert := s.Require()
	assert.NotNil(err)
	assert.Equal(1, s.logger.CountLevel(logging.ERROR))
}
