package uow

import (
	"context"
	"fmt"
	"remindchat/internal/core/domain/friend"
	"remindchat/internal/core/domain/reminder"
	"remindchat/internal/core/domain/user"
)

type FakeUnitOfWorkContext struct {
	UserRepository    *user.FakeUserRepository
	FriendRepository  *friend.FakeFriendRepository
	ReminderStore     *reminder.FakeStore
	WasRollbackCalled bool
	WasCommitCalled   bool
	CommitCount       int
}

func NewFakeUnitOfWorkContext(
	userRepository *user.FakeUserRepository,
	friendRepository *friend.FakeFriendRepository,
	reminderStore *reminder.FakeStore,
) *FakeUnitOfWorkContext {
	return &FakeUnitOfWorkContext{
		UserRepository:   userRepository,
		FriendRepository: friendRepository,
		ReminderStore:    reminderStore,
	}
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	c.WasRollbackCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	c.WasCommitCalled = true
	c.CommitCount++
	return nil
}

func (c *FakeUnitOfWorkContext) Users() user.UserRepository {
	return c.UserRepository
}

func (c *FakeUnitOfWorkContext) Friends() friend.FriendRepository {
	return c.FriendRepository
}

func (c *FakeUnitOfWorkContext) Reminders() reminder.ReminderRepository {
	return c.ReminderStore.Reminders()
}

func (c *FakeUnitOfWorkContext) ReminderRecipients() reminder.RecipientRepository {
	return c.ReminderStore.Recipients()
}

type FakeUnitOfWork struct {
	Context     *FakeUnitOfWorkContext
	ReturnError bool
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	userRepository := user.NewFakeUserRepository()
	return &FakeUnitOfWork{
		Context: NewFakeUnitOfWorkContext(
			userRepository,
			friend.NewFakeFriendRepository(),
			reminder.NewFakeStore(userRepository),
		),
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	if u.ReturnError {
		return nil, fmt.Errorf("could not begin transaction")
	}
	return u.Context, nil
}
