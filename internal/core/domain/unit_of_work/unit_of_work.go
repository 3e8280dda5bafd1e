package uow

import (
	"context"
	"remindchat/internal/core/domain/friend"
	"remindchat/internal/core/domain/reminder"
	"remindchat/internal/core/domain/user"
)

type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	Users() user.UserRepository
	Friends() friend.FriendRepository
	Reminders() reminder.ReminderRepository
	ReminderRecipients() reminder.RecipientRepository
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}
