package user

import (
	"context"
	c "remindchat/internal/core/domain/common"
	"time"
)

type CreateInput struct {
	Username     c.Handle
	Phone        c.PhoneHandle
	PasswordHash c.Optional[PasswordHash]
	TimeZone     string
	CreatedAt    time.Time
}

type UserRepository interface {
	// Create fails with ErrUsernameExists or ErrPhoneExists on duplicates.
	Create(ctx context.Context, input CreateInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByHandle(ctx context.Context, handle c.Handle) (User, error)
	GetByPhone(ctx context.Context, phone c.PhoneHandle) (User, error)
	ListByIDs(ctx context.Context, ids []ID) ([]User, error)
}
