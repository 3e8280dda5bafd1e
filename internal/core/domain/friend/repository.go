package friend

import (
	"context"
	"remindchat/internal/core/domain/user"
	"time"
)

type CreateInput struct {
	UserID    user.ID
	FriendID  user.ID
	Status    Status
	CreatedAt time.Time
}

type FriendRepository interface {
	// Create fails with ErrFriendRequestExists when the ordered pair is taken.
	Create(ctx context.Context, input CreateInput) (Friend, error)
	GetByID(ctx context.Context, id ID) (Friend, error)
	GetByPair(ctx context.Context, userID user.ID, friendID user.ID) (Friend, error)
	// Upsert creates the edge or overwrites the status of an existing one.
	Upsert(ctx context.Context, input CreateInput) (Friend, error)
	UpdateStatus(ctx context.Context, id ID, status Status) (Friend, error)
	Delete(ctx context.Context, id ID) error
	// DeletePair removes both directions and reports how many rows were removed.
	DeletePair(ctx context.Context, a user.ID, b user.ID) (int64, error)
	// IsAcceptedFriend requires both mirrored rows to be accepted.
	IsAcceptedFriend(ctx context.Context, ownerID user.ID, otherID user.ID) (bool, error)
	ListForUser(ctx context.Context, userID user.ID) ([]Friend, error)
}
