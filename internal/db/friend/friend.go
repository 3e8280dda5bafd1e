package friend

import (
	"context"
	"errors"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/friend"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/db/sqlcgen"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const PG_CHECK_CONSTRAINT_ERR_CODE = "23514"

type PgxFriendRepository struct {
	queries *sqlcgen.Queries
}

func NewPgxFriendRepository(db sqlcgen.DBTX) *PgxFriendRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxFriendRepository{queries: sqlcgen.New(db)}
}

func (r *PgxFriendRepository) Create(ctx context.Context, input friend.CreateInput) (f friend.Friend, err error) {
	dbFriend, err := r.queries.CreateFriend(ctx, sqlcgen.CreateFriendParams{
		UserID:    int64(input.UserID),
		FriendID:  int64(input.FriendID),
		Status:    input.Status.String(),
		CreatedAt: input.CreatedAt,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PG_UNIQUE_CONSTRAINT_ERR_CODE:
			return f, friend.ErrFriendRequestExists
		case PG_CHECK_CONSTRAINT_ERR_CODE:
			return f, friend.ErrSelfFriendship
		}
	}
	if err != nil {
		return f, err
	}
	return decodeFriend(dbFriend)
}

func (r *PgxFriendRepository) GetByID(ctx context.Context, id friend.ID) (f friend.Friend, err error) {
	dbFriend, err := r.queries.GetFriendByID(ctx, int64(id))
	if errors.Is(err, pgx.ErrNoRows) {
		return f, friend.ErrFriendDoesNotExist
	}
	if err != nil {
		return f, err
	}
	return decodeFriend(dbFriend)
}

func (r *PgxFriendRepository) GetByPair(
	ctx context.Context,
	userID user.ID,
	friendID user.ID,
) (f friend.Friend, err error) {
	dbFriend, err := r.queries.GetFriendByPair(ctx, sqlcgen.GetFriendByPairParams{
		UserID:   int64(userID),
		FriendID: int64(friendID),
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return f, friend.ErrFriendDoesNotExist
	}
	if err != nil {
		return f, err
	}
	return decodeFriend(dbFriend)
}

func (r *PgxFriendRepository) Upsert(ctx context.Context, input friend.CreateInput) (f friend.Friend, err error) {
	dbFriend, err := r.queries.UpsertFriend(ctx, sqlcgen.UpsertFriendParams{
		UserID:    int64(input.UserID),
		FriendID:  int64(input.FriendID),
		Status:    input.Status.String(),
		CreatedAt: input.CreatedAt,
	})
	if err != nil {
		return f, err
	}
	return decodeFriend(dbFriend)
}

func (r *PgxFriendRepository) UpdateStatus(
	ctx context.Context,
	id friend.ID,
	status friend.Status,
) (f friend.Friend, err error) {
	dbFriend, err := r.queries.UpdateFriendStatus(ctx, sqlcgen.UpdateFriendStatusParams{
		ID:     int64(id),
		Status: status.String(),
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return f, friend.ErrFriendDoesNotExist
	}
	if err != nil {
		return f, err
	}
	return decodeFriend(dbFriend)
}

func (r *PgxFriendRepository) Delete(ctx context.Context, id friend.ID) error {
	count, err := r.queries.DeleteFriend(ctx, int64(id))
	if err != nil {
		return err
	}
	if count == 0 {
		return friend.ErrFriendDoesNotExist
	}
	return nil
}

func (r *PgxFriendRepository) DeletePair(ctx context.Context, a user.ID, b user.ID) (int64, error) {
	return r.queries.DeleteFriendPair(ctx, sqlcgen.DeleteFriendPairParams{A: int64(a), B: int64(b)})
}

func (r *PgxFriendRepository) IsAcceptedFriend(
	ctx context.Context,
	ownerID user.ID,
	otherID user.ID,
) (bool, error) {
	if ownerID == otherID {
		return false, nil
	}
	count, err := r.queries.CountAcceptedEdges(ctx, sqlcgen.CountAcceptedEdgesParams{
		OwnerID: int64(ownerID),
		OtherID: int64(otherID),
	})
	if err != nil {
		return false, err
	}
	return count == 2, nil
}

func (r *PgxFriendRepository) ListForUser(ctx context.Context, userID user.ID) ([]friend.Friend, error) {
	dbFriends, err := r.queries.ListFriendsForUser(ctx, int64(userID))
	if err != nil {
		return nil, err
	}
	friends := make([]friend.Friend, 0, len(dbFriends))
	for _, dbFriend := range dbFriends {
		f, err := decodeFriend(dbFriend)
		if err != nil {
			return friends, err
		}
		friends = append(friends, f)
	}
	return friends, nil
}

func decodeFriend(dbFriend sqlcgen.Friend) (f friend.Friend, err error) {
	status, err := friend.ParseStatus(dbFriend.Status)
	if err != nil {
		return f, err
	}
	return friend.Friend{
		ID:        friend.ID(dbFriend.ID),
		UserID:    user.ID(dbFriend.UserID),
		FriendID:  user.ID(dbFriend.FriendID),
		Status:    status,
		CreatedAt: dbFriend.CreatedAt,
	}, nil
}
