package user

import (
	"context"
	"database/sql"
	"errors"
	c "remindchat/internal/core/domain/common"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/db/sqlcgen"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const USERNAME_CONSTRAINT_NAME = "users_username_idx"
const PHONE_CONSTRAINT_NAME = "users_phone_idx"

type PgxUserRepository struct {
	queries *sqlcgen.Queries
}

func NewPgxRepository(db sqlcgen.DBTX) *PgxUserRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{queries: sqlcgen.New(db)}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateInput) (u user.User, err error) {
	dbuser, err := r.queries.CreateUser(ctx, sqlcgen.CreateUserParams{
		Username:     string(input.Username),
		Phone:        string(input.Phone),
		PasswordHash: encodePasswordHash(input.PasswordHash),
		Timezone:     input.TimeZone,
		CreatedAt:    input.CreatedAt,
	})

	var errUniqueConstraint *pgconn.PgError
	if errors.As(err, &errUniqueConstraint) && errUniqueConstraint.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE {
		switch errUniqueConstraint.ConstraintName {
		case USERNAME_CONSTRAINT_NAME:
			return u, user.ErrUsernameExists
		case PHONE_CONSTRAINT_NAME:
			return u, user.ErrPhoneExists
		}
	}
	if err != nil {
		return u, err
	}
	return decodeUser(dbuser), nil
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	dbuser, err := r.queries.GetUserByID(ctx, int64(id))
	return decodeResult(dbuser, err)
}

func (r *PgxUserRepository) GetByHandle(ctx context.Context, handle c.Handle) (u user.User, err error) {
	dbuser, err := r.queries.GetUserByUsername(ctx, string(handle))
	return decodeResult(dbuser, err)
}

func (r *PgxUserRepository) GetByPhone(ctx context.Context, phone c.PhoneHandle) (u user.User, err error) {
	dbuser, err := r.queries.GetUserByPhone(ctx, string(phone))
	return decodeResult(dbuser, err)
}

func (r *PgxUserRepository) ListByIDs(ctx context.Context, ids []user.ID) ([]user.User, error) {
	rawIDs := make([]int64, 0, len(ids))
	for _, id := range ids {
		rawIDs = append(rawIDs, int64(id))
	}
	dbusers, err := r.queries.ListUsersByIDs(ctx, rawIDs)
	if err != nil {
		return nil, err
	}
	users := make([]user.User, 0, len(dbusers))
	for _, dbuser := range dbusers {
		users = append(users, decodeUser(dbuser))
	}
	return users, nil
}

func decodeResult(dbuser sqlcgen.User, err error) (u user.User, _ error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return decodeUser(dbuser), nil
}

func encodePasswordHash(ph c.Optional[user.PasswordHash]) sql.NullString {
	return sql.NullString{String: string(ph.Value), Valid: ph.IsPresent}
}

func decodeUser(u sqlcgen.User) user.User {
	return user.User{
		ID:           user.ID(u.ID),
		Username:     c.Handle(u.Username),
		Phone:        c.PhoneHandle(u.Phone),
		PasswordHash: c.NewOptional(user.PasswordHash(u.PasswordHash.String), u.PasswordHash.Valid),
		TimeZone:     u.Timezone,
		CreatedAt:    u.CreatedAt,
	}
}
