package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	c "remindchat/internal/core/domain/common"
	"sync"
	"time"
)

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository(users ...User) *FakeUserRepository {
	return &FakeUserRepository{Users: users}
}

func (r *FakeUserRepository) Add(u User) User {
	r.lock.Lock()
	defer r.lock.Unlock()
	if u.ID == 0 {
		u.ID = ID(len(r.Users) + 1)
	}
	r.Users = append(r.Users, u)
	return u
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user")
	}
	r.lock.Lock()
	for _, existing := range r.Users {
		if existing.Username == input.Username {
			r.lock.Unlock()
			return u, ErrUsernameExists
		}
		if existing.Phone == input.Phone {
			r.lock.Unlock()
			return u, ErrPhoneExists
		}
	}
	r.lock.Unlock()
	return r.Add(User{
		Username:     input.Username,
		Phone:        input.Phone,
		PasswordHash: input.PasswordHash,
		TimeZone:     input.TimeZone,
		CreatedAt:    input.CreatedAt,
	}), nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	return r.find(func(u User) bool { return u.ID == id })
}

func (r *FakeUserRepository) GetByHandle(ctx context.Context, handle c.Handle) (u User, err error) {
	return r.find(func(u User) bool { return u.Username == handle })
}

func (r *FakeUserRepository) GetByPhone(ctx context.Context, phone c.PhoneHandle) (u User, err error) {
	return r.find(func(u User) bool { return u.Phone == phone })
}

func (r *FakeUserRepository) ListByIDs(ctx context.Context, ids []ID) ([]User, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not list users")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	result := make([]User, 0, len(ids))
	for _, id := range ids {
		for _, u := range r.Users {
			if u.ID == id {
				result = append(result, u)
			}
		}
	}
	return result, nil
}

func (r *FakeUserRepository) find(match func(User) bool) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if match(u) {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeAccessTokens struct {
	Tokens map[AccessToken]ID
	lock   sync.Mutex
}

func NewFakeAccessTokens() *FakeAccessTokens {
	return &FakeAccessTokens{Tokens: make(map[AccessToken]ID)}
}

func (f *FakeAccessTokens) IssueToken(userID ID, now time.Time) (AccessToken, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	token := AccessToken(fmt.Sprintf("token-%d-%d", userID, now.Unix()))
	f.Tokens[token] = userID
	return token, nil
}

func (f *FakeAccessTokens) ValidateToken(token AccessToken) (ID, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	userID, ok := f.Tokens[token]
	if !ok {
		return 0, ErrInvalidAccessToken
	}
	return userID, nil
}
