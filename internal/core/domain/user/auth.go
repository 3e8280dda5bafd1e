package user

import "time"

type AccessToken string

func (t AccessToken) String() string {
	return "***"
}

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}

type AccessTokenIssuer interface {
	IssueToken(userID ID, now time.Time) (AccessToken, error)
}

type AccessTokenValidator interface {
	ValidateToken(token AccessToken) (ID, error)
}
