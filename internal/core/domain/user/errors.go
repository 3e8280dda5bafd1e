package user

import (
	"errors"
)

var (
	ErrUserDoesNotExist   = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidAccessToken = errors.New("invalid access token")
	ErrUsernameExists     = errors.New("username is already taken")
	ErrPhoneExists        = errors.New("phone is already registered")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrInvalidPhone       = errors.New("invalid phone")
	ErrInvalidTimeZone    = errors.New("invalid time zone")
)
