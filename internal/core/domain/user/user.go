package user

import (
	"regexp"
	c "remindchat/internal/core/domain/common"
	"time"
)

type ID int64

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

const DEFAULT_TIME_ZONE = "Asia/Jakarta"

// WIB is used when the user's zone cannot be loaded.
var WIB = time.FixedZone("WIB", 7*60*60)

type User struct {
	ID           ID
	Username     c.Handle
	Phone        c.PhoneHandle
	PasswordHash c.Optional[PasswordHash]
	TimeZone     string
	CreatedAt    time.Time
}

func (u User) Location() *time.Location {
	tz := u.TimeZone
	if tz == "" {
		tz = DEFAULT_TIME_ZONE
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return WIB
	}
	return loc
}

// Profile is the only shape of User that leaves the core.
type Profile struct {
	ID        ID
	Username  c.Handle
	Phone     c.PhoneHandle
	TimeZone  string
	CreatedAt time.Time
}

func (u User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		Username:  u.Username,
		Phone:     u.Phone,
		TimeZone:  u.TimeZone,
		CreatedAt: u.CreatedAt,
	}
}

var (
	usernamePattern = regexp.MustCompile(`^[a-z0-9_.]{3,32}$`)
	phonePattern    = regexp.MustCompile(`^\+[0-9]{8,15}$`)
)

// ValidateUsername accepts handles that the mention parser can address.
func ValidateUsername(handle c.Handle) error {
	if !usernamePattern.MatchString(string(handle)) {
		return ErrInvalidUsername
	}
	return nil
}

// ValidatePhone accepts E.164 numbers.
func ValidatePhone(phone c.PhoneHandle) error {
	if !phonePattern.MatchString(string(phone)) {
		return ErrInvalidPhone
	}
	return nil
}
