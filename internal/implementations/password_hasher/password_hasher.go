package passwordhasher

import (
	"fmt"
	"remindchat/internal/core/domain/user"

	"golang.org/x/crypto/bcrypt"
)

const DEFAULT_COST = 12

// Bcrypt peppers every password with a server-side secret before hashing.
type Bcrypt struct {
	secret string
	cost   int
}

func NewBcrypt(secret string, cost int) *Bcrypt {
	if cost == 0 {
		cost = DEFAULT_COST
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		panic(fmt.Sprintf("bcrypt cost must be within [%d, %d], got %d", bcrypt.MinCost, bcrypt.MaxCost, cost))
	}
	return &Bcrypt{secret: secret, cost: cost}
}

func (h *Bcrypt) peppered(password user.RawPassword) []byte {
	return []byte(string(password) + h.secret)
}

func (h *Bcrypt) HashPassword(password user.RawPassword) (hash user.PasswordHash, err error) {
	bcryptHash, err := bcrypt.GenerateFromPassword(h.peppered(password), h.cost)
	if err != nil {
		return hash, fmt.Errorf("could not hash password: %w", err)
	}
	return user.PasswordHash(bcryptHash), nil
}

func (h *Bcrypt) ValidatePassword(password user.RawPassword, hash user.PasswordHash) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), h.peppered(password)) == nil
}
