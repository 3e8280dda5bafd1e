package token

import (
	"fmt"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/user"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DEFAULT_TTL = 7 * 24 * time.Hour

type claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// JWT issues and validates HS256 access tokens carrying the user id.
type JWT struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWT(secret string, ttl time.Duration, now func() time.Time) *JWT {
	if secret == "" {
		panic("JWT secret must not be empty.")
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if ttl <= 0 {
		ttl = DEFAULT_TTL
	}
	return &JWT{secret: []byte(secret), ttl: ttl, now: now}
}

func (j *JWT) IssueToken(userID user.ID, now time.Time) (user.AccessToken, error) {
	c := claims{
		UserID: int64(userID),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(int64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("could not sign access token: %w", err)
	}
	return user.AccessToken(signed), nil
}

func (j *JWT) ValidateToken(token user.AccessToken) (user.ID, error) {
	parsed, err := jwt.ParseWithClaims(
		string(token),
		&claims{},
		func(t *jwt.Token) (interface{}, error) {
			return j.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", user.ErrInvalidAccessToken, err)
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || c.UserID <= 0 {
		return 0, user.ErrInvalidAccessToken
	}
	return user.ID(c.UserID), nil
}
