package auth

import (
	"context"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services"
)

type contextAccessToken string

const CONTEXT_ACCESS_TOKEN_KEY = contextAccessToken("accessToken")

func WithAccessToken(ctx context.Context, token user.AccessToken) context.Context {
	return context.WithValue(ctx, CONTEXT_ACCESS_TOKEN_KEY, token)
}

type Input interface {
	WithAuthenticatedUser(u user.User) Input
}

type service[T Input, S any] struct {
	tokens         user.AccessTokenValidator
	userRepository user.UserRepository
	inner          services.Service[T, S]
}

func WithAuthentication[T Input, S any](
	tokens user.AccessTokenValidator,
	userRepository user.UserRepository,
	inner services.Service[T, S],
) services.Service[T, S] {
	if tokens == nil {
		panic(e.NewNilArgumentError("tokens"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &service[T, S]{
		tokens:         tokens,
		userRepository: userRepository,
		inner:          inner,
	}
}

func (s *service[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	token, ok := ctx.Value(CONTEXT_ACCESS_TOKEN_KEY).(user.AccessToken)
	if !ok || token == "" {
		return result, user.ErrInvalidAccessToken
	}
	userID, err := s.tokens.ValidateToken(token)
	if err != nil {
		return result, user.ErrInvalidAccessToken
	}
	u, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		return result, err
	}
	return s.inner.Run(ctx, input.WithAuthenticatedUser(u).(T))
}
