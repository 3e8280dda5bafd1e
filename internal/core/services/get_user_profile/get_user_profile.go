package getuserprofile

import (
	"context"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/logging"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services"
	"remindchat/internal/core/services/auth"
)

type Input struct {
	User user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	Profile user.Profile
}

type service struct {
	log logging.Logger
}

func New(log logging.Logger) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &service{log: log}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.User.ID == 0 {
		return result, user.ErrInvalidAccessToken
	}
	return Result{Profile: input.User.Profile()}, nil
}
