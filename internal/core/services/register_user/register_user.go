package registeruser

import (
	"context"
	"errors"
	c "remindchat/internal/core/domain/common"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/logging"
	uow "remindchat/internal/core/domain/unit_of_work"
	"remindchat/internal/core/domain/user"
	"remindchat/internal/core/services"
	"time"
)

type Input struct {
	Username c.Handle
	Phone    c.PhoneHandle
	Password c.Optional[user.RawPassword]
	TimeZone string
}

func (i Input) Validate() error {
	if err := user.ValidateUsername(i.Username); err != nil {
		return err
	}
	if err := user.ValidatePhone(i.Phone); err != nil {
		return err
	}
	if i.TimeZone != "" {
		if _, err := time.LoadLocation(i.TimeZone); err != nil {
			return user.ErrInvalidTimeZone
		}
	}
	return nil
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	unitOfWork     uow.UnitOfWork
	passwordHasher user.PasswordHasher
	now            func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	passwordHasher user.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		unitOfWork:     unitOfWork,
		passwordHasher: passwordHasher,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := input.Validate(); err != nil {
		return result, err
	}

	createInput := user.CreateInput{
		Username:  input.Username,
		Phone:     input.Phone,
		TimeZone:  input.TimeZone,
		CreatedAt: s.now(),
	}
	if createInput.TimeZone == "" {
		createInput.TimeZone = user.DEFAULT_TIME_ZONE
	}
	if input.Password.IsPresent && input.Password.Value != "" {
		passwordHash, err := s.passwordHasher.HashPassword(input.Password.Value)
		if err != nil {
			s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
			return result, err
		}
		createInput.PasswordHash = c.NewOptional(passwordHash, true)
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("username", input.Username))
		return result, err
	}
	defer uow.Rollback(ctx)

	createdUser, err := uow.Users().Create(ctx, createInput)
	if errors.Is(err, user.ErrUsernameExists) || errors.Is(err, user.ErrPhoneExists) {
		s.log.Info(
			ctx,
			"User already exists.",
			logging.Entry("username", input.Username),
			logging.Entry("err", err),
		)
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("username", input.Username))
		return result, err
	}

	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("username", input.Username))
		return result, err
	}

	s.log.Info(ctx, "New user has been created.", logging.Entry("userID", createdUser.ID))
	return Result{User: createdUser}, nil
}
