package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"remindchat/internal/config"
	c "remindchat/internal/core/domain/common"
	"remindchat/internal/core/domain/user"
	registeruser "remindchat/internal/core/services/register_user"
	uow "remindchat/internal/db/unit_of_work"
	"remindchat/internal/implementations/logging"
	passwordhasher "remindchat/internal/implementations/password_hasher"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
)

func main() {
	username := flag.String("username", "", "username used in mentions, without @")
	phone := flag.String("phone", "", "WhatsApp number, e.g. +6281234567890")
	password := flag.String("password", "", "password for the HTTP API, optional")
	timeZone := flag.String("timezone", user.DEFAULT_TIME_ZONE, "IANA time zone")
	flag.Parse()

	if *username == "" || *phone == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	log := logging.NewZapLogger(cfg.Debug)
	defer log.Sync()

	ctx := context.Background()
	pool, err := pgxpool.Connect(ctx, cfg.PostgresqlURL)
	if err != nil {
		fail(err)
	}
	defer pool.Close()

	service := registeruser.New(
		log,
		uow.NewPgxUnitOfWork(pool),
		passwordhasher.NewBcrypt(cfg.Secret, cfg.BcryptHasherCost),
		func() time.Time { return time.Now().UTC() },
	)
	input := registeruser.Input{
		Username: c.NewHandle(*username),
		Phone:    c.NewPhoneHandle(*phone),
		TimeZone: *timeZone,
	}
	if *password != "" {
		input.Password = c.NewOptional(user.RawPassword(*password), true)
	}

	result, err := service.Run(ctx, input)
	switch {
	case errors.Is(err, user.ErrUsernameExists), errors.Is(err, user.ErrPhoneExists):
		fail(err)
	case err != nil:
		fail(fmt.Errorf("could not register user: %w", err))
	}
	fmt.Printf("User %s registered with id %d.\n", result.User.Username.Mention(), result.User.ID)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
