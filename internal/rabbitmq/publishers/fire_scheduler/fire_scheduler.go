package firescheduler

import (
	"context"
	"fmt"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/logging"
	"remindchat/internal/core/domain/reminder"
	"remindchat/internal/rabbitmq"
	"remindchat/internal/rabbitmq/schema"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type Publisher interface {
	PublishWithContext(
		ctx context.Context,
		exchange string,
		key string,
		mandatory bool,
		immediate bool,
		msg amqp091.Publishing,
	) error
}

// RabbitMQ hands fire requests inside the scheduling window to the delayed
// exchange. Requests further out are left to the periodic scheduler.
type RabbitMQ struct {
	log        logging.Logger
	publisher  Publisher
	tombstones reminder.Tombstones
	exchange   string
	routingKey string
	now        func() time.Time
}

func NewRabbitMQ(
	log logging.Logger,
	publisher Publisher,
	tombstones reminder.Tombstones,
	exchange string,
	routingKey string,
	now func() time.Time,
) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if publisher == nil {
		panic(e.NewNilArgumentError("publisher"))
	}
	if tombstones == nil {
		panic(e.NewNilArgumentError("tombstones"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &RabbitMQ{
		log:        log,
		publisher:  publisher,
		tombstones: tombstones,
		exchange:   exchange,
		routingKey: routingKey,
		now:        now,
	}
}

func (s *RabbitMQ) RegisterFire(ctx context.Context, request reminder.FireRequest) error {
	now := s.now()
	if !reminder.IsWithinSchedulingWindow(request.At, now) {
		s.log.Debug(
			ctx,
			"Fire is outside of the scheduling window, leaving it to the scheduler.",
			logging.Entry("reminderID", request.ReminderID),
			logging.Entry("at", request.At),
		)
		return nil
	}

	message := schema.ReminderFire{ID: int64(request.ReminderID), At: request.At.UTC()}
	body, err := message.Marshal()
	if err != nil {
		return fmt.Errorf("could not marshal fire message: %w", err)
	}
	delay := request.At.Sub(now)
	if delay < 0 {
		delay = 0
	}
	err = s.publisher.PublishWithContext(ctx, s.exchange, s.routingKey, false, false, amqp091.Publishing{
		Headers:      amqp091.Table{rabbitmq.DELAY_HEADER: delay.Milliseconds()},
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("could not publish fire message for reminder %d: %w", request.ReminderID, err)
	}
	s.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("exchange", s.exchange),
		logging.Entry("RK", s.routingKey),
		logging.Entry("reminderID", request.ReminderID),
		logging.Entry("delay", delay.String()),
	)
	return nil
}

// Cancel cannot withdraw a published message, so it leaves a tombstone the
// worker checks before firing.
func (s *RabbitMQ) Cancel(ctx context.Context, id reminder.ID) error {
	if err := s.tombstones.Mark(ctx, id); err != nil {
		return err
	}
	s.log.Info(ctx, "Reminder fire has been cancelled.", logging.Entry("reminderID", id))
	return nil
}
