package reminderfire

import (
	"context"
	e "remindchat/internal/core/domain/errors"
	"remindchat/internal/core/domain/logging"
	"remindchat/internal/core/domain/reminder"
	"remindchat/internal/core/services"
	firereminder "remindchat/internal/core/services/fire_reminder"
	"remindchat/internal/rabbitmq/schema"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
)

const PREFETCH = 8

type Source interface {
	Consume(ctx context.Context, queue string, prefetch int) (<-chan amqp091.Delivery, error)
}

type Consumer struct {
	log     logging.Logger
	source  Source
	queue   string
	service services.Service[firereminder.Input, firereminder.Result]
}

func New(
	log logging.Logger,
	source Source,
	queue string,
	service services.Service[firereminder.Input, firereminder.Result],
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if source == nil {
		panic(e.NewNilArgumentError("source"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Consumer{log: log, source: source, queue: queue, service: service}
}

// Consume handles deliveries in the background until ctx is done.
func (c *Consumer) Consume(ctx context.Context) error {
	deliveries, err := c.source.Consume(ctx, c.queue, PREFETCH)
	if err != nil {
		logging.Error(ctx, c.log, err, logging.Entry("queue", c.queue))
		return err
	}

	go func() {
		for delivery := range deliveries {
			c.Handle(ctx, delivery)
		}
	}()
	return nil
}

// Handle runs one fire message. Every delivery is acknowledged: the service
// is idempotent with respect to a given occurrence and redelivery can only
// repeat what already happened or fail again.
func (c *Consumer) Handle(ctx context.Context, delivery amqp091.Delivery) {
	ctx = logging.WithRequestID(ctx, uuid.NewString())
	defer c.ack(ctx, delivery)

	message := &schema.ReminderFire{}
	if err := message.Unmarshal(delivery.Body); err != nil {
		c.log.Error(
			ctx,
			"Could not unmarshal reminder fire message.",
			logging.Entry("err", err),
			logging.Entry("body", string(delivery.Body)),
		)
		return
	}

	c.log.Info(ctx, "Got reminder fire message.", logging.Entry("reminderID", message.ID), logging.Entry("at", message.At))
	_, err := c.service.Run(ctx, firereminder.Input{ReminderID: reminder.ID(message.ID), At: message.At})
	if err != nil {
		c.log.Error(
			ctx,
			"Could not fire reminder, service returned an error.",
			logging.Entry("reminderID", message.ID),
			logging.Entry("err", err),
		)
	}
}

func (c *Consumer) ack(ctx context.Context, delivery amqp091.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.log.Error(ctx, "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}
