package consumers

import (
	"context"
	"remindchat/internal/app/deps"
	"remindchat/internal/app/services"
	dl "remindchat/internal/core/domain/logging"
	reminderfire "remindchat/internal/rabbitmq/consumers/reminder_fire"
)

func initReminderFireConsumer(deps *deps.Deps, services *services.Services) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	topology := deps.Topology()
	if err := topology.Declare(rabbitmqChannel); err != nil {
		deps.Logger.Error(context.Background(), "Could not declare RabbitMQ topology.", dl.Entry("err", err))
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	consumer := reminderfire.New(deps.Logger, rabbitmqChannel, topology.Queue, services.FireReminder)
	if err = consumer.Consume(ctx); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", topology.Queue),
		)
		cancel()
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", topology.Queue))
	return func() {
		cancel()
		rabbitmqChannel.Close()
	}
}

func InitConsumers(deps *deps.Deps, services *services.Services) func() {
	shutdownReminderFireConsumer := initReminderFireConsumer(deps, services)

	return func() {
		shutdownReminderFireConsumer()
	}
}
