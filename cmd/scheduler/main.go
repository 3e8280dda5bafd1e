package main

import (
	"context"
	"os"
	"os/signal"
	"remindchat/internal/app/deps"
	"remindchat/internal/app/services"
	"remindchat/internal/core/domain/logging"
	schedulereminders "remindchat/internal/core/services/schedule_reminders"
	"syscall"
	"time"

	"github.com/google/uuid"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	log := deps.Logger
	defer shutdownDeps()

	services := services.InitServices(deps)

	ticker := time.NewTicker(deps.Config.RemindersSchedulingPeriod)
	defer ticker.Stop()

	stopCh, closeCh := createChannel()
	defer closeCh()

	log.Info(
		context.Background(),
		"Starting periodic reminder scheduler.",
		logging.Entry("periodMinutes", (deps.Config.RemindersSchedulingPeriod).Minutes()),
	)

loop:
	for {
		select {
		case <-stopCh:
			log.Info(context.Background(), "Stopping periodic reminder scheduler.")
			break loop
		case <-ticker.C:
			ctx := logging.WithRequestID(context.Background(), uuid.NewString())
			log.Debug(ctx, "Launching reminders scheduling service.")
			result, err := services.ScheduleReminders.Run(ctx, schedulereminders.Input{})
			if err != nil {
				log.Error(ctx, "Scheduling service returned an error.", logging.Entry("err", err))
				continue
			}
			if len(result.ScheduledIDs) > 0 {
				log.Info(ctx, "Reminders scheduled.", logging.Entry("count", len(result.ScheduledIDs)))
			}
		}
	}
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
