package main

import (
	"context"
	"os"
	"os/signal"
	"remindchat/internal/app/consumers"
	"remindchat/internal/app/deps"
	"remindchat/internal/app/services"
	"syscall"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	defer shutdownDeps()

	services := services.InitServices(deps)
	shutdownConsumers := consumers.InitConsumers(deps, services)

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer close(stopCh)

	deps.Logger.Info(context.Background(), "Reminder worker has started.")
	<-stopCh

	deps.Logger.Info(context.Background(), "Stopping reminder worker.")
	shutdownConsumers()
}
