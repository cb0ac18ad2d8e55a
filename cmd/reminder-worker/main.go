package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	_ "time/tzdata"

	"github.com/REINA-08/autamedica-reboot-deploy/cmd/bootstrap"
)

// Standalone reminder dispatcher. Runs the same wiring as the API server but
// only drives the scan loop, so it can scale independently.
func main() {
	app, err := bootstrap.New()
	if err != nil {
		logrus.Fatalf("Failed to initialize reminder worker: %v", err)
	}
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		cancel()
	}()

	app.ReminderWorker.Run(ctx)
}
