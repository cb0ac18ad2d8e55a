package main

import (
	"github.com/sirupsen/logrus"

	// The fixed scheduling zone must resolve even on zoneinfo-less images.
	_ "time/tzdata"

	"github.com/REINA-08/autamedica-reboot-deploy/cmd/bootstrap"
)

func main() {
	// Initialize application with all dependencies
	app, err := bootstrap.New()
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	// Run the application
	app.Run()
}
