package main

import (
	"net/http"
	"os"

	"github.com/sirupsen/logrus"

	"drive-portfolio/cmd"
	"drive-portfolio/pkg/config"
	"drive-portfolio/pkg/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Warnf("Configuration incomplete, listing requests will fail: %v", err)
	}

	// Initialize services
	services.InitService(cfg)

	// Start server
	cfg.PrintServerStartMessage()
	if err := http.ListenAndServe(cfg.ServerAddress(), cmd.NewMux(services.Default())); err != nil {
		logrus.Errorf("Server error: %v", err)
		os.Exit(1)
	}
}
