package main

import (
	"context"
	"os"
	"time"

	"homefinder-listings/pkg/logger"
)

const startupTimeout = 30 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	cfg, closeLogger := LoadConfiguration()
	defer closeLogger()

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	app, err := NewApp(ctx, cfg)
	cancel()
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to initialize application: %v", err)
		return 1
	}

	app.InitializeServer()
	if err := app.Run(context.Background()); err != nil {
		logger.GlobalLogger.Errorf("%v", err)
		return 1
	}
	return 0
}
