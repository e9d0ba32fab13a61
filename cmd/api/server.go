package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homefinder-listings/pkg/logger"
)

const readHeaderTimeout = 10 * time.Second

// InitializeServer binds the router to the configured port.
func (a *App) InitializeServer() {
	a.Server = &http.Server{
		Addr:              fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:           a.Router,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// Run serves until SIGINT/SIGTERM or until ctx is cancelled, then drains
// in-flight requests and releases every backing connection.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.GlobalLogger.Printf("Listening on %s (storage=%s, env=%s, uploads=%s)",
			a.Server.Addr, a.Config.Storage.Driver, a.Config.Server.Env, a.Config.Uploads.Route)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		a.cleanup()
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	return a.shutdownServer()
}

func (a *App) shutdownServer() error {
	logger.GlobalLogger.Println("Shutting down server...")
	defer a.cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.GlobalLogger.Println("Server exited")
	return nil
}
