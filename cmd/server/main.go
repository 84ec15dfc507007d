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

	"github.com/saulo-duarte/quiz-lambda/internal/config"
	"github.com/saulo-duarte/quiz-lambda/internal/container"
)

func main() {
	if err := run(); err != nil {
		config.Logger.WithError(err).Fatal("Server stopped")
	}
}

func run() error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	config.InitLogger(settings.Env, settings.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := container.New(ctx, settings)
	if err != nil {
		return err
	}

	go c.Store.Janitor(ctx, time.Minute, func(removed int) {
		config.Logger.WithField("removed", removed).Info("Expired quiz sessions removed")
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", settings.HTTP.Port),
		Handler:           c.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		config.Logger.WithField("addr", server.Addr).Info("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		config.Logger.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), settings.HTTP.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
