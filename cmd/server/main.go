package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/akeren/waitlist-api/config"
	"github.com/akeren/waitlist-api/domain"
	"github.com/akeren/waitlist-api/internal/log"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := log.FromEnv(os.Stdout)

	if err := run(logger, os.Args[1:]); err != nil {
		logger.Error("Waitlist API stopped with an error", "error", err.Error())
		os.Exit(1)
	}
}

func wantsAutoMigrate(args []string) bool {
	return slices.Contains(args, "--auto-migrate") || slices.Contains(args, "-m")
}

func run(logger *log.Logger, args []string) error {
	logger.Info("Waitlist API starting")

	appConfig, err := config.LoadApplicationConfiguration(logger, wantsAutoMigrate(args))
	if err != nil {
		return err
	}
	defer appConfig.Cleanup()

	domain.SetupCoreDomain(appConfig)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- appConfig.RouterService.RunHTTPServer()
	}()

	select {
	case err := <-serverErr:
		if err == nil {
			err = errors.New("http server exited unexpectedly")
		}
		return err
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := appConfig.RouterService.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("Waitlist API stopped")
	return nil
}
