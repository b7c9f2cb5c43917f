package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/akeren/waitlist-api/config"
	"github.com/akeren/waitlist-api/internal/log"
	schema "github.com/akeren/waitlist-api/migrations"
	"github.com/akeren/waitlist-api/pkg/migrations"
)

func main() {
	// stdout is reserved for command output such as CSV exports.
	logger := log.FromEnv(os.Stderr)

	config.InitializeEnvFile(logger) // Load envs early for CLI consistency

	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "migrate":
		if err := runMigrate(logger); err != nil {
			logger.Error("Database migration failed", "error", err.Error())
			os.Exit(1)
		}
		logger.Info("Database migrations completed")

	case "export-subscribers":
		if err := runExportSubscribers(logger, args[1:], os.Stdout); err != nil {
			logger.Error("Subscriber export failed", "error", err.Error())
			os.Exit(1)
		}

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func runMigrate(logger *log.Logger) error {
	handle, err := config.NewDatabase(logger, nil)
	if err != nil {
		return err
	}
	if !handle.Available() {
		return config.ErrDatabaseNotConfigured
	}
	defer config.CloseDatabase(handle, logger)

	sqlDB, err := handle.Raw().DB()
	if err != nil {
		return fmt.Errorf("get SQL DB instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := migrations.Up(ctx, sqlDB, migrations.Config{Source: schema.Files, Logger: logger})
	if err != nil {
		return err
	}

	logger.Info("Schema version", "version", result.Version, "applied", result.Applied)
	return nil
}

func printUsage() {
	fmt.Println("Usage: cli <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  migrate              Run database migrations and exit")
	fmt.Println("  export-subscribers   Write the waitlist as CSV to stdout")
	fmt.Println("                       flags: -search, -source, -sort-by, -sort-order")
}
