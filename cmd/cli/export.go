package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/akeren/waitlist-api/config"
	"github.com/akeren/waitlist-api/domain/dashboard"
	"github.com/akeren/waitlist-api/internal/database"
	"github.com/akeren/waitlist-api/internal/log"
)

// exportQuery maps CLI flags onto the same query the admin listing accepts,
// so defaults and the sort whitelist stay identical.
func exportQuery(args []string) (dashboard.SubscriberQuery, error) {
	fs := flag.NewFlagSet("export-subscribers", flag.ContinueOnError)

	search := fs.String("search", "", "case-insensitive substring of email or first name")
	source := fs.String("source", "", "exact source to match")
	sortBy := fs.String("sort-by", dashboard.DefaultSortBy, "subscribed_at|created_at|email|first_name|source")
	sortOrder := fs.String("sort-order", dashboard.DefaultSortOrder, "asc|desc")

	if err := fs.Parse(args); err != nil {
		return dashboard.SubscriberQuery{}, err
	}

	values := url.Values{}
	values.Set("search", *search)
	values.Set("source", *source)
	values.Set("sortBy", *sortBy)
	values.Set("sortOrder", *sortOrder)
	values.Set("format", dashboard.FormatCSV)

	return dashboard.ParseSubscriberQuery(values), nil
}

func runExportSubscribers(logger *log.Logger, args []string, out io.Writer) error {
	query, err := exportQuery(args)
	if err != nil {
		return err
	}

	handle, err := config.NewDatabase(logger, nil)
	if err != nil {
		return err
	}
	defer config.CloseDatabase(handle, logger)

	archiver := config.NewArchive(logger, loadIntegrations(logger).Archive())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	return writeExport(ctx, logger, handle, archiver, query, out)
}

func writeExport(
	ctx context.Context,
	logger *log.Logger,
	handle database.Handle,
	archiver dashboard.Archiver,
	query dashboard.SubscriberQuery,
	out io.Writer,
) error {
	service := dashboard.NewDashboardService(logger, dashboard.NewDashboardRepository(handle), archiver)

	export, err := service.ExportSubscribers(ctx, query)
	if err != nil {
		return err
	}

	if _, err := out.Write(export.Content); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	_, err = io.WriteString(out, "\n")
	return err
}

func loadIntegrations(logger *log.Logger) *config.IntegrationsConfig {
	cfg, err := config.LoadIntegrationsConfig()
	if err != nil {
		logger.Warn("Invalid integration settings; export archive disabled", "error", err)
		return &config.IntegrationsConfig{}
	}
	return cfg
}
