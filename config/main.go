package config

import (
	"context"
	"time"

	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/internal/archive"
	"github.com/akeren/waitlist-api/internal/database"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/mailer"
	"github.com/akeren/waitlist-api/internal/models"
	"github.com/akeren/waitlist-api/pkg/adminauth"
	"github.com/akeren/waitlist-api/pkg/factory"
)

type ApplicationConfig struct {
	DB              database.Handle
	RouterService   *router.RouterService
	Logger          *log.Logger
	Cache           Cache
	Config          *AppConfig
	Integrations    *IntegrationsConfig
	Factories       *factory.FactoryContainer
	MailerSync      *mailer.BestEffortSync
	Archive         *archive.Archiver
	AdminGuard      *adminauth.Guard
	TracingShutdown func(context.Context) error
}

func (ac *ApplicationConfig) Cleanup() {
	if ac.TracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ac.TracingShutdown(ctx); err != nil {
			ac.Logger.Error("Failed to shutdown tracer provider", "error", err)
		}
	}

	CloseDatabase(ac.DB, ac.Logger)

	if ac.RouterService != nil {
		ac.RouterService.Cleanup()
	}

	if ac.Cache != nil {
		CloseCache(ac.Cache, ac.Logger)
	}

	ac.Logger.Info("Application cleanup completed")
}

// NewMailerSync builds the best-effort ConvertKit step, or a disabled one
// when the API secret or form id is missing.
func NewMailerSync(logger *log.Logger, cfg mailer.Config, factories *factory.FactoryContainer) *mailer.BestEffortSync {
	if !cfg.IsConfigured() {
		logger.Info("ConvertKit is not configured; signups will not be synced")
		return mailer.NewDisabledSync()
	}

	client := mailer.NewClient(cfg)
	logger.Info("ConvertKit sync enabled", "sequence", client.HasSequence())

	return mailer.NewBestEffortSync(client, factories.NewCircuitBreaker("convertkit"), logger)
}

// NewArchive connects to the export bucket, or returns a disabled archiver.
// A configured but unreachable bucket is logged and disabled; it never
// blocks startup.
func NewArchive(logger *log.Logger, cfg archive.Config) *archive.Archiver {
	if !cfg.IsConfigured() {
		logger.Info("Export archive is not configured; CSV exports will not be archived")
		return archive.Disabled()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a, err := archive.NewMinioArchiver(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialise export archive; continuing without it", "endpoint", cfg.Endpoint, "error", err)
		return archive.Disabled()
	}

	logger.Info("Export archive enabled", "endpoint", cfg.Endpoint, "bucket", cfg.Bucket)
	return a
}

func NewAdminGuard(logger *log.Logger, secret string) *adminauth.Guard {
	guard := adminauth.NewGuard(secret)
	if !guard.Configured() {
		logger.Warn("ADMIN_SECRET_KEY is not set or is the placeholder; admin endpoints will deny every request")
	}
	return guard
}

func LoadApplicationConfiguration(logger *log.Logger, autoMigrate bool) (*ApplicationConfig, error) {
	InitializeEnvFile(logger)

	appConfig, err := LoadAppConfig()
	if err != nil {
		return nil, err
	}

	if autoMigrate {
		if err := ValidateAutoMigrateAllowed(appConfig.Env); err != nil {
			return nil, err
		}
		if appConfig.Env == "" {
			logger.Warn("APP_ENV not set; allowing --auto-migrate as development")
		}
	}

	integrations, err := LoadIntegrationsConfig()
	if err != nil {
		return nil, err
	}

	cacheConfig, err := LoadCacheConfig()
	if err != nil {
		return nil, err
	}

	tracingShutdown, err := SetupTracing(context.Background(), logger, appConfig.Tracing)
	if err != nil {
		return nil, err
	}

	db, err := NewDatabase(logger, nil)
	if err != nil {
		return nil, err
	}

	if autoMigrate {
		if err := AutoMigrate(logger, db, models.ModelRegistry...); err != nil {
			return nil, err
		}
	}

	cache := cacheConfig.NewCacheOrNil(logger)
	factories := factory.NewFactoryContainer(cache, logger, nil)

	globalLimiter := factories.RateLimiterFactory.CreateRateLimiter("global",
		appConfig.HTTP.RateLimitRequests, appConfig.HTTP.RateLimitWindow)
	routerService := router.CreateRouterService(logger, globalLimiter, &appConfig.HTTP)

	logger.Info("Application configuration loaded",
		"env", string(appConfig.Env),
		"database", db.Available(),
		"cache", cache != nil,
	)

	return &ApplicationConfig{
		DB:              db,
		RouterService:   routerService,
		Logger:          logger,
		Cache:           cache,
		Config:          appConfig,
		Integrations:    integrations,
		Factories:       factories,
		MailerSync:      NewMailerSync(logger, integrations.Mailer(), factories),
		Archive:         NewArchive(logger, integrations.Archive()),
		AdminGuard:      NewAdminGuard(logger, integrations.AdminSecretKey),
		TracingShutdown: tracingShutdown,
	}, nil
}
