package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const AppEnvKey = "APP_ENV"

// AppEnv is the deployment stage from APP_ENV, lower-cased.
type AppEnv string

func CurrentAppEnv() AppEnv {
	return AppEnv(strings.ToLower(strings.TrimSpace(os.Getenv(AppEnvKey))))
}

func (e AppEnv) IsProduction() bool {
	return e == "production" || e == "prod"
}

// IsDevelopment treats an unset APP_ENV as development.
func (e AppEnv) IsDevelopment() bool {
	switch e {
	case "", "dev", "development", "local", "test", "testing":
		return true
	}
	return false
}

// AppConfig is the HTTP surface plus tracing, read once at startup.
type AppConfig struct {
	Env     AppEnv
	HTTP    router.RouterConfig
	Tracing TracingConfig `envPrefix:"OTEL_"`
}

func LoadAppConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse app config: %w", err)
	}

	cfg.Env = CurrentAppEnv()
	if _, set := os.LookupEnv("HSTS_ENABLED"); !set {
		cfg.HTTP.HSTS.Enabled = cfg.Env.IsProduction()
	}
	if cfg.Tracing.Enabled {
		cfg.HTTP.TracingService = cfg.Tracing.ServiceName
	}
	return cfg, nil
}

func InitializeEnvFile(logger *log.Logger) {
	if os.Getenv("SKIP_DOTENV") == "true" {
		logger.Info("Skipping .env file load (SKIP_DOTENV=true)")
		return
	}

	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file loaded", "error", err.Error())
		return
	}

	logger.Info("Environment variables loaded from .env file")
}

func ValidateAutoMigrateAllowed(appEnv AppEnv) error {
	if appEnv.IsDevelopment() {
		return nil
	}
	return fmt.Errorf("--auto-migrate is not allowed when %s=%q; run `cli migrate` instead", AppEnvKey, string(appEnv))
}
