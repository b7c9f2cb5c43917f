package config

import (
	"fmt"
	"time"

	"github.com/akeren/waitlist-api/internal/archive"
	"github.com/akeren/waitlist-api/internal/mailer"
	"github.com/caarlos0/env/v10"
)

// IntegrationsConfig covers the optional collaborators. Every field may be
// empty; the dependent feature is then switched off.
type IntegrationsConfig struct {
	AdminSecretKey string        `env:"ADMIN_SECRET_KEY"`
	StatsCacheTTL  time.Duration `env:"STATS_CACHE_TTL" envDefault:"30s"`

	ConvertKit    ConvertKitConfig    `envPrefix:"CONVERTKIT_"`
	ExportArchive ExportArchiveConfig `envPrefix:"EXPORT_ARCHIVE_"`
}

type ConvertKitConfig struct {
	APISecret  string        `env:"API_SECRET"`
	FormID     string        `env:"FORM_ID"`
	SequenceID string        `env:"SEQUENCE_ID"`
	BaseURL    string        `env:"BASE_URL" envDefault:"https://api.convertkit.com"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

type ExportArchiveConfig struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET" envDefault:"waitlist-exports"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"true"`
}

func LoadIntegrationsConfig() (*IntegrationsConfig, error) {
	cfg := &IntegrationsConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse integrations config: %w", err)
	}
	return cfg, nil
}

func (c *IntegrationsConfig) Mailer() mailer.Config {
	return mailer.Config{
		BaseURL:    c.ConvertKit.BaseURL,
		APISecret:  sanitizeEnv(c.ConvertKit.APISecret),
		FormID:     sanitizeEnv(c.ConvertKit.FormID),
		SequenceID: sanitizeEnv(c.ConvertKit.SequenceID),
		Timeout:    c.ConvertKit.Timeout,
	}
}

func (c *IntegrationsConfig) Archive() archive.Config {
	return archive.Config{
		Endpoint:  sanitizeEnv(c.ExportArchive.Endpoint),
		AccessKey: c.ExportArchive.AccessKey,
		SecretKey: c.ExportArchive.SecretKey,
		Bucket:    sanitizeEnv(c.ExportArchive.Bucket),
		UseSSL:    c.ExportArchive.UseSSL,
	}
}
