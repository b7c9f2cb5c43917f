package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akeren/waitlist-api/internal/database"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/pkg/retry"
	"github.com/caarlos0/env/v10"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ErrDatabaseNotConfigured means neither APP_DATABASE_URL nor POSTGRES_HOST is set.
var ErrDatabaseNotConfigured = errors.New("database is not configured")

// DBConfig is read from the environment. URL wins over the POSTGRES_* parts.
type DBConfig struct {
	URL      string `env:"APP_DATABASE_URL"`
	Host     string `env:"POSTGRES_HOST"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER"`
	Password string `env:"POSTGRES_PASSWORD"`
	Name     string `env:"POSTGRES_DB_NAME"`
	SSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"require"`

	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	PingAttempts    int           `env:"DB_PING_ATTEMPTS" envDefault:"5"`
}

func LoadDBConfig() (*DBConfig, error) {
	cfg := &DBConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	return cfg, nil
}

func (c *DBConfig) pingBackoff() retry.Backoff {
	return retry.Backoff{
		Attempts:   c.PingAttempts,
		Initial:    250 * time.Millisecond,
		Max:        5 * time.Second,
		Multiplier: 2,
	}
}

// NewDatabase opens the configured Postgres database. When nothing is
// configured it returns an unavailable handle instead of an error; a
// configured but unreachable database is fatal. A nil cfg is read from the
// environment.
func NewDatabase(logger *log.Logger, cfg *DBConfig) (database.Handle, error) {
	if cfg == nil {
		loaded, err := LoadDBConfig()
		if err != nil {
			return database.Unavailable(), err
		}
		cfg = loaded
	}

	dsn, err := cfg.DSN()
	if errors.Is(err, ErrDatabaseNotConfigured) {
		logger.Warn("Database is not configured; persistence endpoints will return 503 and stats will use fallback data")
		return database.Unavailable(), nil
	}
	if err != nil {
		logger.Error("Invalid database configuration", "error", err)
		return database.Unavailable(), err
	}

	if cfg.URL != "" {
		logger.Info("Connecting to database from APP_DATABASE_URL")
	} else {
		logger.Info("Connecting to database", "host", cfg.Host, "port", cfg.Port, "dbname", cfg.Name, "sslmode", cfg.SSLMode)
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return database.Unavailable(), fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return database.Unavailable(), fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	handle := database.Connected(gdb)
	if err := pingWithRetry(context.Background(), logger, handle, cfg.pingBackoff()); err != nil {
		_ = sqlDB.Close()
		return database.Unavailable(), fmt.Errorf("database ping failed: %w", err)
	}

	logger.Info("Database connection established")
	return handle, nil
}

func pingWithRetry(ctx context.Context, logger *log.Logger, handle database.Handle, backoff retry.Backoff) error {
	return retry.Do(ctx, backoff, func(ctx context.Context, attempt int) error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		err := handle.Ping(pingCtx)
		if err != nil {
			logger.Warn("Database ping failed", "attempt", attempt, "max_attempts", backoff.Attempts, "error", err)
		}
		return err
	})
}

// DSN is the URL when set, otherwise a key=value string from the parts.
func (c *DBConfig) DSN() (string, error) {
	if url := sanitizeEnv(c.URL); url != "" {
		return url, nil
	}

	host := sanitizeEnv(c.Host)
	if host == "" {
		return "", ErrDatabaseNotConfigured
	}

	var missing []string
	if sanitizeEnv(c.User) == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if sanitizeEnv(c.Name) == "" {
		missing = append(missing, "POSTGRES_DB_NAME")
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("missing required database env vars: %s", strings.Join(missing, ", "))
	}

	sslMode := sanitizeEnv(c.SSLMode)
	if sslMode == "" {
		sslMode = "require"
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		host, c.Port, sanitizeEnv(c.User), sanitizeEnv(c.Password), sanitizeEnv(c.Name), sslMode,
	), nil
}

func sanitizeEnv(v string) string {
	s := strings.TrimSpace(v)

	if len(s) >= 2 && ((s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')) {
		s = s[1 : len(s)-1]
	}

	return s
}

func AutoMigrate(logger *log.Logger, handle database.Handle, models ...interface{}) error {
	if !handle.Available() {
		logger.Error("Cannot migrate: database is not configured")
		return fmt.Errorf("cannot migrate: %w", database.ErrUnavailable)
	}

	if err := handle.Raw().AutoMigrate(models...); err != nil {
		logger.Error("Database migration failed", "error", err)
		return fmt.Errorf("auto-migrate failed: %w", err)
	}

	logger.Info("Database migration completed successfully")

	return nil
}

func CloseDatabase(handle database.Handle, logger *log.Logger) {
	if !handle.Available() {
		return
	}

	sqlDB, err := handle.Raw().DB()
	if err != nil {
		logger.Error("Failed to get SQL DB instance", "error", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
	} else {
		logger.Info("Database closed successfully")
	}
}
