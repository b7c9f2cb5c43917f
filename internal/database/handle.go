// Package database exposes the process-wide persistence handle.
//
// A Handle is either connected to a *gorm.DB or explicitly unavailable. Repositories
// ask the handle for a connection on every call, so an unconfigured database turns
// into a SERVICE_UNAVAILABLE error instead of a nil dereference.
package database

import (
	"context"

	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"gorm.io/gorm"
)

// ErrUnavailable is returned by Conn when no database is configured.
var ErrUnavailable = apperrors.NewServiceUnavailableError("database not configured", nil)

type Handle struct {
	db *gorm.DB
}

// Connected wraps an open gorm connection. A nil db yields an unavailable handle.
func Connected(db *gorm.DB) Handle {
	return Handle{db: db}
}

// Unavailable returns a handle whose every Conn call fails with ErrUnavailable.
func Unavailable() Handle {
	return Handle{}
}

func (h Handle) Available() bool {
	return h.db != nil
}

// Conn returns a context-bound session.
func (h Handle) Conn(ctx context.Context) (*gorm.DB, error) {
	if h.db == nil {
		return nil, ErrUnavailable
	}
	return h.db.WithContext(ctx), nil
}

// Ping checks connectivity of the underlying pool.
func (h Handle) Ping(ctx context.Context) error {
	if h.db == nil {
		return ErrUnavailable
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

// Raw exposes the underlying connection for migrations and shutdown. It is nil when unavailable.
func (h Handle) Raw() *gorm.DB {
	return h.db
}
