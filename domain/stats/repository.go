package stats

import (
	"context"
	"time"

	"github.com/akeren/waitlist-api/internal/database"
	"github.com/akeren/waitlist-api/internal/models"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
)

type StatsRepository interface {
	CountSignups(ctx context.Context) (int64, error)
	CountSignupsSince(ctx context.Context, since time.Time) (int64, error)
}

type statsRepository struct {
	db database.Handle
}

func NewStatsRepository(db database.Handle) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) CountSignups(ctx context.Context) (int64, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := conn.Model(&models.WaitlistEntry{}).Count(&count).Error; err != nil {
		return 0, apperrors.NewDatabaseError("unable to count signups", err)
	}

	return count, nil
}

func (r *statsRepository) CountSignupsSince(ctx context.Context, since time.Time) (int64, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	err = conn.Model(&models.WaitlistEntry{}).
		Where("subscribed_at >= ?", since.UTC()).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.NewDatabaseError("unable to count recent signups", err)
	}

	return count, nil
}
