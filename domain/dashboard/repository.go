package dashboard

import (
	"context"
	"strings"
	"time"

	"github.com/akeren/waitlist-api/internal/database"
	"github.com/akeren/waitlist-api/internal/models"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriberFilter narrows and orders the waitlist. SortBy must already be whitelisted.
type SubscriberFilter struct {
	Search    string
	Source    string
	SortBy    string
	Ascending bool
}

type DashboardRepository interface {
	CountSubscribers(ctx context.Context) (int64, error)
	CountSubscribedSince(ctx context.Context, since time.Time) (int64, error)
	CountSynced(ctx context.Context) (int64, error)
	CountFeatureRequests(ctx context.Context) (int64, error)
	RecentSignups(ctx context.Context, limit int) ([]models.WaitlistEntry, error)
	SourceCounts(ctx context.Context) (map[string]int64, error)
	SubscribedTimesSince(ctx context.Context, since time.Time) ([]time.Time, error)
	// ListSubscribers returns one page and the filtered total. limit <= 0 returns every match.
	ListSubscribers(ctx context.Context, filter SubscriberFilter, offset, limit int) ([]models.WaitlistEntry, int64, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.WaitlistEntry, error)
}

type dashboardRepository struct {
	db database.Handle
}

func NewDashboardRepository(db database.Handle) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) waitlist(ctx context.Context) (*gorm.DB, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return conn.Model(&models.WaitlistEntry{}), nil
}

func (r *dashboardRepository) CountSubscribers(ctx context.Context) (int64, error) {
	q, err := r.waitlist(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, apperrors.NewDatabaseError("unable to count subscribers", err)
	}
	return count, nil
}

func (r *dashboardRepository) CountSubscribedSince(ctx context.Context, since time.Time) (int64, error) {
	q, err := r.waitlist(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := q.Where("subscribed_at >= ?", since.UTC()).Count(&count).Error; err != nil {
		return 0, apperrors.NewDatabaseError("unable to count recent subscribers", err)
	}
	return count, nil
}

func (r *dashboardRepository) CountSynced(ctx context.Context) (int64, error) {
	q, err := r.waitlist(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	err = q.Where("convertkit_subscriber_id IS NOT NULL AND convertkit_subscriber_id <> ''").Count(&count).Error
	if err != nil {
		return 0, apperrors.NewDatabaseError("unable to count synced subscribers", err)
	}
	return count, nil
}

func (r *dashboardRepository) CountFeatureRequests(ctx context.Context) (int64, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := conn.Model(&models.FeatureRequest{}).Count(&count).Error; err != nil {
		return 0, apperrors.NewDatabaseError("unable to count feature requests", err)
	}
	return count, nil
}

func (r *dashboardRepository) RecentSignups(ctx context.Context, limit int) ([]models.WaitlistEntry, error) {
	q, err := r.waitlist(ctx)
	if err != nil {
		return nil, err
	}

	var entries []models.WaitlistEntry
	err = q.Order("subscribed_at DESC").Order("id").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError("unable to load recent signups", err)
	}
	return entries, nil
}

type sourceCount struct {
	Source string
	Total  int64
}

func (r *dashboardRepository) SourceCounts(ctx context.Context) (map[string]int64, error) {
	q, err := r.waitlist(ctx)
	if err != nil {
		return nil, err
	}

	var rows []sourceCount
	err = q.Select("source, COUNT(*) AS total").Group("source").Scan(&rows).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError("unable to group subscribers by source", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		source := row.Source
		if source == "" {
			source = unknownSource
		}
		counts[source] += row.Total
	}
	return counts, nil
}

func (r *dashboardRepository) SubscribedTimesSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	q, err := r.waitlist(ctx)
	if err != nil {
		return nil, err
	}

	var times []time.Time
	err = q.Where("subscribed_at >= ?", since.UTC()).
		Order("subscribed_at ASC").
		Pluck("subscribed_at", &times).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError("unable to load daily signups", err)
	}
	return times, nil
}

func (r *dashboardRepository) ListSubscribers(ctx context.Context, filter SubscriberFilter, offset, limit int) ([]models.WaitlistEntry, int64, error) {
	q, err := r.waitlist(ctx)
	if err != nil {
		return nil, 0, err
	}

	q = q.Scopes(applyFilter(filter))

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewDatabaseError("unable to count subscribers", err)
	}

	q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: filter.SortBy}, Desc: !filter.Ascending}).
		Order("id")
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}

	var entries []models.WaitlistEntry
	if err := q.Find(&entries).Error; err != nil {
		return nil, 0, apperrors.NewDatabaseError("unable to list subscribers", err)
	}

	return entries, total, nil
}

func (r *dashboardRepository) FindByIDs(ctx context.Context, ids []string) ([]models.WaitlistEntry, error) {
	q, err := r.waitlist(ctx)
	if err != nil {
		return nil, err
	}

	var entries []models.WaitlistEntry
	if err := q.Where("id IN ?", ids).Order("subscribed_at DESC").Order("id").Find(&entries).Error; err != nil {
		return nil, apperrors.NewDatabaseError("Export failed", err)
	}
	return entries, nil
}

func applyFilter(filter SubscriberFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Search != "" {
			pattern := "%" + escapeLike(strings.ToLower(filter.Search)) + "%"
			db = db.Where(
				`LOWER(email) LIKE ? ESCAPE '\' OR LOWER(COALESCE(first_name, '')) LIKE ? ESCAPE '\'`,
				pattern, pattern,
			)
		}
		if filter.Source != "" {
			db = db.Where("source = ?", filter.Source)
		}
		return db
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
