package dashboard

import (
	"context"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/models"
	"github.com/akeren/waitlist-api/pkg/constants"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"github.com/akeren/waitlist-api/pkg/utils"
)

const (
	databaseNotConfiguredMessage = "Database not configured"
	databaseErrorMessage         = "Database error"
	invalidActionMessage         = "Invalid action"
	emptySelectionMessage        = "subscriberIds must contain at least one id"
	exportFailedMessage          = "Export failed"
)

// Archiver copies finished exports somewhere durable. Store returns the object key, or "" when nothing was stored.
type Archiver interface {
	Store(ctx context.Context, filename string, data []byte) string
}

type DashboardService interface {
	GetDashboard(ctx context.Context) (*DashboardResponse, error)
	ListSubscribers(ctx context.Context, query SubscriberQuery) (*SubscriberPage, error)
	// ExportSubscribers renders every row matching the query's filters, ignoring pagination.
	ExportSubscribers(ctx context.Context, query SubscriberQuery) (*Export, error)
	RunBulkAction(ctx context.Context, req *BulkActionRequest) (*Export, error)
}

type dashboardService struct {
	logger     *log.Logger
	repository DashboardRepository
	archiver   Archiver
	now        func() time.Time
}

func NewDashboardService(logger *log.Logger, repository DashboardRepository, archiver Archiver) DashboardService {
	return &dashboardService{
		logger:     logger,
		repository: repository,
		archiver:   archiver,
		now:        time.Now,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context) (*DashboardResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)
	now := s.now()

	total, err := s.repository.CountSubscribers(ctx)
	if err != nil {
		return nil, s.queryError(logger, "Failed to fetch total subscribers", err)
	}

	// The remaining queries are optional: a failure is logged and reported as zero or empty.
	today, err := s.repository.CountSubscribedSince(ctx, startOfDay(now))
	today = orZero(logger, "today_signups", today, err)

	weekly, err := s.repository.CountSubscribedSince(ctx, now.Add(-constants.WeekWindow))
	weekly = orZero(logger, "weekly_signups", weekly, err)

	monthly, err := s.repository.CountSubscribedSince(ctx, now.Add(-constants.MonthWindow))
	monthly = orZero(logger, "monthly_signups", monthly, err)

	synced, err := s.repository.CountSynced(ctx)
	synced = orZero(logger, "convertkit_synced", synced, err)

	featureRequests, err := s.repository.CountFeatureRequests(ctx)
	featureRequests = orZero(logger, "feature_requests", featureRequests, err)

	recent, err := s.repository.RecentSignups(ctx, recentActivityLimit)
	if err != nil {
		logger.Warn("Dashboard sub-query failed", "query", "recent_signups", "error", err)
	}

	sources, err := s.repository.SourceCounts(ctx)
	if err != nil {
		logger.Warn("Dashboard sub-query failed", "query", "source_distribution", "error", err)
		sources = map[string]int64{}
	}

	times, err := s.repository.SubscribedTimesSince(ctx, now.Add(-constants.MonthWindow))
	if err != nil {
		logger.Warn("Dashboard sub-query failed", "query", "daily_signups", "error", err)
	}

	return &DashboardResponse{
		Stats: DashboardStats{
			TotalSubscribers:     total,
			TodaySignups:         today,
			WeeklySignups:        weekly,
			MonthlySignups:       monthly,
			ConvertKitSynced:     synced,
			TotalFeatureRequests: featureRequests,
			GrowthRate:           utils.GrowthRate(weekly, total),
			SyncRate:             utils.WholePercent(synced, total),
		},
		RecentActivity:     toActivity(recent, now),
		SourceDistribution: sources,
		DailySignups:       bucketByDay(times),
		LastUpdated:        formatTimestamp(now),
	}, nil
}

func (s *dashboardService) ListSubscribers(ctx context.Context, query SubscriberQuery) (*SubscriberPage, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	entries, total, err := s.repository.ListSubscribers(ctx, query.Filter(), query.Offset(), query.Limit)
	if err != nil {
		return nil, s.queryError(logger, "Failed to fetch subscribers", err)
	}

	return &SubscriberPage{
		Subscribers: ToSubscriberViews(entries),
		Pagination:  NewPagination(query, total),
		Filters: Filters{
			Search:    query.Search,
			Source:    query.Source,
			SortBy:    query.SortBy,
			SortOrder: query.SortOrder,
		},
	}, nil
}

func (s *dashboardService) ExportSubscribers(ctx context.Context, query SubscriberQuery) (*Export, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	entries, _, err := s.repository.ListSubscribers(ctx, query.Filter(), 0, 0)
	if err != nil {
		return nil, s.queryError(logger, "Failed to export subscribers", err)
	}

	export := s.export(ctx, ExportFilename(s.now()), entries)
	logger.Info("Subscribers exported", "rows", len(entries), "archive_key", export.ArchiveKey)

	return export, nil
}

func (s *dashboardService) RunBulkAction(ctx context.Context, req *BulkActionRequest) (*Export, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil || req.Action != ActionExportSelected {
		return nil, apperrors.NewInvalidRequestError(invalidActionMessage, nil)
	}
	if len(req.SubscriberIDs) == 0 {
		return nil, apperrors.NewInvalidRequestError(emptySelectionMessage, nil)
	}

	entries, err := s.repository.FindByIDs(ctx, req.SubscriberIDs)
	if err != nil {
		if apperrors.IsServiceUnavailable(err) {
			return nil, apperrors.NewServiceUnavailableError(databaseNotConfiguredMessage, err)
		}
		logger.Error("Failed to export selected subscribers", "error", err)
		return nil, apperrors.NewDatabaseError(exportFailedMessage, err)
	}

	export := s.export(ctx, SelectedExportFilename, entries)
	logger.Info("Selected subscribers exported", "requested", len(req.SubscriberIDs), "rows", len(entries))

	return export, nil
}

func (s *dashboardService) export(ctx context.Context, filename string, entries []models.WaitlistEntry) *Export {
	content := EncodeCSV(entries)

	var key string
	if s.archiver != nil {
		key = s.archiver.Store(ctx, filename, content)
	}

	return &Export{Filename: filename, Content: content, ArchiveKey: key}
}

func (s *dashboardService) queryError(logger *log.Logger, msg string, err error) error {
	if apperrors.IsServiceUnavailable(err) {
		return apperrors.NewServiceUnavailableError(databaseNotConfiguredMessage, err)
	}

	logger.Error(msg, "error", err)
	return apperrors.NewDatabaseError(databaseErrorMessage, err)
}

func orZero(logger *log.Logger, query string, n int64, err error) int64 {
	if err != nil {
		logger.Warn("Dashboard sub-query failed", "query", query, "error", err)
		return 0
	}
	return n
}

func toActivity(entries []models.WaitlistEntry, now time.Time) []ActivityItem {
	items := make([]ActivityItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, ActivityItem{
			Email:        entry.Email,
			FirstName:    entry.FirstName,
			SubscribedAt: formatTimestamp(entry.SubscribedAt),
			Source:       entry.Source,
			TimeAgo:      TimeAgo(entry.SubscribedAt, now),
		})
	}
	return items
}
