package stats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/pkg/constants"
	"github.com/akeren/waitlist-api/pkg/utils"
)

const cacheKey = "stats:public"

// Cache is the subset of the shared cache used for the live payload.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

type StatsService interface {
	// GetStats never fails: any database problem yields the fallback payload.
	GetStats(ctx context.Context) *StatsResponse
}

type statsService struct {
	logger     *log.Logger
	repository StatsRepository
	cache      Cache
	ttl        time.Duration
	now        func() time.Time
}

// NewStatsService caches live payloads for ttl when cache is non-nil and ttl is positive.
func NewStatsService(logger *log.Logger, repository StatsRepository, cache Cache, ttl time.Duration) StatsService {
	return &statsService{
		logger:     logger,
		repository: repository,
		cache:      cache,
		ttl:        ttl,
		now:        time.Now,
	}
}

func (s *statsService) GetStats(ctx context.Context) *StatsResponse {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if cached := s.readCache(ctx, logger); cached != nil {
		return cached
	}

	now := s.now()

	total, err := s.repository.CountSignups(ctx)
	if err != nil {
		logger.Warn("Serving fallback stats", "error", err)
		return s.fallback(now)
	}

	// A failed weekly count keeps the live total and reports no growth.
	weekly, weeklyErr := s.repository.CountSignupsSince(ctx, now.Add(-constants.WeekWindow))
	if weeklyErr != nil {
		logger.Warn("Weekly signup count failed; reporting zero growth", "error", weeklyErr)
		weekly = 0
	}

	response := &StatsResponse{
		TotalSignups:  total,
		WeeklySignups: &weekly,
		GrowthRate:    utils.GrowthRate(weekly, total),
		LastUpdated:   now.UTC().Format(constants.RFC3339DateTimeFormat),
		Source:        SourceLive,
	}

	if weeklyErr == nil {
		s.writeCache(ctx, logger, response)
	}

	return response
}

func (s *statsService) fallback(now time.Time) *StatsResponse {
	return &StatsResponse{
		TotalSignups: FallbackTotalSignups,
		GrowthRate:   FallbackGrowthRate,
		LastUpdated:  now.UTC().Format(constants.RFC3339DateTimeFormat),
		Source:       SourceFallback,
	}
}

func (s *statsService) cacheEnabled() bool {
	return s.cache != nil && s.ttl > 0
}

func (s *statsService) readCache(ctx context.Context, logger *log.Logger) *StatsResponse {
	if !s.cacheEnabled() {
		return nil
	}

	raw, err := s.cache.Get(ctx, cacheKey)
	if err != nil {
		logger.Warn("Stats cache read failed", "error", err)
		return nil
	}
	if raw == "" {
		return nil
	}

	var cached StatsResponse
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		logger.Warn("Discarding unreadable stats cache entry", "error", err)
		return nil
	}

	return &cached
}

func (s *statsService) writeCache(ctx context.Context, logger *log.Logger, response *StatsResponse) {
	if !s.cacheEnabled() {
		return
	}

	payload, err := json.Marshal(response)
	if err != nil {
		logger.Warn("Stats cache encode failed", "error", err)
		return
	}

	if err := s.cache.Set(ctx, cacheKey, string(payload), s.ttl); err != nil {
		logger.Warn("Stats cache write failed", "error", err)
	}
}
