package stats

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/akeren/waitlist-api/internal/database"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 5, 20, 15, 30, 0, 0, time.UTC)

func newService(repo StatsRepository, cache Cache, ttl time.Duration) *statsService {
	svc := NewStatsService(log.NewLogger(io.Discard, slog.LevelDebug), repo, cache, ttl).(*statsService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestStatsService_Live(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockStatsRepository(ctrl)

	repo.EXPECT().CountSignups(gomock.Any()).Return(int64(100), nil)
	repo.EXPECT().CountSignupsSince(gomock.Any(), fixedNow.Add(-7*24*time.Hour)).Return(int64(12), nil)

	resp := newService(repo, nil, 0).GetStats(context.Background())

	assert.Equal(t, int64(100), resp.TotalSignups)
	require.NotNil(t, resp.WeeklySignups)
	assert.Equal(t, int64(12), *resp.WeeklySignups)
	assert.Equal(t, 12.0, resp.GrowthRate)
	assert.Equal(t, "2024-05-20T15:30:00Z", resp.LastUpdated)
	assert.Equal(t, SourceLive, resp.Source)
}

func TestStatsService_EmptyTableHasZeroGrowth(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockStatsRepository(ctrl)

	repo.EXPECT().CountSignups(gomock.Any()).Return(int64(0), nil)
	repo.EXPECT().CountSignupsSince(gomock.Any(), gomock.Any()).Return(int64(0), nil)

	resp := newService(repo, nil, 0).GetStats(context.Background())

	assert.Equal(t, 0.0, resp.GrowthRate)
	assert.Equal(t, SourceLive, resp.Source)
}

func TestStatsService_Fallback(t *testing.T) {
	cases := []struct {
		name  string
		setup func(repo *MockStatsRepository)
	}{
		{
			name: "database not configured",
			setup: func(repo *MockStatsRepository) {
				repo.EXPECT().CountSignups(gomock.Any()).Return(int64(0), database.ErrUnavailable)
			},
		},
		{
			name: "total query fails",
			setup: func(repo *MockStatsRepository) {
				repo.EXPECT().CountSignups(gomock.Any()).Return(int64(0), errors.New("timeout"))
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := NewMockStatsRepository(ctrl)
			cache := NewMockCache(ctrl)
			tc.setup(repo)

			cache.EXPECT().Get(gomock.Any(), cacheKey).Return("", nil)
			// Set must never be called for a fallback payload.

			resp := newService(repo, cache, time.Minute).GetStats(context.Background())

			assert.Equal(t, &StatsResponse{
				TotalSignups: FallbackTotalSignups,
				GrowthRate:   FallbackGrowthRate,
				LastUpdated:  "2024-05-20T15:30:00Z",
				Source:       SourceFallback,
			}, resp)
		})
	}
}

func TestStatsService_WeeklyFailureKeepsLiveTotal(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockStatsRepository(ctrl)
	cache := NewMockCache(ctrl)

	cache.EXPECT().Get(gomock.Any(), cacheKey).Return("", nil)
	repo.EXPECT().CountSignups(gomock.Any()).Return(int64(40), nil)
	repo.EXPECT().CountSignupsSince(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("timeout"))
	// A degraded payload is not cached.

	resp := newService(repo, cache, time.Minute).GetStats(context.Background())

	assert.Equal(t, int64(40), resp.TotalSignups)
	require.NotNil(t, resp.WeeklySignups)
	assert.Equal(t, int64(0), *resp.WeeklySignups)
	assert.Equal(t, 0.0, resp.GrowthRate)
	assert.Equal(t, SourceLive, resp.Source)
}

func TestStatsService_CachesLivePayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockStatsRepository(ctrl)
	cache := NewMockCache(ctrl)

	repo.EXPECT().CountSignups(gomock.Any()).Return(int64(10), nil)
	repo.EXPECT().CountSignupsSince(gomock.Any(), gomock.Any()).Return(int64(1), nil)

	cache.EXPECT().Get(gomock.Any(), cacheKey).Return("", nil)
	cache.EXPECT().
		Set(gomock.Any(), cacheKey, gomock.Any(), 30*time.Second).
		DoAndReturn(func(_ context.Context, _ string, value string, _ time.Duration) error {
			var stored StatsResponse
			require.NoError(t, json.Unmarshal([]byte(value), &stored))
			assert.Equal(t, int64(10), stored.TotalSignups)
			assert.Equal(t, SourceLive, stored.Source)
			return nil
		})

	resp := newService(repo, cache, 30*time.Second).GetStats(context.Background())
	assert.Equal(t, 10.0, resp.GrowthRate)
}

func TestStatsService_ServesCacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockStatsRepository(ctrl)
	cache := NewMockCache(ctrl)

	cache.EXPECT().Get(gomock.Any(), cacheKey).
		Return(`{"totalSignups":77,"weeklySignups":7,"growthRate":9.1,"lastUpdated":"2024-05-20T15:29:50Z","source":"supabase"}`, nil)

	resp := newService(repo, cache, 30*time.Second).GetStats(context.Background())

	assert.Equal(t, int64(77), resp.TotalSignups)
	assert.Equal(t, "2024-05-20T15:29:50Z", resp.LastUpdated)
}

func TestStatsService_CacheErrorsAreIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockStatsRepository(ctrl)
	cache := NewMockCache(ctrl)

	cache.EXPECT().Get(gomock.Any(), cacheKey).Return("", errors.New("redis down"))
	repo.EXPECT().CountSignups(gomock.Any()).Return(int64(4), nil)
	repo.EXPECT().CountSignupsSince(gomock.Any(), gomock.Any()).Return(int64(2), nil)
	cache.EXPECT().Set(gomock.Any(), cacheKey, gomock.Any(), time.Minute).Return(errors.New("redis down"))

	resp := newService(repo, cache, time.Minute).GetStats(context.Background())

	assert.Equal(t, SourceLive, resp.Source)
	assert.Equal(t, 50.0, resp.GrowthRate)
}

func TestStatsService_UnreadableCacheEntryIsRecomputed(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockStatsRepository(ctrl)
	cache := NewMockCache(ctrl)

	cache.EXPECT().Get(gomock.Any(), cacheKey).Return("{not json", nil)
	repo.EXPECT().CountSignups(gomock.Any()).Return(int64(1), nil)
	repo.EXPECT().CountSignupsSince(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	cache.EXPECT().Set(gomock.Any(), cacheKey, gomock.Any(), time.Minute).Return(nil)

	resp := newService(repo, cache, time.Minute).GetStats(context.Background())

	assert.Equal(t, 100.0, resp.GrowthRate)
}
