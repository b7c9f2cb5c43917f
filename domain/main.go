package domain

import (
	"github.com/akeren/waitlist-api/config"
	"github.com/akeren/waitlist-api/domain/dashboard"
	"github.com/akeren/waitlist-api/domain/featurerequest"
	"github.com/akeren/waitlist-api/domain/monitoring"
	"github.com/akeren/waitlist-api/domain/stats"
	"github.com/akeren/waitlist-api/domain/waitlist"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	rs := appConfig.RouterService
	limiters := appConfig.Factories.RateLimiterFactory

	rs.MountController(monitoring.NewMonitoringController(monitoring.Dependencies{
		DB:      appConfig.DB,
		Cache:   appConfig.Cache,
		Mailer:  appConfig.MailerSync,
		Archive: appConfig.Archive,
	}, limiters, appConfig.Logger))

	rs.MountController(waitlist.NewWaitlistController(appConfig.DB, appConfig.MailerSync, limiters, appConfig.Logger))
	rs.MountController(featurerequest.NewFeatureRequestController(appConfig.DB, limiters, appConfig.Logger))

	rs.MountController(stats.NewStatsController(appConfig.DB, appConfig.Cache, appConfig.Integrations.StatsCacheTTL, appConfig.Logger))

	rs.MountController(dashboard.NewDashboardController(appConfig.DB, appConfig.AdminGuard, appConfig.Archive, appConfig.Logger))
}
