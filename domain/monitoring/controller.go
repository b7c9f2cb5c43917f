package monitoring

import (
	"context"
	"time"

	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/internal/database"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/pkg/factory"
)

const (
	requestsPerMinute = 10
	probeTimeout      = 2 * time.Second
)

type Cache interface {
	Ping(ctx context.Context) error
}

// Toggle reports whether an optional integration is switched on.
type Toggle interface {
	Enabled() bool
}

// Dependencies are the probed collaborators. Cache, Mailer and Archive may be nil.
type Dependencies struct {
	DB      database.Handle
	Cache   Cache
	Mailer  Toggle
	Archive Toggle
}

// HealthStatus reports 1 for a healthy or enabled component and 0 otherwise.
type HealthStatus struct {
	Database int `json:"database"`
	Cache    int `json:"cache"`
	Mailer   int `json:"mailer"`
	Storage  int `json:"storage"`
	Uptime   int `json:"uptime"`
}

type controller struct {
	deps    Dependencies
	started time.Time
}

func NewMonitoringController(deps Dependencies, limiters factory.RateLimiterFactory, logger *log.Logger) *router.RESTController {
	ctrl := &controller{deps: deps, started: time.Now()}

	return router.NewRESTController("MonitoringController", "/", func(rs *router.RouterService, c *router.RESTController) {
		limiter := limiters.CreateRateLimiter("monitoring", requestsPerMinute, time.Minute)

		rs.AddGetHandler(c, limiter, "", func(*router.RequestContext) *router.ServiceResult {
			return router.OKResult("Waitlist API is operational.", "Monitoring successful")
		})
		rs.AddGetHandler(c, limiter, "health", func(rc *router.RequestContext) *router.ServiceResult {
			reqLogger := logger.WithCorrelationID(rc.Request.Context())
			ctx, cancel := context.WithTimeout(rc.Request.Context(), probeTimeout)
			defer cancel()

			return router.OKResult(ctrl.health(ctx, reqLogger), "waitlist-api health check completed")
		})
	})
}

func (ctrl *controller) health(ctx context.Context, logger *log.Logger) HealthStatus {
	status := HealthStatus{
		Uptime:  int(time.Since(ctrl.started).Seconds()),
		Mailer:  enabled(ctrl.deps.Mailer),
		Storage: enabled(ctrl.deps.Archive),
	}

	var dbPing func(context.Context) error
	if ctrl.deps.DB.Available() {
		dbPing = ctrl.deps.DB.Ping
	}
	var cachePing func(context.Context) error
	if ctrl.deps.Cache != nil {
		cachePing = ctrl.deps.Cache.Ping
	}

	status.Database = probe(ctx, logger, "database", dbPing)
	status.Cache = probe(ctx, logger, "cache", cachePing)
	return status
}

// probe returns 1 when ping succeeds. A nil ping means the component is
// not configured.
func probe(ctx context.Context, logger *log.Logger, component string, ping func(context.Context) error) int {
	if ping == nil {
		logger.Info("Health check skipped, component not configured", "component", component)
		return 0
	}
	if err := ping(ctx); err != nil {
		logger.Error("Health check failed", "component", component, "error", err)
		return 0
	}
	return 1
}

func enabled(t Toggle) int {
	if t != nil && t.Enabled() {
		return 1
	}
	return 0
}
