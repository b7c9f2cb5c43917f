package stats

import (
	"net/http"
	"time"

	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/internal/database"
	"github.com/akeren/waitlist-api/internal/log"
)

// NewStatsController serves the public counter. cache may be nil.
func NewStatsController(db database.Handle, cache Cache, cacheTTL time.Duration, logger *log.Logger) *router.RESTController {
	return router.NewVersionedRESTController(
		"StatsController",
		"api",
		"/stats",
		func(rs *router.RouterService, c *router.RESTController) {
			service := NewStatsService(logger, NewStatsRepository(db), cache, cacheTTL)

			rs.AddGetHandler(c, nil, "", func(ctx *router.RequestContext) *router.ServiceResult {
				return router.JSONResult(http.StatusOK, service.GetStats(ctx.Request.Context()))
			})
		},
	)
}
