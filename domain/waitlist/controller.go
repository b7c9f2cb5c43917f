package waitlist

import (
	"net/http"
	"time"

	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/internal/database"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/pkg/factory"
)

// Signups are public; keep a tighter budget than the router default.
const signupRequestsPerMinute = 30

func NewWaitlistController(
	db database.Handle,
	syncer Syncer,
	limiters factory.RateLimiterFactory,
	logger *log.Logger,
) *router.RESTController {

	return router.NewVersionedRESTController(
		"WaitlistController",
		"api",
		"/waitlist",
		func(rs *router.RouterService, c *router.RESTController) {
			repository := NewWaitlistRepository(db)
			service := NewWaitlistService(logger, repository, syncer, NewMetrics(rs.MetricsRegisterer()))

			signupLimiter := limiters.CreateRateLimiter("waitlist-signup", signupRequestsPerMinute, time.Minute)

			rs.AddPostHandler(c, signupLimiter, "", signupHandler(service))
			rs.AddGetHandler(c, nil, "", countHandler(service))
		},
	)
}

func signupHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req SignupRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Warn("Rejected waitlist signup payload", "error", err)
			return router.ValidationErrorResult(err, &req)
		}

		response, err := service.Signup(ctx.Request.Context(), &req)
		if err != nil {
			return router.AppErrorResult(err)
		}

		return router.JSONResult(http.StatusOK, response)
	}
}

func countHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		response, err := service.CountSignups(ctx.Request.Context())
		if err != nil {
			return router.AppErrorResult(err)
		}

		return router.JSONResult(http.StatusOK, response)
	}
}
