package featurerequest

import (
	"errors"
	"net/http"
	"time"

	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/internal/database"
	"github.com/akeren/waitlist-api/internal/log"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"github.com/akeren/waitlist-api/pkg/factory"
	"github.com/akeren/waitlist-api/pkg/validation"
)

const submitRequestsPerMinute = 10

func NewFeatureRequestController(
	db database.Handle,
	limiters factory.RateLimiterFactory,
	logger *log.Logger,
) *router.RESTController {

	return router.NewVersionedRESTController(
		"FeatureRequestController",
		"api",
		"/feature-requests",
		func(rs *router.RouterService, c *router.RESTController) {
			service := NewFeatureRequestService(logger, NewFeatureRequestRepository(db))

			submitLimiter := limiters.CreateRateLimiter("feature-request-submit", submitRequestsPerMinute, time.Minute)

			rs.AddPostHandler(c, submitLimiter, "", submitHandler(service))
			rs.AddGetHandler(c, nil, "", countHandler(service))
		},
	)
}

func submitHandler(service FeatureRequestService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req SubmitRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Warn("Rejected feature request payload", "error", err)
			return router.ValidationErrorResult(err, &req)
		}

		response, err := service.Submit(ctx.Request.Context(), &req)
		if err != nil {
			var lengthErr *validation.LengthError
			if errors.As(err, &lengthErr) {
				return router.BadRequestResult(lengthErr.Error(), []apperrors.ValidationErrorResponse{
					{Field: "featureRequest", Message: lengthErr.Error()},
				})
			}
			return router.AppErrorResult(err)
		}

		return router.JSONResult(http.StatusOK, response)
	}
}

func countHandler(service FeatureRequestService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		response, err := service.CountRequests(ctx.Request.Context())
		if err != nil {
			return router.AppErrorResult(err)
		}

		return router.JSONResult(http.StatusOK, response)
	}
}
