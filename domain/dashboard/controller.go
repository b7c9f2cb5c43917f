package dashboard

import (
	"net/http"

	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/internal/archive"
	"github.com/akeren/waitlist-api/internal/database"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/pkg/adminauth"
)

// NewDashboardController mounts the admin routes. Every route sits behind guard.
func NewDashboardController(
	db database.Handle,
	guard *adminauth.Guard,
	archiver Archiver,
	logger *log.Logger,
) *router.RESTController {

	return router.NewVersionedRESTController(
		"DashboardController",
		"api",
		"/dashboard",
		func(rs *router.RouterService, c *router.RESTController) {
			service := NewDashboardService(logger, NewDashboardRepository(db), archiver)
			requireAdmin := guard.Middleware(logger)

			rs.AddGetHandler(c, nil, "", dashboardHandler(service), requireAdmin)
			rs.AddGetHandler(c, nil, "subscribers", listSubscribersHandler(service), requireAdmin)
			rs.AddPostHandler(c, nil, "subscribers", bulkActionHandler(service), requireAdmin)
		},
	)
}

func dashboardHandler(service DashboardService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		response, err := service.GetDashboard(ctx.Request.Context())
		if err != nil {
			return router.AppErrorResult(err)
		}

		return router.JSONResult(http.StatusOK, response)
	}
}

func listSubscribersHandler(service DashboardService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		query := ParseSubscriberQuery(ctx.Request.URL.Query())

		if query.Format == FormatCSV {
			export, err := service.ExportSubscribers(ctx.Request.Context(), query)
			if err != nil {
				return router.AppErrorResult(err)
			}
			return router.AttachmentResult(export.Filename, archive.CSVContentType, export.Content)
		}

		page, err := service.ListSubscribers(ctx.Request.Context(), query)
		if err != nil {
			return router.AppErrorResult(err)
		}

		return router.JSONResult(http.StatusOK, page)
	}
}

func bulkActionHandler(service DashboardService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req BulkActionRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Warn("Rejected bulk action payload", "error", err)
			return router.ValidationErrorResult(err, &req)
		}

		export, err := service.RunBulkAction(ctx.Request.Context(), &req)
		if err != nil {
			return router.AppErrorResult(err)
		}

		return router.AttachmentResult(export.Filename, archive.CSVContentType, export.Content)
	}
}
