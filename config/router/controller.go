package router

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/akeren/waitlist-api/pkg/ratelimit"
	"github.com/gin-gonic/gin"
)

// RESTController groups the routes of one domain under a mount point.
// prepare registers the routes when the controller is mounted.
type RESTController struct {
	name       string
	mountPoint string
	version    string
	handlers   int
	prepare    func(*RouterService, *RESTController)
}

func NewRESTController(name, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	return &RESTController{name: name, mountPoint: joinRoute(mountPoint), prepare: prepare}
}

// NewVersionedRESTController mounts under /<version>/<mountPoint>.
func NewVersionedRESTController(name, version, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	return &RESTController{
		name:       name,
		mountPoint: joinRoute(version, mountPoint),
		version:    version,
		prepare:    prepare,
	}
}

// joinRoute returns an absolute, slash-collapsed path without a trailing slash.
func joinRoute(parts ...string) string {
	return path.Clean("/" + strings.Join(parts, "/"))
}

func (controller *RESTController) route(relative string) string {
	return joinRoute(controller.mountPoint, relative)
}

func (routerService *RouterService) AddGetHandler(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	relative string,
	handler HandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	routerService.handle(http.MethodGet, controller, limiter, relative, handler, middlewares)
}

func (routerService *RouterService) AddPostHandler(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	relative string,
	handler HandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	routerService.handle(http.MethodPost, controller, limiter, relative, handler, middlewares)
}

// handle runs the route's limiter, then the route middlewares, then the
// handler. A nil limiter means the router default. Registering the same
// method and path twice panics.
func (routerService *RouterService) handle(
	method string,
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	relative string,
	handler HandlerFunction,
	middlewares []MiddlewareFunc,
) {
	route := controller.route(relative)

	key := method + " " + route
	if owner, taken := routerService.routes[key]; taken {
		panic(fmt.Sprintf("route %s is already registered by controller %q", key, owner))
	}
	routerService.routes[key] = controller.name

	if limiter == nil {
		limiter = routerService.defaultLimiter
	} else {
		routerService.limiters = append(routerService.limiters, limiter)
	}

	chain := make([]gin.HandlerFunc, 0, len(middlewares)+2)
	chain = append(chain, routerService.rateLimitMiddleware(route, limiter))
	chain = append(chain, middlewares...)
	chain = append(chain, serve(handler))

	routerService.engine.Handle(method, route, chain...)
	controller.handlers++
	routerService.logger.Debug("Handler registered", "method", method, "path", route)
}

func serve(handler HandlerFunction) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := handler(c)
		if result == nil {
			GetLogger(c).Error("Handler returned no result", "path", c.FullPath())
			Result(http.StatusInternalServerError, "Internal server error", nil).write(c)
			return
		}
		result.write(c)
	}
}
