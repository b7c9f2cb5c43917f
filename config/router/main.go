package router

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"github.com/akeren/waitlist-api/pkg/ratelimit"
	"github.com/akeren/waitlist-api/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const (
	DefaultPort           = "8080"
	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxBodyBytes   = int64(1 << 20)
)

// RouterConfig is filled from the environment by config.LoadAppConfig.
// Zero values fall back to the defaults above.
type RouterConfig struct {
	Port              string        `env:"APP_PORT" envDefault:"8080"`
	GinMode           string        `env:"GIN_MODE"`
	RateLimitRequests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"100"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	RequestTimeout    time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	MaxBodyBytes      int64         `env:"MAX_REQUEST_BODY_BYTES" envDefault:"1048576"`
	// TrustedProxies of "*" trusts every hop; empty trusts none.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
	// AllowedOrigins is the landing page origin list; "*" allows any.
	AllowedOrigins []string   `env:"CORS_ALLOWED_ORIGIN"`
	MetricsEnabled bool       `env:"METRICS_ENABLED" envDefault:"true"`
	HSTS           HSTSConfig `envPrefix:"HSTS_"`
	// TracingService names the otelgin spans; empty leaves tracing off.
	TracingService string
}

type HSTSConfig struct {
	Enabled           bool          `env:"ENABLED"`
	MaxAge            time.Duration `env:"MAX_AGE" envDefault:"8760h"`
	IncludeSubdomains bool          `env:"INCLUDE_SUBDOMAINS" envDefault:"true"`
}

type RouterService struct {
	engine          *gin.Engine
	server          *http.Server
	logger          *log.Logger
	config          RouterConfig
	defaultLimiter  ratelimit.RateLimiter
	limiters        []ratelimit.RateLimiter
	metrics         *metrics
	metricsRegistry *prometheus.Registry

	routes map[string]string
}

// CreateRouterService builds the gin engine and its middleware chain. A nil
// limiter gets an in-memory one from the configured budget.
func CreateRouterService(logger *log.Logger, limiter ratelimit.RateLimiter, routerConfig *RouterConfig) *RouterService {
	cfg := withDefaults(routerConfig)

	if cfg.GinMode != "" {
		logger.Info("Setting Gin mode", "mode", cfg.GinMode)
		gin.SetMode(cfg.GinMode)
	}

	if err := validation.RegisterBindings(); err != nil {
		logger.Error("Failed to register request validators", "error", err)
	}

	if limiter == nil {
		limiter = ratelimit.New(ratelimit.Config{
			Rule:   ratelimit.Rule{Requests: cfg.RateLimitRequests, Window: cfg.RateLimitWindow},
			Logger: logger,
		})
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.HandleMethodNotAllowed = true
	engine.RedirectTrailingSlash = true

	if cfg.TracingService != "" {
		engine.Use(otelgin.Middleware(cfg.TracingService))
		logger.Info("Tracing middleware enabled", "service", cfg.TracingService)
	}

	proxies := trustedProxies(cfg.TrustedProxies)
	if err := engine.SetTrustedProxies(proxies); err != nil {
		logger.Error("Invalid TRUSTED_PROXIES; trusting no proxies", "error", err)
		_ = engine.SetTrustedProxies(nil)
	} else if proxies == nil {
		logger.Info("Trusted proxies disabled; client IPs come from the socket")
	}

	rs := &RouterService{
		engine:         engine,
		logger:         logger,
		config:         cfg,
		defaultLimiter: limiter,
		limiters:       []ratelimit.RateLimiter{limiter},
		routes:         make(map[string]string),
	}

	rs.mountMetrics()

	engine.Use(
		rs.correlationIDMiddleware(),
		rs.loggerInjectionMiddleware(),
		rs.requestLoggingMiddleware(),
		rs.securityHeadersMiddleware(),
		rs.corsMiddleware(),
		rs.maxBodySizeMiddleware(),
		rs.timeoutMiddleware(),
	)

	engine.NoRoute(func(c *gin.Context) {
		GetLogger(c).Warn("Route not found", "method", c.Request.Method, "path", c.Request.URL.Path)
		NotFoundResult("Route not found").write(c)
	})

	engine.NoMethod(func(c *gin.Context) {
		GetLogger(c).Warn("Method not allowed", "method", c.Request.Method, "path", c.Request.URL.Path)
		Result(apperrors.StatusMethodNotAllowed, "Method not allowed", nil).write(c)
	})

	// Handlers run on the serving goroutine; the server timeouts bound them.
	rs.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.RequestTimeout,
		WriteTimeout:      cfg.RequestTimeout,
		IdleTimeout:       60 * time.Second,
	}

	rule := limiter.Rule()
	logger.Info("Router service initialized",
		"port", cfg.Port,
		"rate_limit", rule.Requests,
		"rate_window", rule.Window.String(),
	)
	return rs
}

func withDefaults(in *RouterConfig) RouterConfig {
	var cfg RouterConfig
	if in != nil {
		cfg = *in
	}
	if strings.TrimSpace(cfg.Port) == "" {
		cfg.Port = DefaultPort
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.HSTS.MaxAge <= 0 {
		cfg.HSTS.MaxAge = 365 * 24 * time.Hour
	}
	return cfg
}

func trustedProxies(entries []string) []string {
	var proxies []string
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		switch entry {
		case "":
		case "*":
			return []string{"0.0.0.0/0", "::/0"}
		default:
			proxies = append(proxies, entry)
		}
	}
	return proxies
}

func (routerService *RouterService) GetEngine() *gin.Engine {
	return routerService.engine
}

func (routerService *RouterService) Cleanup() {
	for _, limiter := range routerService.limiters {
		if err := limiter.Close(); err != nil {
			routerService.logger.Error("Failed to close rate limiter", "error", err)
		}
	}
	routerService.logger.Info("Router service cleanup completed")
}

func (routerService *RouterService) MountController(controller *RESTController) {
	controller.prepare(routerService, controller)

	routerService.logger.Info("Controller mounted",
		"name", controller.name,
		"path", controller.mountPoint,
		"version", controller.version,
		"handlers", controller.handlers,
	)
}

// RunHTTPServer blocks until the server stops. A graceful Shutdown is not an error.
func (routerService *RouterService) RunHTTPServer() error {
	routerService.logger.Info("Starting HTTP server", "addr", routerService.server.Addr)

	if err := routerService.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (routerService *RouterService) Shutdown(ctx context.Context) error {
	routerService.logger.Info("Shutting down HTTP server")
	return routerService.server.Shutdown(ctx)
}
