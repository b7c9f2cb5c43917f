package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"github.com/akeren/waitlist-api/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mountTestController(rs *RouterService) {
	ctrl := NewRESTController("TestController", "/", func(rs *RouterService, c *RESTController) {
		rs.AddGetHandler(c, nil, "ip", func(ctx *RequestContext) *ServiceResult {
			return OKResult(ctx.ClientIP(), "ok")
		})

		rs.AddPostHandler(c, nil, "echo", func(ctx *RequestContext) *ServiceResult {
			var payload map[string]any
			if err := ctx.ShouldBindJSON(&payload); err != nil {
				return BadRequestResult("bad", nil)
			}
			return OKResult(payload, "ok")
		})
	})

	rs.MountController(ctrl)
}

func testConfig() *RouterConfig {
	return &RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	}
}

func newTestRouterService(t *testing.T, configure ...func(*RouterConfig)) *RouterService {
	t.Helper()

	cfg := testConfig()
	for _, fn := range configure {
		fn(cfg)
	}
	return CreateRouterService(log.NewLogger(io.Discard, slog.LevelError), nil, cfg)
}

func TestTrustedProxies_DisabledByDefault(t *testing.T) {
	rs := newTestRouterService(t)
	mountTestController(rs)

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	req.Header.Set("X-Forwarded-For", "1.1.1.1")

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Code    int    `json:"code"`
		Data    string `json:"data"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if resp.Data != "10.0.0.2" {
		t.Fatalf("expected ClientIP to use RemoteAddr when trusted proxies disabled; got %q", resp.Data)
	}
}

func TestTrustedProxies_StarTrustsForwardedFor(t *testing.T) {
	rs := newTestRouterService(t, func(cfg *RouterConfig) {
		cfg.TrustedProxies = []string{" * "}
	})
	mountTestController(rs)

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	req.Header.Set("X-Forwarded-For", "1.1.1.1")

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Code    int    `json:"code"`
		Data    string `json:"data"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if resp.Data != "1.1.1.1" {
		t.Fatalf("expected ClientIP to use X-Forwarded-For when trusted proxies enabled; got %q", resp.Data)
	}
}

func TestMaxBodySize_Returns413(t *testing.T) {
	rs := newTestRouterService(t, func(cfg *RouterConfig) {
		cfg.MaxBodyBytes = 10
	})
	mountTestController(rs)

	body := bytes.Repeat([]byte{'a'}, 50)
	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateHandler_FlatJSONAndAttachment(t *testing.T) {
	rs := newTestRouterService(t)
	ctrl := NewVersionedRESTController("Results", "api", "results", func(rs *RouterService, c *RESTController) {
		rs.AddGetHandler(c, nil, "flat", func(ctx *RequestContext) *ServiceResult {
			return JSONResult(http.StatusOK, map[string]any{"totalSignups": 3})
		})
		rs.AddGetHandler(c, nil, "file", func(ctx *RequestContext) *ServiceResult {
			return AttachmentResult("report.csv", "text/csv; charset=utf-8", []byte("\"a\""))
		})
	})
	rs.MountController(ctrl)

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/results/flat", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var flat map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &flat); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, hasEnvelope := flat["code"]; hasEnvelope {
		t.Fatalf("expected flat body, got %s", w.Body.String())
	}
	if flat["totalSignups"] != float64(3) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/results/file", nil))
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="report.csv"` {
		t.Fatalf("unexpected Content-Disposition %q", got)
	}
	if got := w.Header().Get("Content-Type"); got != "text/csv; charset=utf-8" {
		t.Fatalf("unexpected Content-Type %q", got)
	}
	if w.Body.String() != `"a"` {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}

func TestMetricsRegisterer_AvailableWhenDisabled(t *testing.T) {
	rs := newTestRouterService(t)
	if rs.MetricsRegisterer() == nil {
		t.Fatal("expected a registerer even with metrics disabled")
	}

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code == http.StatusOK {
		t.Fatalf("expected /metrics to be unmounted, got 200")
	}
}

func TestAppErrorResult_UsesEnvelope(t *testing.T) {
	result := AppErrorResult(apperrors.NewConflictError("Email already registered", nil))

	if result.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", result.StatusCode)
	}
	body, ok := result.Body().(gin.H)
	if !ok {
		t.Fatalf("expected envelope, got %T", result.Body())
	}
	if body["message"] != "Email already registered" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestRateLimit_PerRouteLimiter(t *testing.T) {
	rs := newTestRouterService(t)
	signup := ratelimit.NewMemoryLimiter(ratelimit.Rule{Requests: 2, Window: time.Minute})

	rs.MountController(NewVersionedRESTController("Limited", "api", "limited", func(rs *RouterService, c *RESTController) {
		rs.AddPostHandler(c, signup, "", func(ctx *RequestContext) *ServiceResult {
			return JSONResult(http.StatusCreated, gin.H{"ok": true})
		})
		rs.AddGetHandler(c, nil, "", func(ctx *RequestContext) *ServiceResult {
			return JSONResult(http.StatusOK, gin.H{"ok": true})
		})
	}))

	post := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/limited", nil)
		req.RemoteAddr = "203.0.113.7:5000"
		rs.GetEngine().ServeHTTP(w, req)
		return w
	}

	first := post()
	require.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	require.Equal(t, http.StatusCreated, post().Code)

	refused := post()
	assert.Equal(t, http.StatusTooManyRequests, refused.Code)
	assert.Equal(t, "30", refused.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"code":429,"data":{"limit":2,"window":"1m0s","retry_after_seconds":30},"message":"Too many requests, please try again later"}`, refused.Body.String())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/limited", nil)
	req.RemoteAddr = "203.0.113.7:5000"
	rs.GetEngine().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1000", w.Header().Get("X-RateLimit-Limit"))
}

func TestRegister_DuplicateRoutePanics(t *testing.T) {
	rs := newTestRouterService(t)
	handler := func(ctx *RequestContext) *ServiceResult { return OKResult(nil, "ok") }

	rs.MountController(NewRESTController("First", "dup", func(rs *RouterService, c *RESTController) {
		rs.AddGetHandler(c, nil, "", handler)
	}))

	assert.Panics(t, func() {
		rs.MountController(NewRESTController("Second", "dup", func(rs *RouterService, c *RESTController) {
			rs.AddGetHandler(c, nil, "", handler)
		}))
	})
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	rs := newTestRouterService(t, func(cfg *RouterConfig) {
		cfg.AllowedOrigins = []string{"https://waitlist.example.com"}
	})
	mountTestController(rs)

	preflight := httptest.NewRequest(http.MethodOptions, "/echo", nil)
	preflight.Header.Set("Origin", "https://waitlist.example.com")
	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, preflight)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://waitlist.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")

	other := httptest.NewRequest(http.MethodGet, "/ip", nil)
	other.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, other)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSecurityHeaders_HSTSOnlyOverHTTPS(t *testing.T) {
	rs := newTestRouterService(t, func(cfg *RouterConfig) {
		cfg.HSTS = HSTSConfig{Enabled: true, MaxAge: time.Hour, IncludeSubdomains: false}
	})
	mountTestController(rs)

	plain := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(plain, httptest.NewRequest(http.MethodGet, "/ip", nil))
	assert.Empty(t, plain.Header().Get("Strict-Transport-Security"))
	assert.Equal(t, "nosniff", plain.Header().Get("X-Content-Type-Options"))

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	secure := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(secure, req)
	assert.Equal(t, "max-age=3600", secure.Header().Get("Strict-Transport-Security"))
}

func TestCorrelationID_EchoedOrGenerated(t *testing.T) {
	rs := newTestRouterService(t)
	mountTestController(rs)

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("X-Correlation-ID", "req-123")
	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get("X-Correlation-ID"))

	w = httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ip", nil))
	assert.NotEmpty(t, w.Header().Get("X-Correlation-ID"))
}

func TestMetrics_ExposedWhenEnabled(t *testing.T) {
	rs := newTestRouterService(t, func(cfg *RouterConfig) {
		cfg.MetricsEnabled = true
	})
	mountTestController(rs)

	rs.GetEngine().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ip", nil))

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",route="/ip",status="200"} 1`)
}

func TestUnknownRoute_Envelope(t *testing.T) {
	rs := newTestRouterService(t)

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"code":404,"data":null,"message":"Route not found"}`, w.Body.String())
}

func TestValidationErrorResult(t *testing.T) {
	type form struct {
		Email string `json:"email" binding:"required"`
	}

	rs := newTestRouterService(t)
	rs.MountController(NewRESTController("Forms", "forms", func(rs *RouterService, c *RESTController) {
		rs.AddPostHandler(c, nil, "", func(ctx *RequestContext) *ServiceResult {
			var req form
			if err := ctx.ShouldBindJSON(&req); err != nil {
				return ValidationErrorResult(err, &req)
			}
			return OKResult(req, "ok")
		})
	}))

	send := func(body string) map[string]any {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/forms", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		rs.GetEngine().ServeHTTP(w, req)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var out map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		return out
	}

	assert.Equal(t, "Email is required", send(`{}`)["message"])
	assert.Equal(t, "Invalid request body", send(`{"email":`)["message"])
	assert.Equal(t, "Invalid request body", send(``)["message"])
}

func TestJoinRoute(t *testing.T) {
	assert.Equal(t, "/", joinRoute(""))
	assert.Equal(t, "/api/waitlist", joinRoute("api", "/waitlist/"))
	assert.Equal(t, "/api/admin/export", joinRoute("/api/admin", "export"))
	assert.Equal(t, "/ip", NewRESTController("Root", "/", nil).route("ip"))
}

func TestNilHandlerResult_IsInternalError(t *testing.T) {
	rs := newTestRouterService(t)
	rs.MountController(NewRESTController("Broken", "broken", func(rs *RouterService, c *RESTController) {
		rs.AddGetHandler(c, nil, "", func(ctx *RequestContext) *ServiceResult { return nil })
	}))

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/broken", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"code":500,"data":null,"message":"Internal server error"}`, w.Body.String())
}
