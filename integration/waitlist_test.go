package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akeren/waitlist-api/config"
	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/domain"
	"github.com/akeren/waitlist-api/internal/archive"
	"github.com/akeren/waitlist-api/internal/database"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/mailer"
	"github.com/akeren/waitlist-api/internal/models"
	"github.com/akeren/waitlist-api/internal/testutil"
	"github.com/akeren/waitlist-api/pkg/adminauth"
	"github.com/akeren/waitlist-api/pkg/factory"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/suite"
)

const adminSecret = "integration-admin-secret"

type recordingPutter struct {
	mu   sync.Mutex
	keys []string
}

func (p *recordingPutter) PutObject(_ context.Context, _, objectName string, reader io.Reader, _ int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return minio.UploadInfo{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, objectName)

	return minio.UploadInfo{Key: objectName}, nil
}

func (p *recordingPutter) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

type WaitlistAPITestSuite struct {
	suite.Suite
	db         database.Handle
	server     *httptest.Server
	convertKit *httptest.Server
	failSync   atomic.Bool
	formCalls  atomic.Int32
	putter     *recordingPutter
	appConfig  *config.ApplicationConfig
}

func (suite *WaitlistAPITestSuite) SetupTest() {
	logger := log.NewLogger(io.Discard, slog.LevelError)

	suite.failSync.Store(false)
	suite.formCalls.Store(0)
	suite.convertKit = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/v3/forms/") {
			suite.formCalls.Add(1)
		}
		if suite.failSync.Load() {
			http.Error(w, `{"error":"upstream"}`, http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"subscription":{"subscriber":{"id":4242}}}`))
	}))

	suite.db = testutil.NewSQLiteHandle(suite.T())
	suite.putter = &recordingPutter{}

	factories := factory.NewFactoryContainer(nil, logger, nil)

	suite.appConfig = &config.ApplicationConfig{
		DB:           suite.db,
		Logger:       logger,
		Integrations: &config.IntegrationsConfig{},
		Factories:    factories,
		MailerSync: config.NewMailerSync(logger, mailer.Config{
			BaseURL:    suite.convertKit.URL,
			APISecret:  "ck-secret",
			FormID:     "123",
			SequenceID: "456",
			Timeout:    2 * time.Second,
		}, factories),
		Archive:    archive.NewArchiver(suite.putter, "exports", logger),
		AdminGuard: adminauth.NewGuard(adminSecret),
	}

	suite.appConfig.RouterService = router.CreateRouterService(logger, nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    30 * time.Second,
	})

	domain.SetupCoreDomain(suite.appConfig)

	suite.server = httptest.NewServer(suite.appConfig.RouterService.GetEngine())
}

func (suite *WaitlistAPITestSuite) TearDownTest() {
	if suite.server != nil {
		suite.server.Close()
	}
	if suite.convertKit != nil {
		suite.convertKit.Close()
	}
}

func (suite *WaitlistAPITestSuite) do(method, path, body string, header http.Header) (*http.Response, []byte) {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req, err := http.NewRequest(method, suite.server.URL+path, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	suite.Require().NoError(err)

	return resp, raw
}

func (suite *WaitlistAPITestSuite) decode(raw []byte) map[string]any {
	var out map[string]any
	suite.Require().NoError(json.Unmarshal(raw, &out), string(raw))
	return out
}

func bearer(secret string) http.Header {
	return http.Header{"Authorization": []string{"Bearer " + secret}}
}

func (suite *WaitlistAPITestSuite) TestHealthCheck() {
	resp, raw := suite.do(http.MethodGet, "/health", "", nil)
	suite.Equal(http.StatusOK, resp.StatusCode)

	response := suite.decode(raw)
	suite.Contains(response["message"], "health check completed")

	data := response["data"].(map[string]any)
	suite.Equal(float64(1), data["database"])
	suite.Equal(float64(1), data["mailer"])
	suite.Equal(float64(1), data["storage"])
	suite.Equal(float64(0), data["cache"])
}

func (suite *WaitlistAPITestSuite) TestSignupSyncsAndCounts() {
	resp, raw := suite.do(http.MethodPost, "/api/waitlist", `{"email":"Ada@Example.com","firstName":"Ada"}`, nil)
	suite.Require().Equal(http.StatusOK, resp.StatusCode, string(raw))

	body := suite.decode(raw)
	suite.Equal("Successfully added to waitlist", body["message"])
	suite.Equal(float64(1), body["totalSignups"])
	suite.Equal(true, body["convertKitSynced"])

	var stored models.WaitlistEntry
	suite.Require().NoError(suite.db.Raw().First(&stored, "email = ?", "ada@example.com").Error)
	suite.Require().NotNil(stored.ConvertKitSubscriberID)
	suite.Equal("4242", *stored.ConvertKitSubscriberID)

	resp, raw = suite.do(http.MethodGet, "/api/waitlist", "", nil)
	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal(float64(1), suite.decode(raw)["totalSignups"])
}

func (suite *WaitlistAPITestSuite) TestDuplicateSignupIsCaseInsensitive() {
	resp, _ := suite.do(http.MethodPost, "/api/waitlist", `{"email":"dup@example.com"}`, nil)
	suite.Require().Equal(http.StatusOK, resp.StatusCode)

	resp, raw := suite.do(http.MethodPost, "/api/waitlist", `{"email":"DUP@Example.COM"}`, nil)
	suite.Equal(http.StatusConflict, resp.StatusCode)
	suite.Equal("Email already registered", suite.decode(raw)["message"])
	suite.Equal(int32(1), suite.formCalls.Load())
}

func (suite *WaitlistAPITestSuite) TestSignupSurvivesMailerOutage() {
	suite.failSync.Store(true)

	resp, raw := suite.do(http.MethodPost, "/api/waitlist", `{"email":"offline@example.com"}`, nil)
	suite.Require().Equal(http.StatusOK, resp.StatusCode, string(raw))
	suite.Equal(false, suite.decode(raw)["convertKitSynced"])

	var stored models.WaitlistEntry
	suite.Require().NoError(suite.db.Raw().First(&stored, "email = ?", "offline@example.com").Error)
	suite.False(stored.IsSynced())
}

func (suite *WaitlistAPITestSuite) TestSignupAcceptsLongEmail() {
	email := strings.Repeat("b", 300) + "@example.com"

	resp, raw := suite.do(http.MethodPost, "/api/waitlist", `{"email":"`+email+`"}`, nil)
	suite.Equal(http.StatusOK, resp.StatusCode, string(raw))
}

func (suite *WaitlistAPITestSuite) TestSignupValidation() {
	for _, body := range []string{
		`{}`,
		`{"email":"not-an-email"}`,
		`{"email":"a b@example.com"}`,
		`{"email":`,
	} {
		resp, raw := suite.do(http.MethodPost, "/api/waitlist", body, nil)
		suite.Equal(http.StatusBadRequest, resp.StatusCode, body)
		suite.Equal(float64(400), suite.decode(raw)["code"], body)
	}
}

func (suite *WaitlistAPITestSuite) TestFeatureRequestBounds() {
	cases := []struct {
		text string
		want int
	}{
		{strings.Repeat("a", 9), http.StatusBadRequest},
		{strings.Repeat("a", 10), http.StatusOK},
		{"  " + strings.Repeat("a", 1000) + "  ", http.StatusOK},
		{strings.Repeat("a", 1001), http.StatusBadRequest},
	}

	for _, tc := range cases {
		payload, _ := json.Marshal(map[string]string{"email": "ada@example.com", "featureRequest": tc.text})
		resp, raw := suite.do(http.MethodPost, "/api/feature-requests", string(payload), nil)
		suite.Equal(tc.want, resp.StatusCode, string(raw))
	}

	resp, raw := suite.do(http.MethodGet, "/api/feature-requests", "", nil)
	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal(float64(2), suite.decode(raw)["totalRequests"])
}

func (suite *WaitlistAPITestSuite) TestStats() {
	testutil.SeedWaitlist(suite.T(), suite.db,
		&models.WaitlistEntry{Email: "a@x.com"},
		&models.WaitlistEntry{Email: "b@x.com", SubscribedAt: time.Now().UTC().Add(-10 * 24 * time.Hour)},
	)

	resp, raw := suite.do(http.MethodGet, "/api/stats", "", nil)
	suite.Equal(http.StatusOK, resp.StatusCode)

	body := suite.decode(raw)
	suite.Equal("supabase", body["source"])
	suite.Equal(float64(2), body["totalSignups"])
	suite.Equal(float64(1), body["weeklySignups"])
	suite.Equal(50.0, body["growthRate"])
}

func (suite *WaitlistAPITestSuite) TestDashboardRequiresSecret() {
	resp, raw := suite.do(http.MethodGet, "/api/dashboard", "", nil)
	suite.Equal(http.StatusUnauthorized, resp.StatusCode)
	suite.Equal("Unauthorized access", suite.decode(raw)["message"])

	resp, _ = suite.do(http.MethodGet, "/api/dashboard?secret=wrong", "", nil)
	suite.Equal(http.StatusUnauthorized, resp.StatusCode)

	resp, _ = suite.do(http.MethodGet, "/api/dashboard", "", bearer(adminSecret))
	suite.Equal(http.StatusOK, resp.StatusCode)
}

func (suite *WaitlistAPITestSuite) TestDashboardAggregates() {
	suite.do(http.MethodPost, "/api/waitlist", `{"email":"ada@example.com","firstName":"Ada"}`, nil)
	suite.do(http.MethodPost, "/api/feature-requests", `{"email":"ada@example.com","featureRequest":"Please add dark mode"}`, nil)

	resp, raw := suite.do(http.MethodGet, "/api/dashboard?secret="+adminSecret, "", nil)
	suite.Require().Equal(http.StatusOK, resp.StatusCode, string(raw))

	body := suite.decode(raw)
	stats := body["stats"].(map[string]any)
	suite.Equal(float64(1), stats["totalSubscribers"])
	suite.Equal(float64(1), stats["convertKitSynced"])
	suite.Equal(float64(100), stats["syncRate"])
	suite.Equal(float64(1), stats["totalFeatureRequests"])

	recent := body["recentActivity"].([]any)
	suite.Require().Len(recent, 1)
	suite.Equal("Just now", recent[0].(map[string]any)["timeAgo"])
	suite.Equal(map[string]any{"waitlist": float64(1)}, body["sourceDistribution"])
}

func (suite *WaitlistAPITestSuite) TestSubscriberListingAndExports() {
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		resp, _ := suite.do(http.MethodPost, "/api/waitlist", `{"email":"`+email+`"}`, nil)
		suite.Require().Equal(http.StatusOK, resp.StatusCode)
	}

	resp, raw := suite.do(http.MethodGet, "/api/dashboard/subscribers?page=2&limit=2&sortBy=email&sortOrder=asc", "", bearer(adminSecret))
	suite.Require().Equal(http.StatusOK, resp.StatusCode, string(raw))

	body := suite.decode(raw)
	subscribers := body["subscribers"].([]any)
	suite.Require().Len(subscribers, 1)
	suite.Equal("c@x.com", subscribers[0].(map[string]any)["email"])

	pagination := body["pagination"].(map[string]any)
	suite.Equal(float64(2), pagination["totalPages"])
	suite.Equal(false, pagination["hasNext"])
	suite.Equal(true, pagination["hasPrev"])

	resp, raw = suite.do(http.MethodGet, "/api/dashboard/subscribers?format=csv&limit=1", "", bearer(adminSecret))
	suite.Require().Equal(http.StatusOK, resp.StatusCode)
	suite.Contains(resp.Header.Get("Content-Disposition"), "subscribers_")
	lines := strings.Split(string(raw), "\n")
	suite.Len(lines, 4)
	suite.Equal("Email,First Name,Subscribed At,Source,ConvertKit ID,Synced,Created At", lines[0])

	var ids []string
	suite.Require().NoError(suite.db.Raw().Model(&models.WaitlistEntry{}).Where("email = ?", "b@x.com").Pluck("id", &ids).Error)

	resp, raw = suite.do(http.MethodPost, "/api/dashboard/subscribers",
		`{"action":"export_selected","subscriberIds":["`+ids[0]+`"]}`, bearer(adminSecret))
	suite.Require().Equal(http.StatusOK, resp.StatusCode, string(raw))
	suite.Equal(`attachment; filename="selected_subscribers.csv"`, resp.Header.Get("Content-Disposition"))
	lines = strings.Split(string(raw), "\n")
	suite.Require().Len(lines, 2)
	suite.True(strings.HasPrefix(lines[1], `"b@x.com","","`))
	suite.True(strings.Contains(lines[1], `"4242","Yes"`))

	keys := suite.putter.Keys()
	suite.Require().Len(keys, 2)
	suite.True(strings.HasPrefix(keys[0], "exports/"))
	suite.True(strings.HasSuffix(keys[1], "/selected_subscribers.csv"))

	resp, _ = suite.do(http.MethodPost, "/api/dashboard/subscribers", `{"action":"purge","subscriberIds":["x"]}`, bearer(adminSecret))
	suite.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (suite *WaitlistAPITestSuite) TestUnknownRoute() {
	resp, raw := suite.do(http.MethodGet, "/api/nope", "", nil)
	suite.Equal(http.StatusNotFound, resp.StatusCode)
	suite.Equal("Route not found", suite.decode(raw)["message"])
}

func TestWaitlistAPITestSuite(t *testing.T) {
	suite.Run(t, new(WaitlistAPITestSuite))
}
