package dashboard

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/akeren/waitlist-api/internal/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit within a 32-bit offset.
	MaxPage = math.MaxInt32 / MaxLimit

	DefaultSortBy    = "subscribed_at"
	DefaultSortOrder = "desc"

	FormatJSON = "json"
	FormatCSV  = "csv"

	ActionExportSelected = "export_selected"

	SelectedExportFilename = "selected_subscribers.csv"

	recentActivityLimit = 10
	unknownSource       = "unknown"
)

var sortableColumns = map[string]bool{
	"subscribed_at": true,
	"created_at":    true,
	"email":         true,
	"first_name":    true,
	"source":        true,
}

type DashboardStats struct {
	TotalSubscribers     int64   `json:"totalSubscribers"`
	TodaySignups         int64   `json:"todaySignups"`
	WeeklySignups        int64   `json:"weeklySignups"`
	MonthlySignups       int64   `json:"monthlySignups"`
	ConvertKitSynced     int64   `json:"convertKitSynced"`
	TotalFeatureRequests int64   `json:"totalFeatureRequests"`
	GrowthRate           float64 `json:"growthRate"`
	SyncRate             int64   `json:"syncRate"`
}

type ActivityItem struct {
	Email        string  `json:"email"`
	FirstName    *string `json:"firstName"`
	SubscribedAt string  `json:"subscribedAt"`
	Source       string  `json:"source"`
	TimeAgo      string  `json:"timeAgo"`
}

type DashboardResponse struct {
	Stats              DashboardStats   `json:"stats"`
	RecentActivity     []ActivityItem   `json:"recentActivity"`
	SourceDistribution map[string]int64 `json:"sourceDistribution"`
	DailySignups       map[string]int64 `json:"dailySignups"`
	LastUpdated        string           `json:"lastUpdated"`
}

// SubscriberQuery is the normalised form of the listing query string.
type SubscriberQuery struct {
	Page      int
	Limit     int
	Search    string
	Source    string
	SortBy    string
	SortOrder string
	Format    string
}

// ParseSubscriberQuery applies defaults and clamps. Unparseable numbers fall back to defaults.
func ParseSubscriberQuery(values url.Values) SubscriberQuery {
	q := SubscriberQuery{
		Page:      atoiOr(values.Get("page"), DefaultPage),
		Limit:     atoiOr(values.Get("limit"), DefaultLimit),
		Search:    strings.TrimSpace(values.Get("search")),
		Source:    strings.TrimSpace(values.Get("source")),
		SortBy:    values.Get("sortBy"),
		SortOrder: strings.ToLower(values.Get("sortOrder")),
		Format:    strings.ToLower(values.Get("format")),
	}

	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	if q.Limit < 1 {
		q.Limit = 1
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if !sortableColumns[q.SortBy] {
		q.SortBy = DefaultSortBy
	}
	if q.SortOrder != "asc" {
		q.SortOrder = DefaultSortOrder
	}
	if q.Format != FormatCSV {
		q.Format = FormatJSON
	}

	return q
}

func (q SubscriberQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

func (q SubscriberQuery) Filter() SubscriberFilter {
	return SubscriberFilter{
		Search:    q.Search,
		Source:    q.Source,
		SortBy:    q.SortBy,
		Ascending: q.SortOrder == "asc",
	}
}

func atoiOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return n
}

type SubscriberView struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	FirstName    *string `json:"firstName"`
	SubscribedAt string  `json:"subscribedAt"`
	ConvertKitID *string `json:"convertKitId"`
	Source       string  `json:"source"`
	CreatedAt    string  `json:"createdAt"`
	IsSynced     bool    `json:"isSynced"`
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
	Limit       int   `json:"limit"`
}

type Filters struct {
	Search    string `json:"search"`
	Source    string `json:"source"`
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
}

type SubscriberPage struct {
	Subscribers []SubscriberView `json:"subscribers"`
	Pagination  Pagination       `json:"pagination"`
	Filters     Filters          `json:"filters"`
}

type BulkActionRequest struct {
	Action        string   `json:"action" binding:"required"`
	SubscriberIDs []string `json:"subscriberIds"`
}

// Export is a generated CSV file.
type Export struct {
	Filename   string
	Content    []byte
	ArchiveKey string
}

func NewPagination(q SubscriberQuery, total int64) Pagination {
	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))

	return Pagination{
		CurrentPage: q.Page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNext:     q.Page < totalPages,
		HasPrev:     q.Page > 1,
		Limit:       q.Limit,
	}
}

func ToSubscriberView(entry models.WaitlistEntry) SubscriberView {
	return SubscriberView{
		ID:           entry.ID,
		Email:        entry.Email,
		FirstName:    entry.FirstName,
		SubscribedAt: formatTimestamp(entry.SubscribedAt),
		ConvertKitID: entry.ConvertKitSubscriberID,
		Source:       entry.Source,
		CreatedAt:    formatTimestamp(entry.CreatedAt),
		IsSynced:     entry.IsSynced(),
	}
}

func ToSubscriberViews(entries []models.WaitlistEntry) []SubscriberView {
	views := make([]SubscriberView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, ToSubscriberView(entry))
	}
	return views
}
