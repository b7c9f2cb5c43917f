package stats

const (
	SourceLive     = "supabase"
	SourceFallback = "fallback"

	FallbackTotalSignups int64   = 10247
	FallbackGrowthRate   float64 = 12.5
)

// StatsResponse is the public counter payload. WeeklySignups is omitted on fallback.
type StatsResponse struct {
	TotalSignups  int64   `json:"totalSignups"`
	WeeklySignups *int64  `json:"weeklySignups,omitempty"`
	GrowthRate    float64 `json:"growthRate"`
	LastUpdated   string  `json:"lastUpdated"`
	Source        string  `json:"source"`
}
