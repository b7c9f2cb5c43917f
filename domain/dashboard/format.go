package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/akeren/waitlist-api/internal/models"
	"github.com/akeren/waitlist-api/pkg/constants"
)

var csvHeader = []string{
	"Email",
	"First Name",
	"Subscribed At",
	"Source",
	"ConvertKit ID",
	"Synced",
	"Created At",
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(constants.RFC3339DateTimeFormat)
}

// EncodeCSV renders entries with an unquoted header and every data field quoted.
// Rows are separated by "\n" with no trailing newline.
func EncodeCSV(entries []models.WaitlistEntry) []byte {
	var b strings.Builder

	b.WriteString(strings.Join(csvHeader, ","))

	for _, entry := range entries {
		synced := "No"
		if entry.IsSynced() {
			synced = "Yes"
		}

		fields := []string{
			entry.Email,
			deref(entry.FirstName),
			formatTimestamp(entry.SubscribedAt),
			entry.Source,
			deref(entry.ConvertKitSubscriberID),
			synced,
			formatTimestamp(entry.CreatedAt),
		}

		b.WriteByte('\n')
		for i, field := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quoteField(field))
		}
	}

	return []byte(b.String())
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ExportFilename names a full export after the UTC day it was produced.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("subscribers_%s.csv", now.UTC().Format(constants.DayFormat))
}

// TimeAgo renders the age of t relative to now in coarse buckets.
func TimeAgo(t, now time.Time) string {
	diff := now.Sub(t)

	minutes := int64(diff / time.Minute)
	hours := int64(diff / time.Hour)
	days := int64(diff / (24 * time.Hour))

	switch {
	case minutes < 1:
		return "Just now"
	case minutes < 60:
		return fmt.Sprintf("%dm ago", minutes)
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	default:
		return t.In(now.Location()).Format("1/2/2006")
	}
}

// startOfDay is local midnight in now's zone.
func startOfDay(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// bucketByDay counts timestamps per UTC calendar day.
func bucketByDay(timestamps []time.Time) map[string]int64 {
	buckets := make(map[string]int64)
	for _, ts := range timestamps {
		buckets[ts.UTC().Format(constants.DayFormat)]++
	}
	return buckets
}
