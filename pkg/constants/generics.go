package constants

import "time"

// RFC3339DateTimeFormat is used for every timestamp in API responses.
const RFC3339DateTimeFormat = "2006-01-02T15:04:05Z07:00"

// DayFormat keys daily signup buckets and export filenames.
const DayFormat = "2006-01-02"

// Reporting windows, measured back from now.
const (
	WeekWindow  = 7 * 24 * time.Hour
	MonthWindow = 30 * 24 * time.Hour
)
