package utils

import "math"

// GrowthRate is part/total as a percentage rounded to one decimal place. Zero when total is zero.
func GrowthRate(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

// WholePercent is part/total as a percentage rounded to the nearest integer.
func WholePercent(part, total int64) int64 {
	if total <= 0 {
		return 0
	}
	return int64(math.Round(float64(part) / float64(total) * 100))
}
