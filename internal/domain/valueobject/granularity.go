// Package valueobject defines immutable value objects for the domain layer.
package valueobject

import (
	"strconv"
	"time"
)

// Granularity is the period bucket size of an emission series.
type Granularity string

const (
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// IsValid reports whether g is a supported granularity.
func (g Granularity) IsValid() bool {
	return g == GranularityMonth || g == GranularityYear
}

// PeriodKey truncates t to the granularity and renders it as a zero-padded
// "YYYY-MM" or "YYYY" key. Keys of one granularity sort chronologically.
func (g Granularity) PeriodKey(t time.Time) string {
	if g == GranularityYear {
		return t.Format("2006")
	}
	return t.Format("2006-01")
}

// YearOfPeriodKey returns the calendar year of a "YYYY" or "YYYY-MM" key.
func YearOfPeriodKey(key string) (int, error) {
	if len(key) > 4 {
		key = key[:4]
	}
	return strconv.Atoi(key)
}
