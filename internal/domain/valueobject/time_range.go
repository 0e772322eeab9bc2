// Package valueobject defines immutable value objects for the domain layer.
package valueobject

import (
	"fmt"
	"time"
)

// endOfDayNanos is the .999 millisecond offset of a range's last instant.
const endOfDayNanos = 999 * int(time.Millisecond)

// monthAbbreviations is the fixed English abbreviation table used in period labels.
var monthAbbreviations = [...]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// TimeRange is a closed calendar interval [Start, End].
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange creates a TimeRange. An inverted range is a caller bug and panics.
func NewTimeRange(start, end time.Time) TimeRange {
	if start.After(end) {
		panic(fmt.Sprintf("invalid interval: start %s is after end %s",
			start.Format(time.RFC3339), end.Format(time.RFC3339)))
	}
	return TimeRange{Start: start, End: end}
}

// StartUnix returns the range start in Unix seconds.
func (r TimeRange) StartUnix() int64 {
	return r.Start.Unix()
}

// EndUnix returns the range end in Unix seconds. Sub-second precision is
// truncated, so 23:59:59.999 maps to the 23:59:59 second which is still inside the range.
func (r TimeRange) EndUnix() int64 {
	return r.End.Unix()
}

// Contains reports whether t lies within the closed range.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// MonthRange returns the first through the last instant of the month containing date,
// in date's location.
func MonthRange(date time.Time) TimeRange {
	return monthRangeOf(date.Year(), date.Month(), date.Location())
}

// PreviousMonthRange returns the range of the calendar month before date's month.
// January rolls back to December of the prior year.
func PreviousMonthRange(date time.Time) TimeRange {
	return monthRangeOf(date.Year(), date.Month()-1, date.Location())
}

// YearRange returns Jan 1 00:00:00 through Dec 31 23:59:59.999 of date's year.
func YearRange(date time.Time) TimeRange {
	return yearsRangeOf(date.Year(), date.Year(), date.Location())
}

// PreviousYearRange returns the range of the year before date's year.
func PreviousYearRange(date time.Time) TimeRange {
	return yearsRangeOf(date.Year()-1, date.Year()-1, date.Location())
}

// LastNYearsRange returns Jan 1 of (year - n + 1) through the end of date's year.
// The start year never goes below year 0.
func LastNYearsRange(date time.Time, n int) TimeRange {
	endYear := date.Year()
	startYear := endYear - n + 1
	if startYear < 0 {
		startYear = 0
	}
	if startYear > endYear {
		startYear = endYear
	}
	return yearsRangeOf(startYear, endYear, date.Location())
}

// FormatMonthYear renders a Unix-seconds timestamp as "Mon YYYY" (e.g. "Mar 2024") in loc.
func FormatMonthYear(timestamp int64, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	date := time.Unix(timestamp, 0).In(loc)
	return fmt.Sprintf("%s %d", monthAbbreviations[date.Month()-1], date.Year())
}

// monthRangeOf relies on time.Date normalisation: month 0 is December of the
// previous year and day 0 of the next month is the last day of this one.
func monthRangeOf(year int, month time.Month, loc *time.Location) TimeRange {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := time.Date(year, month+1, 0, 23, 59, 59, endOfDayNanos, loc)
	return NewTimeRange(start, end)
}

func yearsRangeOf(startYear, endYear int, loc *time.Location) TimeRange {
	start := time.Date(startYear, time.January, 1, 0, 0, 0, 0, loc)
	end := time.Date(endYear, time.December, 31, 23, 59, 59, endOfDayNanos, loc)
	return NewTimeRange(start, end)
}
