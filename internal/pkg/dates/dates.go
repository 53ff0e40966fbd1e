package dates

import (
	"net/http"
	"time"

	"github.com/pedrosgmagalhaes/FlightTicker/internal/pkg/exception"
)

// DateLayout is the calendar-date wire format used across search criteria.
const DateLayout = "2006-01-02"

// MonthLayout is the year-month wire format accepted by ExpandMonth.
const MonthLayout = "2006-01"

// ErrMalformedDate signals an input date or month that cannot be parsed.
// Callers degrade to treating the raw input as the only candidate date.
var ErrMalformedDate = exception.ApplicationError{
	StatusCode: http.StatusBadRequest,
	Message:    "malformed date",
}

// Expand returns the ordered, duplicate-free dates from base-daysBefore to
// base+daysAfter inclusive.
func Expand(baseDate string, daysBefore, daysAfter int) ([]string, error) {
	base, err := time.Parse(DateLayout, baseDate)
	if err != nil {
		return nil, ErrMalformedDate
	}

	if daysBefore < 0 {
		daysBefore = 0
	}
	if daysAfter < 0 {
		daysAfter = 0
	}

	expanded := make([]string, 0, daysBefore+daysAfter+1)
	for delta := -daysBefore; delta <= daysAfter; delta++ {
		expanded = append(expanded, base.AddDate(0, 0, delta).Format(DateLayout))
	}

	return expanded, nil
}

// ExpandMonth returns every calendar date in the given "YYYY-MM" month.
func ExpandMonth(yearMonth string) ([]string, error) {
	first, err := time.Parse(MonthLayout, yearMonth)
	if err != nil {
		return nil, ErrMalformedDate
	}

	next := first.AddDate(0, 1, 0)
	expanded := make([]string, 0, 31)
	for day := first; day.Before(next); day = day.AddDate(0, 0, 1) {
		expanded = append(expanded, day.Format(DateLayout))
	}

	return expanded, nil
}

// ExpandOrFallback expands a window around baseDate, falling back to the raw
// input as a single candidate when it cannot be parsed. A bare "YYYY-MM"
// input expands to the whole month instead.
func ExpandOrFallback(baseDate string, daysBefore, daysAfter int) []string {
	if expanded, err := Expand(baseDate, daysBefore, daysAfter); err == nil {
		return expanded
	}

	if expanded, err := ExpandMonth(baseDate); err == nil {
		return expanded
	}

	return []string{baseDate}
}
