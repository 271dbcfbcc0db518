package shared

import (
	"errors"
	"time"
)

// Reporting periods accepted by list and dashboard endpoints.
const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYTD     = "ytd"
	PeriodCustom  = "custom"
	PeriodAllTime = "all_time"
)

// ErrInvalidPeriod indicates an unknown period or a custom period without bounds.
var ErrInvalidPeriod = errors.New("invalid period")

// DateRange bounds a period filter. A zero From means unbounded.
type DateRange struct {
	From time.Time
	To   time.Time
}

// IsZero reports whether the range imposes no filter.
func (r DateRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// ResolvePeriod turns a named period into a concrete date range relative to now.
// The financial year starts on April 1st, so "ytd" runs from the most recent
// April 1st to now.
func ResolvePeriod(period string, from, to *time.Time, now time.Time) (DateRange, error) {
	switch period {
	case "", PeriodAllTime:
		return DateRange{}, nil
	case PeriodWeekly:
		return DateRange{From: now.AddDate(0, 0, -7), To: now}, nil
	case PeriodMonthly:
		return DateRange{From: now.AddDate(0, 0, -30), To: now}, nil
	case PeriodYTD:
		year := now.Year()
		if now.Month() < time.April {
			year--
		}
		return DateRange{From: time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC), To: now}, nil
	case PeriodCustom:
		if from == nil || to == nil {
			return DateRange{}, ErrInvalidPeriod
		}
		return DateRange{From: *from, To: *to}, nil
	default:
		return DateRange{}, ErrInvalidPeriod
	}
}
