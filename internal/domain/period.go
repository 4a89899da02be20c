package domain

import "time"

// Period selects the time window used to filter sales, expenses and
// movements for one metrics computation. It is never applied to the
// product catalog.
type Period string

const (
	PeriodToday  Period = "today"
	PeriodWeek   Period = "week"
	PeriodMonth  Period = "month"
	PeriodYear   Period = "year"
	PeriodAll    Period = "all"
	PeriodCustom Period = "custom"
)

// ParsePeriod validates a raw period string, defaulting empty to all.
func ParsePeriod(raw string) (Period, error) {
	if raw == "" {
		return PeriodAll, nil
	}
	switch p := Period(raw); p {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodYear, PeriodAll, PeriodCustom:
		return p, nil
	default:
		return "", NewValidationError("unknown period %q", raw)
	}
}

// TimeRange is a resolved filter window. A nil bound means unbounded on
// that side; both bounds are inclusive.
type TimeRange struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether t falls inside the range.
func (r TimeRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// Resolve turns a period into a concrete time range anchored at now.
// Custom requires both bounds and fails with ErrInvalidRange otherwise.
// The semantics are fixed: today is local midnight, week is now-7d, month
// is now-1 calendar month, year is now-1 calendar year, all is unbounded.
func (p Period) Resolve(now time.Time, start, end *time.Time) (TimeRange, error) {
	switch p {
	case PeriodToday:
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return TimeRange{From: &midnight}, nil
	case PeriodWeek:
		from := now.AddDate(0, 0, -7)
		return TimeRange{From: &from}, nil
	case PeriodMonth:
		from := now.AddDate(0, -1, 0)
		return TimeRange{From: &from}, nil
	case PeriodYear:
		from := now.AddDate(-1, 0, 0)
		return TimeRange{From: &from}, nil
	case PeriodAll:
		return TimeRange{}, nil
	case PeriodCustom:
		if start == nil || end == nil {
			return TimeRange{}, ErrInvalidRange
		}
		if end.Before(*start) {
			return TimeRange{}, NewValidationError("start_date is after end_date")
		}
		return TimeRange{From: start, To: end}, nil
	default:
		return TimeRange{}, NewValidationError("unknown period %q", string(p))
	}
}

// DailyDivisor is the fixed day count used for daily averages: 7 for week,
// 30 for month, 365 for year, 1 otherwise. This is a coarse approximation
// kept verbatim for output compatibility, not an elapsed-day count.
func (p Period) DailyDivisor() float64 {
	switch p {
	case PeriodWeek:
		return 7
	case PeriodMonth:
		return 30
	case PeriodYear:
		return 365
	default:
		return 1
	}
}
