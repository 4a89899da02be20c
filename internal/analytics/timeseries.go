// internal/analytics/timeseries.go
package analytics

import (
	"time"

	"github.com/suqpos/backend-go/internal/domain"
)

// TimeSeries buckets revenue/profit/expense sums for chart rendering.
// Week and month use daily buckets, year uses monthly buckets. Every slot
// in range gets a bucket even with zero activity, oldest first, and every
// record inside the period lands in exactly one bucket so the bucket sums
// match the period totals.
func TimeSeries(sales []domain.Sale, expenses []domain.Expense, period domain.Period, now time.Time) []domain.TimeSeriesPoint {
	switch period {
	case domain.PeriodWeek:
		return dailyBuckets(sales, expenses, now, 7, "Mon")
	case domain.PeriodYear:
		return monthlyBuckets(sales, expenses, now)
	default:
		// The charts default to the month view for every other period.
		return dailyBuckets(sales, expenses, now, 30, "Jan 2")
	}
}

// dailyBuckets splits the trailing window into 24h slices ending at now.
// Records outside the window clamp into the nearest edge bucket rather
// than disappearing; the period filter has already bounded them.
func dailyBuckets(sales []domain.Sale, expenses []domain.Expense, now time.Time, days int, labelFormat string) []domain.TimeSeriesPoint {
	from := now.AddDate(0, 0, -days)

	points := make([]domain.TimeSeriesPoint, days)
	for i := 0; i < days; i++ {
		points[i].Label = now.AddDate(0, 0, -(days - 1 - i)).Format(labelFormat)
	}

	slot := func(t time.Time) int {
		i := int(t.Sub(from) / (24 * time.Hour))
		if i < 0 {
			i = 0
		}
		if i >= days {
			i = days - 1
		}
		return i
	}

	for _, s := range sales {
		i := slot(s.CreatedAt)
		points[i].Revenue += s.Revenue
		points[i].Profit += s.Profit
	}
	for _, e := range expenses {
		points[slot(e.CreatedAt)].Expenses += e.Amount
	}
	return points
}

// monthlyBuckets emits one bucket per calendar month touched by the
// trailing year, oldest first.
func monthlyBuckets(sales []domain.Sale, expenses []domain.Expense, now time.Time) []domain.TimeSeriesPoint {
	loc := now.Location()
	from := now.AddDate(-1, 0, 0)
	first := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, loc)
	last := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

	var points []domain.TimeSeriesPoint
	index := make(map[string]int)
	for month := first; !month.After(last); month = month.AddDate(0, 1, 0) {
		index[month.Format("2006-01")] = len(points)
		points = append(points, domain.TimeSeriesPoint{Label: month.Format("Jan")})
	}

	for _, s := range sales {
		if i, ok := index[s.CreatedAt.In(loc).Format("2006-01")]; ok {
			points[i].Revenue += s.Revenue
			points[i].Profit += s.Profit
		}
	}
	for _, e := range expenses {
		if i, ok := index[e.CreatedAt.In(loc).Format("2006-01")]; ok {
			points[i].Expenses += e.Amount
		}
	}
	return points
}
