// internal/cache/snapshot_test.go
package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suqpos/backend-go/internal/domain"
)

func resolveAt(t *testing.T, period domain.Period, now time.Time) domain.TimeRange {
	t.Helper()
	rng, err := period.Resolve(now, nil, nil)
	require.NoError(t, err)
	return rng
}

func TestSnapshotKeyStableAcrossConsecutiveRequests(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

	for _, period := range []domain.Period{domain.PeriodWeek, domain.PeriodMonth, domain.PeriodYear, domain.PeriodAll} {
		first := buildSnapshotKey(period, resolveAt(t, period, now))
		second := buildSnapshotKey(period, resolveAt(t, period, now.Add(time.Millisecond)))
		assert.Equal(t, first, second, "period %s must reuse its cache entry", period)
	}
}

func TestSnapshotKeyDistinguishesPeriods(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

	week := buildSnapshotKey(domain.PeriodWeek, resolveAt(t, domain.PeriodWeek, now))
	month := buildSnapshotKey(domain.PeriodMonth, resolveAt(t, domain.PeriodMonth, now))
	assert.NotEqual(t, week, month)
}

func TestSnapshotKeyTodayRollsOverAtMidnight(t *testing.T) {
	morning := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC)
	nextDay := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	assert.Equal(t,
		buildSnapshotKey(domain.PeriodToday, resolveAt(t, domain.PeriodToday, morning)),
		buildSnapshotKey(domain.PeriodToday, resolveAt(t, domain.PeriodToday, evening)))
	assert.NotEqual(t,
		buildSnapshotKey(domain.PeriodToday, resolveAt(t, domain.PeriodToday, morning)),
		buildSnapshotKey(domain.PeriodToday, resolveAt(t, domain.PeriodToday, nextDay)))
}

func TestSnapshotKeyCustomKeyedOnBounds(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	otherEnd := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	rng, err := domain.PeriodCustom.Resolve(time.Now(), &start, &end)
	require.NoError(t, err)
	same, err := domain.PeriodCustom.Resolve(time.Now(), &start, &end)
	require.NoError(t, err)
	other, err := domain.PeriodCustom.Resolve(time.Now(), &start, &otherEnd)
	require.NoError(t, err)

	assert.Equal(t,
		buildSnapshotKey(domain.PeriodCustom, rng),
		buildSnapshotKey(domain.PeriodCustom, same))
	assert.NotEqual(t,
		buildSnapshotKey(domain.PeriodCustom, rng),
		buildSnapshotKey(domain.PeriodCustom, other))
}
