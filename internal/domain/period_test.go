package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePeriods(t *testing.T) {
	loc := time.FixedZone("EAT", 3*3600)
	now := time.Date(2026, 3, 14, 15, 30, 0, 0, loc)

	tests := []struct {
		period   Period
		wantFrom *time.Time
	}{
		{PeriodToday, timePtr(time.Date(2026, 3, 14, 0, 0, 0, 0, loc))},
		{PeriodWeek, timePtr(now.AddDate(0, 0, -7))},
		{PeriodMonth, timePtr(now.AddDate(0, -1, 0))},
		{PeriodYear, timePtr(now.AddDate(-1, 0, 0))},
		{PeriodAll, nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			rng, err := tt.period.Resolve(now, nil, nil)
			require.NoError(t, err)
			if tt.wantFrom == nil {
				assert.Nil(t, rng.From)
			} else {
				require.NotNil(t, rng.From)
				assert.True(t, rng.From.Equal(*tt.wantFrom))
			}
			assert.Nil(t, rng.To)
		})
	}
}

func TestResolveCustomRequiresBothBounds(t *testing.T) {
	now := time.Now()
	start := now.AddDate(0, 0, -3)

	_, err := PeriodCustom.Resolve(now, &start, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.True(t, IsValidation(err))

	_, err = PeriodCustom.Resolve(now, nil, &now)
	assert.ErrorIs(t, err, ErrInvalidRange)

	rng, err := PeriodCustom.Resolve(now, &start, &now)
	require.NoError(t, err)
	assert.True(t, rng.Contains(start))
	assert.True(t, rng.Contains(now))
	assert.False(t, rng.Contains(now.Add(time.Second)))
}

func TestResolveCustomRejectsInvertedRange(t *testing.T) {
	now := time.Now()
	start := now.AddDate(0, 0, 1)

	_, err := PeriodCustom.Resolve(now, &start, &now)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, PeriodAll, p)

	p, err = ParsePeriod("week")
	require.NoError(t, err)
	assert.Equal(t, PeriodWeek, p)

	_, err = ParsePeriod("fortnight")
	assert.True(t, IsValidation(err))
}

func TestDailyDivisor(t *testing.T) {
	assert.Equal(t, 7.0, PeriodWeek.DailyDivisor())
	assert.Equal(t, 30.0, PeriodMonth.DailyDivisor())
	assert.Equal(t, 365.0, PeriodYear.DailyDivisor())
	assert.Equal(t, 1.0, PeriodToday.DailyDivisor())
	assert.Equal(t, 1.0, PeriodAll.DailyDivisor())
	assert.Equal(t, 1.0, PeriodCustom.DailyDivisor())
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, CategoryRent, NormalizeCategory("rent"))
	assert.Equal(t, CategoryRent, NormalizeCategory(" Rent "))
	assert.Equal(t, CategoryOther, NormalizeCategory(""))
	assert.Equal(t, CategoryOther, NormalizeCategory("fuel"))
}

func timePtr(t time.Time) *time.Time { return &t }
