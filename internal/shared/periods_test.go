package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePeriod(t *testing.T) {
	june := time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)
	february := time.Date(2025, time.February, 10, 10, 0, 0, 0, time.UTC)

	t.Run("empty and all_time impose no filter", func(t *testing.T) {
		for _, period := range []string{"", PeriodAllTime} {
			r, err := ResolvePeriod(period, nil, nil, june)
			require.NoError(t, err)
			assert.True(t, r.IsZero())
		}
	})

	t.Run("weekly looks back seven days", func(t *testing.T) {
		r, err := ResolvePeriod(PeriodWeekly, nil, nil, june)
		require.NoError(t, err)
		assert.Equal(t, june.AddDate(0, 0, -7), r.From)
		assert.Equal(t, june, r.To)
	})

	t.Run("monthly looks back thirty days", func(t *testing.T) {
		r, err := ResolvePeriod(PeriodMonthly, nil, nil, june)
		require.NoError(t, err)
		assert.Equal(t, june.AddDate(0, 0, -30), r.From)
		assert.Equal(t, june, r.To)
	})

	t.Run("ytd starts at april 1st of the current financial year", func(t *testing.T) {
		r, err := ResolvePeriod(PeriodYTD, nil, nil, june)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), r.From)
		assert.Equal(t, june, r.To)
	})

	t.Run("ytd before april falls back to the previous year", func(t *testing.T) {
		r, err := ResolvePeriod(PeriodYTD, nil, nil, february)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), r.From)
	})

	t.Run("custom uses the supplied bounds", func(t *testing.T) {
		from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)
		r, err := ResolvePeriod(PeriodCustom, &from, &to, june)
		require.NoError(t, err)
		assert.Equal(t, from, r.From)
		assert.Equal(t, to, r.To)
	})

	t.Run("custom without both bounds is rejected", func(t *testing.T) {
		from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
		_, err := ResolvePeriod(PeriodCustom, &from, nil, june)
		assert.ErrorIs(t, err, ErrInvalidPeriod)

		_, err = ResolvePeriod(PeriodCustom, nil, nil, june)
		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})

	t.Run("unknown period is rejected", func(t *testing.T) {
		_, err := ResolvePeriod("quarterly", nil, nil, june)
		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})
}
