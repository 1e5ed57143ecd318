package daterange_test

import (
	"testing"
	"time"

	"dashboard-analytics-service/internal/platform/daterange"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, from, to string) daterange.Range {
	t.Helper()
	r, err := daterange.ParseRange(from, to)
	require.NoError(t, err)
	return r
}

func TestParseDate(t *testing.T) {
	d, err := daterange.ParseDate("2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"2024-13-01", "2024-01-32", "2024-1-1", "01-01-2024", "2024-01-01T00:00:00Z", ""} {
		_, err := daterange.ParseDate(bad)
		assert.ErrorIs(t, err, daterange.ErrInvalidDate, "input %q", bad)
	}
}

func TestParseRange_FromAfterTo(t *testing.T) {
	_, err := daterange.ParseRange("2024-02-01", "2024-01-01")
	assert.ErrorIs(t, err, daterange.ErrInvalidRange)
}

func TestDays(t *testing.T) {
	assert.Equal(t, 7, mustRange(t, "2024-01-01", "2024-01-07").Days())
	assert.Equal(t, 1, mustRange(t, "2024-01-01", "2024-01-01").Days())
	// Leap day is counted.
	assert.Equal(t, 30, mustRange(t, "2024-02-01", "2024-03-01").Days())
}

func TestPrevious(t *testing.T) {
	prev := mustRange(t, "2024-01-08", "2024-01-14").Previous()
	assert.Equal(t, mustRange(t, "2024-01-01", "2024-01-07"), prev)

	prev = mustRange(t, "2024-03-05", "2024-03-05").Previous()
	assert.Equal(t, mustRange(t, "2024-03-04", "2024-03-04"), prev)
}

func TestBuckets(t *testing.T) {
	r := mustRange(t, "2024-01-01", "2024-01-07")

	days := r.Buckets(daterange.GranularityDay)
	require.Len(t, days, 7)
	assert.Equal(t, r.From, days[0])
	assert.Equal(t, r.To, days[6])

	weeks := r.Buckets(daterange.GranularityWeek)
	require.Len(t, weeks, 1)
	assert.Equal(t, r.From, weeks[0])

	// 10 days -> ceil(10/7) = 2 week buckets.
	weeks = mustRange(t, "2024-01-01", "2024-01-10").Buckets(daterange.GranularityWeek)
	require.Len(t, weeks, 2)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), weeks[1])
}

func TestBucketIndex(t *testing.T) {
	r := mustRange(t, "2024-01-01", "2024-01-10")

	// Time of day is ignored; only the calendar date matters.
	ts := time.Date(2024, 1, 3, 15, 42, 0, 0, time.UTC)
	assert.Equal(t, 2, r.BucketIndex(ts, daterange.GranularityDay))
	assert.Equal(t, 0, r.BucketIndex(ts, daterange.GranularityWeek))
	assert.Equal(t, 1, r.BucketIndex(time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), daterange.GranularityWeek))

	assert.Equal(t, -1, r.BucketIndex(time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC), daterange.GranularityDay))
	assert.Equal(t, -1, r.BucketIndex(time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), daterange.GranularityDay))
}

func TestTrend(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     string
	}{
		{"both_zero", 0, 0, "0%"},
		{"from_zero", 7, 0, "+100%"},
		{"halved", 5, 10, "-50.0%"},
		{"unchanged", 42, 42, "0.0%"},
		{"up_one_decimal", 110, 100, "+10.0%"},
		{"fractional", 101, 100, "+1.0%"},
		{"down_fraction", 99, 100, "-1.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, daterange.Trend(tt.current, tt.previous))
		})
	}
}

func TestCacheKey(t *testing.T) {
	r := mustRange(t, "2024-01-01", "2024-01-07")
	assert.Equal(t, "overview|2024-01-01..2024-01-07|day", daterange.CacheKey("overview", r, daterange.GranularityDay))

	// Different granularity must never collide.
	assert.NotEqual(t,
		daterange.CacheKey("overview", r, daterange.GranularityDay),
		daterange.CacheKey("overview", r, daterange.GranularityWeek))
}

func TestLastNDays(t *testing.T) {
	r := daterange.LastNDays(30)
	assert.Equal(t, 30, r.Days())
	assert.True(t, r.From.Before(r.To))
}
