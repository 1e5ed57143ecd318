// Package daterange holds the calendar-date range and bucketing helpers
// shared by every adapter and the overview aggregator.
package daterange

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const Layout = "2006-01-02"

// Strict shape check before time.Parse so "2024-1-1" and trailing junk
// are rejected with the same error as impossible dates.
var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var (
	ErrInvalidDate        = errors.New("invalid date format")
	ErrInvalidRange       = errors.New("invalid date range")
	ErrInvalidGranularity = errors.New("invalid granularity")
)

type Granularity string

const (
	GranularityDay  Granularity = "day"
	GranularityWeek Granularity = "week"
)

func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityDay:
		return GranularityDay, nil
	case GranularityWeek:
		return GranularityWeek, nil
	default:
		return "", ErrInvalidGranularity
	}
}

// Range is an inclusive calendar-date window. Both bounds are midnight
// UTC; From <= To always holds for values built through New or ParseRange.
type Range struct {
	From time.Time
	To   time.Time
}

func ParseDate(s string) (time.Time, error) {
	if !dateRe.MatchString(s) {
		return time.Time{}, ErrInvalidDate
	}
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func New(from, to time.Time) (Range, error) {
	if from.After(to) {
		return Range{}, ErrInvalidRange
	}
	return Range{From: from, To: to}, nil
}

func ParseRange(from, to string) (Range, error) {
	f, err := ParseDate(from)
	if err != nil {
		return Range{}, err
	}
	t, err := ParseDate(to)
	if err != nil {
		return Range{}, err
	}
	return New(f, t)
}

// LastNDays returns the trailing n-day window ending today (UTC).
func LastNDays(n int) Range {
	now := time.Now().UTC()
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return Range{From: to.AddDate(0, 0, -(n - 1)), To: to}
}

// Days is the inclusive day count of the range.
func (r Range) Days() int {
	return int(r.To.Sub(r.From).Hours()/24) + 1
}

// Previous is the immediately preceding period of equal length, ending
// the day before From.
func (r Range) Previous() Range {
	to := r.From.AddDate(0, 0, -1)
	return Range{From: to.AddDate(0, 0, -(r.Days() - 1)), To: to}
}

// Buckets returns the start date of every series bucket in the range.
// Day granularity yields Days() buckets; week yields ceil(Days()/7).
func (r Range) Buckets(g Granularity) []time.Time {
	days := r.Days()
	step := 1
	if g == GranularityWeek {
		step = 7
	}
	n := (days + step - 1) / step
	out := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, r.From.AddDate(0, 0, i*step))
	}
	return out
}

// BucketIndex maps a timestamp to its bucket position, or -1 when the
// timestamp's calendar date falls outside the range.
func (r Range) BucketIndex(t time.Time, g Granularity) int {
	u := t.UTC()
	day := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	idx := int(day.Sub(r.From).Hours() / 24)
	if idx < 0 || idx >= r.Days() {
		return -1
	}
	if g == GranularityWeek {
		idx /= 7
	}
	return idx
}

func (r Range) String() string {
	return r.From.Format(Layout) + ".." + r.To.Format(Layout)
}

// Trend renders the period-over-period delta the way the dashboard
// expects it: "+100%" when a metric appears from nothing, "0%" when both
// periods are zero, otherwise the signed percentage to one decimal.
func Trend(current, previous float64) string {
	if previous == 0 {
		if current == 0 {
			return "0%"
		}
		return "+100%"
	}
	pct := (current - previous) / previous * 100
	s := strconv.FormatFloat(pct, 'f', 1, 64)
	if pct > 0 {
		s = "+" + s
	}
	return s + "%"
}

// CacheKey builds the deterministic key for a request-scoped cache
// entry. Every parameter that changes the result must be included.
func CacheKey(endpoint string, r Range, g Granularity) string {
	return fmt.Sprintf("%s|%s|%s", endpoint, r.String(), g)
}
