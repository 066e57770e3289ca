package core

import (
	"fmt"
	"time"
)

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// Period is a named calendar granularity used to window transactions.
type Period string

// Interval is a closed time range: both endpoints are included.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the interval, endpoints included.
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && !t.After(iv.End)
}

// ParsePeriod validates a period string. The empty string means month,
// the default window of the dashboard.
func ParsePeriod(s string) (Period, error) {
	if s == "" {
		return PeriodMonth, nil
	}
	switch Period(s) {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear, PeriodAll:
		return Period(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
	}
}

func (p Period) Valid() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear, PeriodAll:
		return true
	}
	return false
}

// Range resolves the period around ref to a concrete interval in ref's
// location. Weeks start on Monday. PeriodAll spans the representable range.
func (p Period) Range(ref time.Time) Interval {
	switch p {
	case PeriodDay:
		start := startOfDay(ref)
		return Interval{Start: start, End: endOfDay(start)}
	case PeriodWeek:
		start := startOfWeek(ref)
		return Interval{Start: start, End: endOfDay(start.AddDate(0, 0, 6))}
	case PeriodMonth:
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return Interval{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
	case PeriodYear:
		start := time.Date(ref.Year(), 1, 1, 0, 0, 0, 0, ref.Location())
		return Interval{Start: start, End: start.AddDate(1, 0, 0).Add(-time.Nanosecond)}
	default:
		// PeriodAll: unbounded on both ends.
		return Interval{
			Start: time.Time{},
			End:   time.Unix(1<<62, 0),
		}
	}
}

// Previous shifts ref back by exactly one unit of the period.
// Navigation is not defined for PeriodAll.
func (p Period) Previous(ref time.Time) (time.Time, error) {
	return p.shift(ref, -1)
}

// Next shifts ref forward by exactly one unit of the period.
func (p Period) Next(ref time.Time) (time.Time, error) {
	return p.shift(ref, 1)
}

func (p Period) shift(ref time.Time, n int) (time.Time, error) {
	switch p {
	case PeriodDay:
		return ref.AddDate(0, 0, n), nil
	case PeriodWeek:
		return ref.AddDate(0, 0, 7*n), nil
	case PeriodMonth:
		return ref.AddDate(0, n, 0), nil
	case PeriodYear:
		return ref.AddDate(n, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("%w: no navigation for %q", ErrUnknownPeriod, string(p))
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// startOfWeek returns Monday 00:00:00 of t's ISO week.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	return startOfDay(t).AddDate(0, 0, -offset)
}
