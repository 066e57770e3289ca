package core

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParsePeriod(t *testing.T) {
	for _, s := range []string{"day", "week", "month", "year", "all"} {
		if p, err := ParsePeriod(s); err != nil || string(p) != s {
			t.Fatalf("ParsePeriod(%q) = (%q, %v)", s, p, err)
		}
	}
	if p, err := ParsePeriod(""); err != nil || p != PeriodMonth {
		t.Fatalf("empty period should default to month, got (%q, %v)", p, err)
	}
	if _, err := ParsePeriod("quarter"); !errors.Is(err, ErrUnknownPeriod) {
		t.Fatalf("expected ErrUnknownPeriod, got %v", err)
	}
}

func TestRangeDay(t *testing.T) {
	ref := time.Date(2024, 3, 15, 14, 30, 12, 0, time.UTC)
	iv := PeriodDay.Range(ref)

	if !iv.Start.Equal(date(2024, 3, 15)) {
		t.Fatalf("start = %v", iv.Start)
	}
	if !iv.Contains(date(2024, 3, 15)) {
		t.Fatal("midnight at start of day must be included")
	}
	if !iv.Contains(time.Date(2024, 3, 15, 23, 59, 59, 999999999, time.UTC)) {
		t.Fatal("last instant of the day must be included")
	}
	if iv.Contains(date(2024, 3, 16)) {
		t.Fatal("next midnight must be excluded")
	}
}

func TestRangeWeekStartsMonday(t *testing.T) {
	cases := []struct {
		ref       time.Time
		wantStart time.Time
	}{
		{date(2024, 3, 15), date(2024, 3, 11)}, // Friday -> Monday same week
		{date(2024, 3, 11), date(2024, 3, 11)}, // Monday -> itself
		{date(2024, 3, 17), date(2024, 3, 11)}, // Sunday belongs to the week ending that day
	}
	for i, tc := range cases {
		iv := PeriodWeek.Range(tc.ref)
		if !iv.Start.Equal(tc.wantStart) {
			t.Fatalf("case %d: start = %v, want %v", i, iv.Start, tc.wantStart)
		}
		if !iv.Contains(tc.wantStart.AddDate(0, 0, 6)) {
			t.Fatalf("case %d: Sunday must be inside the week", i)
		}
		if iv.Contains(tc.wantStart.AddDate(0, 0, 7)) {
			t.Fatalf("case %d: next Monday must be outside", i)
		}
	}
}

func TestRangeMonth(t *testing.T) {
	iv := PeriodMonth.Range(date(2024, 3, 15))

	// 2024-02-28 is out, 2024-03-01 is in.
	if iv.Contains(date(2024, 2, 28)) {
		t.Fatal("previous month must be excluded")
	}
	if !iv.Contains(date(2024, 3, 1)) {
		t.Fatal("first day of month must be included")
	}
	if !iv.Contains(time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)) {
		t.Fatal("last day of month must be included")
	}
	if iv.Contains(date(2024, 4, 1)) {
		t.Fatal("next month must be excluded")
	}
}

func TestRangeYear(t *testing.T) {
	iv := PeriodYear.Range(date(2024, 7, 4))
	if !iv.Contains(date(2024, 1, 1)) || !iv.Contains(date(2024, 12, 31)) {
		t.Fatal("year bounds must be inclusive")
	}
	if iv.Contains(date(2023, 12, 31)) || iv.Contains(date(2025, 1, 1)) {
		t.Fatal("neighboring years must be excluded")
	}
}

func TestRangeAllIsUnbounded(t *testing.T) {
	iv := PeriodAll.Range(date(2024, 3, 15))
	if !iv.Contains(date(1900, 1, 1)) || !iv.Contains(date(2999, 12, 31)) {
		t.Fatal("all-period interval should span any plausible date")
	}
}

func TestNavigation(t *testing.T) {
	ref := date(2024, 3, 15)

	cases := []struct {
		p    Period
		next time.Time
		prev time.Time
	}{
		{PeriodDay, date(2024, 3, 16), date(2024, 3, 14)},
		{PeriodWeek, date(2024, 3, 22), date(2024, 3, 8)},
		{PeriodMonth, date(2024, 4, 15), date(2024, 2, 15)},
		{PeriodYear, date(2025, 3, 15), date(2023, 3, 15)},
	}
	for i, tc := range cases {
		next, err := tc.p.Next(ref)
		if err != nil || !next.Equal(tc.next) {
			t.Fatalf("case %d: Next = (%v, %v), want %v", i, next, err, tc.next)
		}
		prev, err := tc.p.Previous(ref)
		if err != nil || !prev.Equal(tc.prev) {
			t.Fatalf("case %d: Previous = (%v, %v), want %v", i, prev, err, tc.prev)
		}
	}

	if _, err := PeriodAll.Next(ref); !errors.Is(err, ErrUnknownPeriod) {
		t.Fatalf("navigation for all should fail, got %v", err)
	}
}

func TestRangeDoesNotMutateRef(t *testing.T) {
	ref := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	before := ref
	_ = PeriodMonth.Range(ref)
	if !ref.Equal(before) {
		t.Fatal("reference date changed")
	}
}
