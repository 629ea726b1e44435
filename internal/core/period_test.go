package core

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthKey(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{date(2024, time.January, 1), "2024-01"},
		{date(2024, time.December, 31), "2024-12"},
		{date(1999, time.June, 15), "1999-06"},
	}
	for i, tc := range cases {
		if got := MonthKey(tc.in); got != tc.want {
			t.Fatalf("case %d: got %q, want %q", i, got, tc.want)
		}
	}
}

func TestParseMonthKey(t *testing.T) {
	got, err := ParseMonthKey("2024-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(date(2024, time.February, 1)) {
		t.Fatalf("got %v, want first of February", got)
	}

	for _, bad := range []string{"", "2024", "2024-13", "febbraio"} {
		if _, err := ParseMonthKey(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestEndOfMonth(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{date(2024, time.February, 10), date(2024, time.February, 29)}, // leap
		{date(2025, time.February, 10), date(2025, time.February, 28)},
		{date(2024, time.April, 1), date(2024, time.April, 30)},
		{date(2024, time.December, 31), date(2024, time.December, 31)},
	}
	for i, tc := range cases {
		if got := EndOfMonth(tc.in); !got.Equal(tc.want) {
			t.Fatalf("case %d: got %v, want %v", i, got, tc.want)
		}
	}
}

func TestStartOfMonth(t *testing.T) {
	if got := StartOfMonth(date(2024, time.July, 19)); !got.Equal(date(2024, time.July, 1)) {
		t.Fatalf("got %v", got)
	}
}

func TestAddMonthsClampsToShorterMonths(t *testing.T) {
	cases := []struct {
		in   time.Time
		n    int
		want time.Time
	}{
		{date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{date(2025, time.January, 31), 1, date(2025, time.February, 28)},
		{date(2024, time.January, 31), 2, date(2024, time.March, 31)},
		{date(2024, time.October, 31), 13, date(2025, time.November, 30)},
		{date(2024, time.March, 15), 0, date(2024, time.March, 15)},
		{date(2024, time.November, 30), 3, date(2025, time.February, 28)},
	}
	for i, tc := range cases {
		if got := AddMonths(tc.in, tc.n); !got.Equal(tc.want) {
			t.Fatalf("case %d: got %v, want %v", i, got, tc.want)
		}
	}
}

func TestMonthKeys(t *testing.T) {
	got := MonthKeys(date(2024, time.November, 20), date(2025, time.February, 3))
	want := []string{"2024-11", "2024-12", "2025-01", "2025-02"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}

	if got := MonthKeys(date(2025, time.March, 1), date(2025, time.January, 1)); got != nil {
		t.Fatalf("expected nil for inverted range, got %v", got)
	}
}
