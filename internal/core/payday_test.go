package core

import (
	"testing"
	"time"
)

func TestResolvePaydayLastBusinessDay(t *testing.T) {
	// June 30 2024 is a Sunday; the last business day is Friday the 28th.
	got := ResolvePayday(2024, 5, LastBusinessDay)
	if !got.Equal(date(2024, time.June, 28)) {
		t.Fatalf("got %v, want 2024-06-28", got)
	}
	if got.Weekday() != time.Friday {
		t.Fatalf("got %v, want a Friday", got.Weekday())
	}
}

func TestResolvePaydayBackwardOrdinals(t *testing.T) {
	cases := []struct {
		rule PaydayRule
		want time.Time
	}{
		{LastBusinessDay, date(2024, time.June, 28)},
		{SecondLastBusinessDay, date(2024, time.June, 27)},
		{ThirdLastBusinessDay, date(2024, time.June, 26)},
	}
	for i, tc := range cases {
		if got := ResolvePayday(2024, 5, tc.rule); !got.Equal(tc.want) {
			t.Fatalf("case %d (%s): got %v, want %v", i, tc.rule, got, tc.want)
		}
	}
}

func TestResolvePaydayForwardOrdinals(t *testing.T) {
	// June 2024 starts on a Saturday: business days are 3, 4, 5, 6, 7.
	cases := []struct {
		rule PaydayRule
		want int
	}{
		{FirstBusinessDay, 3},
		{SecondBusinessDay, 4},
		{ThirdBusinessDay, 5},
		{FourthBusinessDay, 6},
		{FifthBusinessDay, 7},
	}
	for i, tc := range cases {
		got := ResolvePayday(2024, 5, tc.rule)
		if got.Day() != tc.want {
			t.Fatalf("case %d (%s): got day %d, want %d", i, tc.rule, got.Day(), tc.want)
		}
	}
}

func TestResolvePaydayFirstAlwaysInFirstThreeDays(t *testing.T) {
	for year := 2020; year <= 2026; year++ {
		for m := 0; m < 12; m++ {
			got := ResolvePayday(year, m, FirstBusinessDay)
			if wd := got.Weekday(); wd == time.Saturday || wd == time.Sunday {
				t.Fatalf("%d-%02d: payday on a weekend (%v)", year, m+1, wd)
			}
			if got.Day() < 1 || got.Day() > 3 {
				t.Fatalf("%d-%02d: first business day on day %d", year, m+1, got.Day())
			}
		}
	}
}

func TestResolvePaydayUnknownRuleFallsBack(t *testing.T) {
	got := ResolvePayday(2024, 1, PaydayRule("ninth_bd"))
	if !got.Equal(date(2024, time.February, 29)) {
		t.Fatalf("got %v, want last calendar day of February 2024", got)
	}
}

func TestSeasonalBonus(t *testing.T) {
	if !IsBonusMonth(time.June) || !IsBonusMonth(time.December) {
		t.Fatalf("June and December must be bonus months")
	}
	for _, m := range []time.Month{time.January, time.May, time.July, time.November} {
		if IsBonusMonth(m) {
			t.Fatalf("%v must not be a bonus month", m)
		}
	}
	if got := SeasonalBonus(dec("2500")); !got.Equal(dec("1250")) {
		t.Fatalf("got %s, want 1250", got)
	}
	if got := SeasonalBonus(dec("333.33")); !got.Equal(dec("166.67")) {
		t.Fatalf("got %s, want 166.67", got)
	}
}
