package core

import (
	"fmt"
	"time"
)

// monthKeyLayout is the canonical "YYYY-MM" period identifier used everywhere
// rows are bucketed by month.
const monthKeyLayout = "2006-01"

// MonthKey returns the canonical "YYYY-MM" identifier of the month containing t.
func MonthKey(t time.Time) string {
	return t.Format(monthKeyLayout)
}

// ParseMonthKey parses a "YYYY-MM" identifier into the first day of that month.
func ParseMonthKey(key string) (time.Time, error) {
	t, err := time.Parse(monthKeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse month key %q: %w", key, err)
	}
	return t, nil
}

// StartOfMonth returns the first calendar day of the month containing t.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last calendar day of the month containing t.
// Day 0 of the next month normalizes to the last day of this one, so leap
// years come out right without special casing.
func EndOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths moves t forward by n calendar months, clamping the day of month
// to the last valid day of the target month. Jan 31 plus one month is Feb 28
// (or 29), never a rollover into March.
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	target := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := DaysInMonth(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, t.Location())
}

// MonthKeys returns the ordered, inclusive range of month keys from the month
// containing from to the month containing to. An inverted range yields nil.
func MonthKeys(from, to time.Time) []string {
	var keys []string
	cur := StartOfMonth(from)
	end := StartOfMonth(to)
	for !cur.After(end) {
		keys = append(keys, MonthKey(cur))
		cur = cur.AddDate(0, 1, 0)
	}
	return keys
}
