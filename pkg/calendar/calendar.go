// Package calendar provides day-key arithmetic in a fixed home timezone.
//
// A day key is a "YYYY-MM-DD" string naming one local calendar day. Two instants share a
// key iff they fall on the same calendar day in the location used to format them.
package calendar

import (
	"fmt"
	"time"
)

// KeyLayout is the time layout of a day key.
const KeyLayout = "2006-01-02"

// DayKey formats t as the calendar day it falls on in loc.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(KeyLayout)
}

// ParseDayKey parses a day key into midnight UTC of that date.
func ParseDayKey(key string) (time.Time, error) {
	t, err := time.Parse(KeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q: %w", key, err)
	}
	return t, nil
}

// AddDays shifts a day key by delta calendar days.
func AddDays(key string, delta int) (string, error) {
	t, err := ParseDayKey(key)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, delta).Format(KeyLayout), nil
}

// Range returns n consecutive day keys starting at start.
func Range(start string, n int) ([]string, error) {
	t, err := ParseDayKey(start)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, n)
	for i := 0; i < n; i++ {
		keys = append(keys, t.AddDate(0, 0, i).Format(KeyLayout))
	}
	return keys, nil
}

// DaysInMonth returns the number of days of month in year.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths moves t by delta months keeping the wall clock. When the day of month does
// not exist in the target month it is clamped to the target month's last day, so
// Jan 31 + 1 month is Feb 28 (Feb 29 in leap years).
func AddMonths(t time.Time, delta int) time.Time {
	year, month, day := t.Date()
	target := time.Date(year, month+time.Month(delta), 1, 0, 0, 0, 0, t.Location())
	if last := DaysInMonth(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// StartOfDay returns local midnight of the day t falls on in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// Midnight returns the instant the day named by key starts in loc.
func Midnight(key string, loc *time.Location) (time.Time, error) {
	t, err := ParseDayKey(key)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// Label renders a day key as a short "DD/MM" display label.
func Label(key string) string {
	t, err := ParseDayKey(key)
	if err != nil {
		return key
	}
	return t.Format("02/01")
}
