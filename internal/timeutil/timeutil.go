// Package timeutil provides local calendar-day helpers for the toggler app.
// Every piece of time data in the app is partitioned by "day key": the local
// calendar date in YYYY-MM-DD form. Day keys compare chronologically with
// plain string comparison.
package timeutil

import (
	"fmt"
	"time"
)

// DayKeyLayout is the time layout for day keys.
const DayKeyLayout = "2006-01-02"

// DayKey returns the local calendar date of t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// DayKeyMillis returns the day key for an epoch-milliseconds timestamp.
func DayKeyMillis(ms int64) string {
	return DayKey(time.UnixMilli(ms))
}

// Today returns the day key for the given wall-clock time.
func Today(now time.Time) string {
	return DayKey(now)
}

// ParseDayKey parses a day key into local midnight of that day.
func ParseDayKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DayKeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q: expected YYYY-MM-DD", key)
	}
	return t, nil
}

// AddDays shifts a day key by n calendar days (n may be negative).
// An unparseable key is returned unchanged.
func AddDays(key string, n int) string {
	t, err := ParseDayKey(key)
	if err != nil {
		return key
	}
	return DayKey(t.AddDate(0, 0, n))
}

// StartOfDay returns 00:00:00.000 local time of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NextMidnight returns the first instant of the calendar day after t.
func NextMidnight(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}

// SameDay reports whether two instants fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
