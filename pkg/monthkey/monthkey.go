// Package monthkey handles the "YYYY-MM" month keys that commission ledger
// entries and monthly reports are attributed to.
package monthkey

import (
	"fmt"
	"time"
)

const layout = "2006-01"

// Valid reports whether s is a well-formed "YYYY-MM" key.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Parse returns the first instant of the month named by s.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: want YYYY-MM", s)
	}
	return t, nil
}

// Format returns the month key for t.
func Format(t time.Time) string {
	return t.UTC().Format(layout)
}

// Current returns the month key for now.
func Current() string {
	return Format(time.Now())
}

// Bounds returns the half-open interval [start, next) covering the month.
func Bounds(s string) (time.Time, time.Time, error) {
	start, err := Parse(s)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 1, 0), nil
}

// Index returns the 1-based subscription-month index of the target month
// relative to start: the number of calendar months elapsed plus one, clamped
// to a minimum of 1. A subscription starting 2024-01-15 is in month 3 of its
// life during 2024-03.
func Index(start time.Time, month string) (int, error) {
	target, err := Parse(month)
	if err != nil {
		return 0, err
	}
	start = start.UTC()
	diff := (target.Year()-start.Year())*12 + int(target.Month()) - int(start.Month())
	idx := diff + 1
	if idx < 1 {
		idx = 1
	}
	return idx, nil
}
