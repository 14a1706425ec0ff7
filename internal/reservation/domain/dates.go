package domain

import (
	"time"
)

// DateLayout is the wire format for check-in and check-out dates.
const DateLayout = "2006-01-02"

// NormalizeDay truncates t to the start of its UTC calendar day, discarding
// any time-of-day component so overlap comparisons are unaffected by
// time-of-day noise.
func NormalizeDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts a calendar date or an RFC 3339 timestamp and normalizes
// it to the start of its UTC day.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, value); err == nil {
		return NormalizeDay(t), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return NormalizeDay(t), nil
}

// Nights is the stay length of a half-open [checkIn, checkOut) range in
// whole days. Both arguments must already be day-normalized.
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// Overlaps applies the half-open interval rule: check-in is inclusive,
// check-out is exclusive, so a stay ending on day X never conflicts with one
// starting on day X.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && aOut.After(bIn)
}
