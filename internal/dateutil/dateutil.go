// Package dateutil provides date parsing and validation utilities.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the canonical on-disk date format for tasks.
const DateLayout = "01-02-2006"

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in MM-DD-YYYY format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
)

// ParseDate parses a date string in MM-DD-YYYY format.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// FormatDate formats a date using the canonical MM-DD-YYYY layout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// NormalizeDate parses a loosely formatted date string and returns it in
// canonical MM-DD-YYYY form. All non-digit characters are stripped first;
// the remaining digits must form MMDDYY or MMDDYYYY. Two-digit years are
// taken as 20YY. The result is validated as a real calendar date.
func NormalizeDate(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	d := digits.String()
	if len(d) != 6 && len(d) != 8 {
		return "", ErrInvalidDateFormat
	}

	mm := d[0:2]
	dd := d[2:4]
	var yyyy string
	if len(d) == 6 {
		yyyy = "20" + d[4:6]
	} else {
		yyyy = d[4:8]
	}

	candidate := mm + "-" + dd + "-" + yyyy
	if _, err := time.Parse(DateLayout, candidate); err != nil {
		return "", ErrInvalidDateFormat
	}
	return candidate, nil
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateOnly strips the clock and the location, yielding midnight UTC of the
// calendar day. Parsed due dates and wall-clock times carry different
// locations; normalizing both through DateOnly makes day comparisons hold
// everywhere, not just in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay returns true if a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (monday, sunday time.Time) {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday becomes day 7 in ISO week
	}
	monday = t.AddDate(0, 0, -(weekday - 1))
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// MinutesOfDay converts an HH:MM string to minutes since midnight.
// Returns -1 for malformed input; both fields must be two digits.
func MinutesOfDay(hhmm string) int {
	if !ValidTime(hhmm) {
		return -1
	}
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return -1
	}
	return t.Hour()*60 + t.Minute()
}

// ValidTime reports whether s is a valid HH:MM time string.
func ValidTime(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// FormatClock formats an HH:MM string for display. When use24Hour is false
// the time is rendered in 12-hour form with an AM/PM suffix.
func FormatClock(hhmm string, use24Hour bool) string {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return hhmm
	}
	if use24Hour {
		return t.Format("15:04")
	}
	return strings.TrimPrefix(t.Format("3:04 PM"), "0")
}
