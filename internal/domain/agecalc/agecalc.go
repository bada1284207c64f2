// Package agecalc implements the calendar arithmetic every herd computation
// is built on. All values are UTC and day-granular.
package agecalc

import (
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// UnknownAge is returned when the birth date is missing.
const UnknownAge = -1

// DaysPerMonth is the average month length used for ages in months.
const DaysPerMonth = 30.4375

const day = 24 * time.Hour

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// ParseDate reads a herd book date. Blank values and the "unknown" sentinel
// return false. The result is normalised to UTC midnight.
func ParseDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" || strings.EqualFold(value, "unknown") || strings.EqualFold(value, "desconocida") {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return StartOfDay(t), true
		}
	}
	return time.Time{}, false
}

// StartOfDay truncates t to midnight UTC of its UTC calendar day.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// AgeInDays returns the whole days elapsed between birth and asOf, never
// negative. A zero birth yields UnknownAge.
func AgeInDays(birth, asOf time.Time) int {
	if birth.IsZero() {
		return UnknownAge
	}
	diff := StartOfDay(asOf).Sub(StartOfDay(birth))
	days := int(math.Floor(diff.Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// AgeInMonths converts AgeInDays to average months.
func AgeInMonths(birth, asOf time.Time) int {
	days := AgeInDays(birth, asOf)
	if days == UnknownAge {
		return UnknownAge
	}
	return int(math.Floor(float64(days) / DaysPerMonth))
}

// DaysBetween returns the absolute distance between two instants in days,
// rounded up.
func DaysBetween(a, b time.Time) int {
	diff := a.UTC().Sub(b.UTC())
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// AgeAt returns the age in days on the given date, or UnknownAge. Unlike
// AgeInDays the result may be negative when at precedes birth.
func AgeAt(birth, at time.Time) int {
	if birth.IsZero() || at.IsZero() {
		return UnknownAge
	}
	diff := StartOfDay(at).Sub(StartOfDay(birth))
	return int(math.Floor(diff.Hours() / 24))
}

var ageMagnitudes = []humanize.RelTimeMagnitude{
	{D: day, Format: "0 days %s", DivBy: 1},
	{D: 2 * day, Format: "1 day %s", DivBy: 1},
	{D: 60 * day, Format: "%d days %s", DivBy: day},
	{D: 730 * day, Format: "%d months %s", DivBy: time.Duration(DaysPerMonth * float64(day))},
	{D: math.MaxInt64, Format: "%d years %s", DivBy: time.Duration(365.25 * float64(day))},
}

// FormatAge renders an age for display, e.g. "45 days", "7 months", "3 years".
func FormatAge(birth, asOf time.Time) string {
	if birth.IsZero() {
		return "unknown"
	}
	start := StartOfDay(birth)
	end := StartOfDay(asOf)
	if end.Before(start) {
		end = start
	}
	return strings.TrimSpace(humanize.CustomRelTime(start, end, "", "", ageMagnitudes))
}
