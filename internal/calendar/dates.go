// Package calendar holds the pure date arithmetic the planner is built
// on: ISO weekday numbering, school-year labeling and the French public
// holiday computus. Everything works on calendar dates pinned to
// midnight UTC so arithmetic never drifts across DST boundaries.
package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for every calendar date in the system.
// ISO zero-padded dates sort lexicographically in chronological order,
// which the holiday tables rely on.
const DateLayout = "2006-01-02"

// Date builds a calendar date at midnight UTC.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Truncate drops any time-of-day component, keeping the calendar date.
func Truncate(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// ISOWeekday remaps Go's native weekday (0 = Sunday .. 6 = Saturday)
// to the ISO convention used throughout the domain: 1 = Monday .. 7 = Sunday.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// IsWeekend reports whether t is a Saturday or a Sunday.
func IsWeekend(t time.Time) bool {
	return ISOWeekday(t) >= 6
}

// NextDay advances one calendar day using date components.
func NextDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1)
}

// DaysBetween returns the number of whole days from a to b (negative
// when b precedes a).
func DaysBetween(a, b time.Time) int {
	return int(Truncate(b).Sub(Truncate(a)).Hours() / 24)
}

// DaysInclusive counts the calendar days from start to end, both
// bounds included. Zero when end precedes start.
func DaysInclusive(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return DaysBetween(start, end) + 1
}

// WeekOffset is the integer number of whole weeks between the range
// start and d. Week 0 starts on the range start itself, not on any
// fixed calendar epoch — biweekly alternation is anchored here.
func WeekOffset(start, d time.Time) int {
	return DaysBetween(start, d) / 7
}

// SchoolYearLabel returns the "N-(N+1)" label of the school year the
// date belongs to. The French school year runs September through
// August: September–December fall in "{year}-{year+1}", January–August
// in "{year-1}-{year}".
func SchoolYearLabel(d time.Time) string {
	y := d.Year()
	if d.Month() >= time.September {
		return fmt.Sprintf("%d-%d", y, y+1)
	}
	return fmt.Sprintf("%d-%d", y-1, y)
}

// SchoolYearCalendarYears parses a school-year label into the two
// calendar years it spans.
func SchoolYearCalendarYears(label string) (int, int, error) {
	var first, second int
	if _, err := fmt.Sscanf(label, "%d-%d", &first, &second); err != nil {
		return 0, 0, fmt.Errorf("parse school year %q: %w", label, err)
	}
	if second != first+1 {
		return 0, 0, fmt.Errorf("invalid school year %q: years must be consecutive", label)
	}
	return first, second, nil
}
