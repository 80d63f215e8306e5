// Package timeutil holds the string time formats used across the HR domain:
// "HH:MM" times of day, "YYYY-MM-DD" dates and "YYYY-MM" months.
package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"

	// Placeholder is what clients send for a punch that never happened.
	Placeholder = "--:--"

	MinutesPerDay = 24 * 60
)

var (
	ErrInvalidClock = errors.New("invalid time of day, expected HH:MM")
	ErrInvalidDate  = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidMonth = errors.New("invalid month, expected YYYY-MM")
)

// IsBlank reports whether a punch value means "did not punch".
func IsBlank(clock string) bool {
	clock = strings.TrimSpace(clock)
	return clock == "" || clock == Placeholder
}

// ParseClock converts "HH:MM" into minutes since midnight.
func ParseClock(clock string) (int, error) {
	clock = strings.TrimSpace(clock)
	hh, mm, ok := strings.Cut(clock, ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	return h*60 + m, nil
}

// ClockMinutes is ParseClock for values that were validated on the way in.
// Unparseable input yields ok=false.
func ClockMinutes(clock string) (minutes int, ok bool) {
	minutes, err := ParseClock(clock)
	return minutes, err == nil
}

// FormatClock renders minutes since midnight as "HH:MM", wrapping past midnight.
func FormatClock(minutes int) string {
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ShiftMinutes returns the length of a start-end shift, treating an end
// before the start as crossing midnight.
func ShiftMinutes(start, end int) int {
	length := end - start
	if length < 0 {
		length += MinutesPerDay
	}
	return length
}

func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t, nil
}

func ParseMonth(month string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, month)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}
	return t, nil
}

// MonthOf returns the "YYYY-MM" prefix of a "YYYY-MM-DD" date.
func MonthOf(date string) string {
	if len(date) < 7 {
		return ""
	}
	return date[:7]
}

// InMonth compares as strings; both formats sort lexicographically.
func InMonth(date, month string) bool {
	return MonthOf(date) == month
}

// InRange reports whether from <= date <= to. Empty bounds are open.
func InRange(date, from, to string) bool {
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}

// DaysInMonth lists every calendar date of month in order.
func DaysInMonth(month time.Time) []time.Time {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	var days []time.Time
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
