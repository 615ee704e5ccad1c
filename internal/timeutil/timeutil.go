// Package timeutil computes user-local time from a stored hour offset
// and phase offsets for recurring timers.
package timeutil

import (
	"strconv"
	"time"
)

// UserTime returns the current time shifted by the user's stored hour
// offset. A malformed offset behaves as "0".
func UserTime(offset string) time.Time {
	return userTimeAt(time.Now().UTC(), offset)
}

// UserDate returns the user's current local date truncated to midnight
func UserDate(offset string) time.Time {
	return dateOf(UserTime(offset))
}

func userTimeAt(now time.Time, offset string) time.Time {
	hours, err := strconv.Atoi(offset)
	if err != nil {
		hours = 0
	}
	return now.Add(time.Duration(hours) * time.Hour)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseOffset validates a user-supplied timezone offset ("+5", "-3", "0")
// and returns its normalized storage form. Accepted range is -12..+14.
func ParseOffset(text string) (string, bool) {
	if text == "" || len(text) > 3 {
		return "", false
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return "", false
	}
	if n < -12 || n > 14 {
		return "", false
	}
	// a minus sign demands a nonzero hour
	if n == 0 && text[0] == '-' {
		return "", false
	}
	return strconv.Itoa(n), true
}

// Skew returns the delay until the next interval boundary, so that
// per-user recurring timers armed at different moments do not all fire
// in the same instant.
func Skew(intervalMins int) time.Duration {
	return skewAt(time.Now(), intervalMins)
}

func skewAt(now time.Time, intervalMins int) time.Duration {
	minute := now.Minute()
	second := now.Second()

	if extra := intervalMins % 60; extra != 0 {
		return time.Duration((extra-minute%extra)*60-second) * time.Second
	}
	return time.Duration((60-minute)*60-second) * time.Second
}
