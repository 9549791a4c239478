// Package timex holds the pure time arithmetic the tracker is built on:
// elapsed-minute computation, day and week boundaries, and duration
// formatting. No package state; callers pass "now" explicitly.
package timex

import (
	"fmt"
	"time"
)

// ElapsedMinutes returns the whole minutes between start and now,
// floored. Negative spans clamp to 0.
func ElapsedMinutes(start, now time.Time) int {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}

// FormatMinutes renders whole minutes as "3h 25m".
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// DayStart returns midnight of now's calendar day in tz, converted to UTC.
func DayStart(now time.Time, tz *time.Location) time.Time {
	local := now.In(tz)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, tz)
	return start.UTC()
}

// NextDayStart returns midnight of the following calendar day in tz, in UTC.
func NextDayStart(now time.Time, tz *time.Location) time.Time {
	local := DayStart(now, tz).In(tz)
	// AddDate handles DST transitions, Add(24h) does not.
	next := local.AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, tz).UTC()
}

// WeekStart returns the most recent Monday at midnight in tz, in UTC.
// Sunday maps to an offset of -6 so the week always starts Monday.
func WeekStart(now time.Time, tz *time.Location) time.Time {
	local := now.In(tz)
	offset := int(local.Weekday()) - 1
	if local.Weekday() == time.Sunday {
		offset = 6
	}
	monday := local.AddDate(0, 0, -offset)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, tz).UTC()
}

// NextWeekStart returns the Monday midnight following WeekStart(now), in UTC.
// The week window is [WeekStart, NextWeekStart).
func NextWeekStart(now time.Time, tz *time.Location) time.Time {
	monday := WeekStart(now, tz).In(tz)
	next := monday.AddDate(0, 0, 7)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, tz).UTC()
}

// DateOf returns the calendar date of t in tz as a canonical value:
// that date at midnight UTC. Used as the bucket key for daily aggregates
// so the same day always produces the same time.Time regardless of when
// within the day it was computed.
func DateOf(t time.Time, tz *time.Location) time.Time {
	local := t.In(tz)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStartDate returns the canonical date (midnight UTC) of the Monday
// starting the week that contains t in tz.
func WeekStartDate(t time.Time, tz *time.Location) time.Time {
	return DateOf(WeekStart(t, tz).In(tz), tz)
}

// SameDay reports whether a and b fall on the same calendar day in tz.
func SameDay(a, b time.Time, tz *time.Location) bool {
	al, bl := a.In(tz), b.In(tz)
	return al.Year() == bl.Year() && al.Month() == bl.Month() && al.Day() == bl.Day()
}

// ParseTimezone parses an IANA timezone name, returning UTC as fallback.
func ParseTimezone(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}
