package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	layoutDate            = "2006-01-02"
	layoutDisplayDate     = "02-01-2006"
	layoutDisplayDateTime = "02-01-2006 15:04"
)

var clockPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// ParseDate parses YYYY-MM-DD in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), loc)
}

// FormatDate formats to YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(layoutDate)
}

// FormatDisplayDate formats to DD-MM-YYYY, the format bookings are stored with.
func FormatDisplayDate(t time.Time) string {
	return t.Format(layoutDisplayDate)
}

// FormatDisplayDateTime formats to DD-MM-YYYY HH:mm.
func FormatDisplayDateTime(t time.Time) string {
	return t.Format(layoutDisplayDateTime)
}

// DayStart truncates t to midnight in its own location.
func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay compares calendar days in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// WithinDays reports whether day lies in [from, to], compared by calendar day.
// from and to are DATE values and keep their own calendar day whatever
// location the driver scanned them in.
func WithinDays(day, from, to time.Time) bool {
	d := DayStart(day)
	f := dateIn(from, day.Location())
	t := dateIn(to, day.Location())
	return !d.Before(f) && !d.After(t)
}

func dateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// ParseClock parses a strict HH:mm string.
func ParseClock(s string) (hour, minute int, err error) {
	if !clockPattern.MatchString(s) {
		return 0, 0, fmt.Errorf("invalid time %q", s)
	}
	hour, _ = strconv.Atoi(s[:2])
	minute, _ = strconv.Atoi(s[3:])
	if hour > 23 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid time %q", s)
	}
	return hour, minute, nil
}

// AtClock places an HH:mm time on the calendar day of date.
func AtClock(date time.Time, clock string) (time.Time, error) {
	h, m, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	d := DayStart(date)
	return time.Date(d.Year(), d.Month(), d.Day(), h, m, 0, 0, d.Location()), nil
}

// LegTimes places departure and arrival on date. An arrival earlier than the
// departure belongs to the next calendar day.
func LegTimes(date time.Time, departure, arrival string) (dep, arr time.Time, err error) {
	dep, err = AtClock(date, departure)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	arr, err = AtClock(date, arrival)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if arr.Before(dep) {
		arr = arr.AddDate(0, 0, 1)
	}
	return dep, arr, nil
}

// FormatDuration renders whole hours and remaining minutes.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%d hours %d minutes", hours, minutes)
}
