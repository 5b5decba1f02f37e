package core

import (
	"errors"
	"strings"
	"time"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

var ErrInvalidDate = errors.New("invalid date")

type (
	// Day is a calendar date in canonical YYYY-MM-DD form. Lexicographic
	// comparison of two valid Days matches chronological order, so the
	// aggregation code compares them as plain strings.
	Day string

	// Month is a calendar month in canonical YYYY-MM form.
	Month string
)

// DayOf truncates a timestamp to a calendar date in UTC.
func DayOf(t time.Time) Day {
	return Day(t.UTC().Format(dayLayout))
}

// Today returns the current UTC calendar date.
func Today() Day {
	return DayOf(time.Now())
}

func ParseDay(s string) (Day, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(dayLayout, s); err != nil {
		return "", ErrInvalidDate
	}
	return Day(s), nil
}

func (d Day) Valid() bool {
	_, err := time.Parse(dayLayout, string(d))
	return err == nil
}

// Time parses the day as midnight UTC.
func (d Day) Time() (time.Time, error) {
	t, err := time.Parse(dayLayout, string(d))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Month returns the YYYY-MM prefix of the day.
func (d Day) Month() Month {
	if len(d) < len(monthLayout) {
		return ""
	}
	return Month(d[:len(monthLayout)])
}

// In reports whether the day falls in the given month (prefix match).
func (d Day) In(m Month) bool {
	return strings.HasPrefix(string(d), string(m))
}

// AddDays returns the day shifted by n calendar days. Invalid days shift
// to the empty Day.
func (d Day) AddDays(n int) Day {
	t, err := d.Time()
	if err != nil {
		return ""
	}
	return DayOf(t.AddDate(0, 0, n))
}

// Weekday returns the day of week, Sunday = 0. Invalid days report Sunday.
func (d Day) Weekday() time.Weekday {
	t, err := d.Time()
	if err != nil {
		return time.Sunday
	}
	return t.Weekday()
}

func ParseMonth(s string) (Month, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(monthLayout, s); err != nil {
		return "", ErrInvalidDate
	}
	return Month(s), nil
}

func (m Month) Valid() bool {
	_, err := time.Parse(monthLayout, string(m))
	return err == nil
}

// Days returns the number of calendar days in the month, accounting for
// leap years. Invalid months report 0.
func (m Month) Days() int {
	t, err := time.Parse(monthLayout, string(m))
	if err != nil {
		return 0
	}
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthOf truncates a timestamp to a calendar month in UTC.
func MonthOf(t time.Time) Month {
	return Month(t.UTC().Format(monthLayout))
}

// WeekWindow returns the Sunday-anchored week containing ref: the 7
// consecutive days from ref minus its day-of-week offset.
func WeekWindow(ref Day) ([7]Day, error) {
	var week [7]Day
	t, err := ref.Time()
	if err != nil {
		return week, err
	}
	start := t.AddDate(0, 0, -int(t.Weekday()))
	for i := range week {
		week[i] = DayOf(start.AddDate(0, 0, i))
	}
	return week, nil
}
