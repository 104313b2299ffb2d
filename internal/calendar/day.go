package calendar

import (
	"fmt"
	"time"
)

const (
	// DayLayout is the wire format of a Day (YYYY-MM-DD)
	DayLayout = "2006-01-02"
	// LocalLayout is the nb-NO short date format used on the page (10.2.2024)
	LocalLayout = "2.1.2006"
)

// Day is a calendar day without time-of-day or time zone.
// Two Days are equal when year, month and day-of-month match.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDay builds a normalized Day, so 2024-01-32 becomes 2024-02-01
func NewDay(year int, month time.Month, day int) Day {
	return DayOf(time.Date(year, month, day, 12, 0, 0, 0, time.UTC))
}

// DayOf returns the calendar day of t in t's own location
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}
}

// ParseDay parses a YYYY-MM-DD string
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return DayOf(t), nil
}

// SameDay reports whether a and b fall on the same calendar day, ignoring time-of-day
func SameDay(a, b time.Time) bool {
	return DayOf(a).Equal(DayOf(b))
}

// Equal compares the (year, month, day) triple
func (d Day) Equal(o Day) bool {
	return d.Year == o.Year && d.Month == o.Month && d.Day == o.Day
}

// Before reports whether d is an earlier calendar day than o
func (d Day) Before(o Day) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// AddDays moves d by n calendar days
func (d Day) AddDays(n int) Day {
	return NewDay(d.Year, d.Month, d.Day+n)
}

// Time returns midnight of d in loc
func (d Day) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// IsZero reports whether d is the zero Day
func (d Day) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Local formats d the way nb-NO renders a short date
func (d Day) Local() string {
	return d.Time(time.UTC).Format(LocalLayout)
}

// MarshalText encodes the zero Day (blank grid cells) as an empty string
func (d Day) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Day{}
		return nil
	}
	parsed, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DayCount renders a day count with Norwegian singular/plural ("1 dag", "3 dager")
func DayCount(n int) string {
	if n == 1 {
		return "1 dag"
	}
	return fmt.Sprintf("%d dager", n)
}
