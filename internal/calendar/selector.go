package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// LeadTimeDays is the minimum number of days between today and a selectable day
const LeadTimeDays = 7

var (
	ErrDayOutOfRange    = errors.New("day outside displayed month")
	ErrUnknownDirection = errors.New("unknown navigation direction")
)

// Clock supplies the reference "now" for the lead-time rule
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock in loc
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return ClockFunc(func() time.Time { return time.Now().In(loc) })
}

// FixedClock always returns t
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// Direction moves the displayed month
type Direction int

const (
	Previous Direction = -1
	Next     Direction = 1
)

// ParseDirection accepts "previous"/"prev" and "next"
func ParseDirection(raw string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "previous", "prev":
		return Previous, nil
	case "next":
		return Next, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, raw)
	}
}

func (d Direction) String() string {
	if d == Previous {
		return "previous"
	}
	return "next"
}

// Threshold returns the first selectable day for the given "now":
// today at midnight plus LeadTimeDays, counted in calendar days.
func Threshold(now time.Time) Day {
	return DayOf(now).AddDays(LeadTimeDays)
}

// Selector shows one month at a time and toggles days of that month in a
// Selection it does not own.
type Selector struct {
	clock     Clock
	selection *Selection
	year      int
	month     time.Month
}

// NewSelector starts on the clock's current month
func NewSelector(clock Clock, selection *Selection) *Selector {
	if selection == nil {
		selection = NewSelection()
	}
	today := DayOf(clock.Now())
	return &Selector{
		clock:     clock,
		selection: selection,
		year:      today.Year,
		month:     today.Month,
	}
}

// Month returns the displayed year and month
func (s *Selector) Month() (int, time.Month) {
	return s.year, s.month
}

// Navigate shifts the displayed month by one. The selection is untouched.
func (s *Selector) Navigate(dir Direction) {
	first := time.Date(s.year, s.month+time.Month(dir), 1, 12, 0, 0, 0, time.UTC)
	s.year, s.month = first.Year(), first.Month()
}

// DaysInMonth returns the number of days of the displayed month
func (s *Selector) DaysInMonth() int {
	return daysIn(s.year, s.month)
}

// Threshold is recomputed from the clock on every call
func (s *Selector) Threshold() Day {
	return Threshold(s.clock.Now())
}

// IsDisabled reports whether d is before the lead-time threshold
func (s *Selector) IsDisabled(d Day) bool {
	return d.Before(s.Threshold())
}

// Toggle flips the selection of a day of the displayed month.
// Disabled days are left alone; the returned bool reports whether the selection changed.
func (s *Selector) Toggle(day int) (bool, error) {
	if day < 1 || day > s.DaysInMonth() {
		return false, fmt.Errorf("%w: %d", ErrDayOutOfRange, day)
	}
	d := Day{Year: s.year, Month: s.month, Day: day}
	if s.IsDisabled(d) {
		return false, nil
	}
	s.selection.Toggle(d)
	return true, nil
}

// Selection returns the selection the selector toggles into
func (s *Selector) Selection() *Selection {
	return s.selection
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC).Day()
}
