package calendar

import (
	"fmt"
	"time"
)

var monthNames = [...]string{
	"Januar", "Februar", "Mars", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Desember",
}

// Weekdays is the Sunday-first header row
var Weekdays = []string{"Søn", "Man", "Tir", "Ons", "Tor", "Fre", "Lør"}

// MonthName returns the Norwegian name of m
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// Cell is one slot of the month grid. Blank slots have Number 0.
type Cell struct {
	Number   int    `json:"number"`
	Date     Day    `json:"date"`
	Selected bool   `json:"selected"`
	Disabled bool   `json:"disabled"`
	Holiday  string `json:"holiday,omitempty"`
}

// Blank reports whether c pads the grid before the first day
func (c Cell) Blank() bool { return c.Number == 0 }

// MonthView is the render model of the displayed month
type MonthView struct {
	Year          int      `json:"year"`
	Month         int      `json:"month"`
	Title         string   `json:"title"`
	Weekdays      []string `json:"weekdays"`
	Weeks         [][]Cell `json:"weeks"`
	Threshold     Day      `json:"threshold"`
	SelectedCount int      `json:"selectedCount"`
	Summary       string   `json:"summary,omitempty"`
}

// View builds the grid of the displayed month
func (s *Selector) View() MonthView {
	threshold := s.Threshold()
	holidays := Holidays(s.year)

	first := time.Date(s.year, s.month, 1, 12, 0, 0, 0, time.UTC)
	cells := make([]Cell, int(first.Weekday()), 42)
	for n := 1; n <= s.DaysInMonth(); n++ {
		d := Day{Year: s.year, Month: s.month, Day: n}
		cells = append(cells, Cell{
			Number:   n,
			Date:     d,
			Selected: s.selection.Contains(d),
			Disabled: d.Before(threshold),
			Holiday:  holidays[d],
		})
	}
	for len(cells)%7 != 0 {
		cells = append(cells, Cell{})
	}

	weeks := make([][]Cell, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}

	view := MonthView{
		Year:          s.year,
		Month:         int(s.month),
		Title:         fmt.Sprintf("%s %d", MonthName(s.month), s.year),
		Weekdays:      Weekdays,
		Weeks:         weeks,
		Threshold:     threshold,
		SelectedCount: s.selection.Len(),
	}
	if view.SelectedCount > 0 {
		view.Summary = DayCount(view.SelectedCount) + " valgt"
	}
	return view
}
