package calendar

// Selection is the set of calendar days chosen for one in-progress application.
// Membership is by Day equality; insertion order is kept for stable output.
type Selection struct {
	days []Day
}

// NewSelection returns a selection containing days, duplicates dropped
func NewSelection(days ...Day) *Selection {
	s := &Selection{}
	for _, d := range days {
		if !s.Contains(d) {
			s.days = append(s.days, d)
		}
	}
	return s
}

func (s *Selection) indexOf(d Day) int {
	for i, existing := range s.days {
		if existing.Equal(d) {
			return i
		}
	}
	return -1
}

// Contains reports whether d is selected
func (s *Selection) Contains(d Day) bool {
	return s.indexOf(d) >= 0
}

// Toggle adds d when absent and removes it when present.
// It returns true when d is selected afterwards.
func (s *Selection) Toggle(d Day) bool {
	if i := s.indexOf(d); i >= 0 {
		s.days = append(s.days[:i], s.days[i+1:]...)
		return false
	}
	s.days = append(s.days, d)
	return true
}

// Days returns a copy of the selected days in insertion order
func (s *Selection) Days() []Day {
	out := make([]Day, len(s.days))
	copy(out, s.days)
	return out
}

func (s *Selection) Len() int {
	return len(s.days)
}

// Clear empties the selection
func (s *Selection) Clear() {
	s.days = nil
}
