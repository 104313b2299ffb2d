package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/trondheimsveien165173-max/parkering1651731/internal/calendar"
	"github.com/trondheimsveien165173-max/parkering1651731/internal/parking"
)

// State is the container of one browser's application flow. It owns the
// selected dates, the visible month, the form and the submitted applications.
type State struct {
	ID string

	mu        sync.Mutex
	clock     calendar.Clock
	selection *calendar.Selection
	selector  *calendar.Selector
	form      parking.Form
	register  *parking.Register
	publisher parking.Publisher
	notice    *parking.Notice
	lastSeen  time.Time
}

// NewState builds an empty container. publisher may be nil.
func NewState(id string, clock calendar.Clock, publisher parking.Publisher) *State {
	selection := calendar.NewSelection()
	return &State{
		ID:        id,
		clock:     clock,
		selection: selection,
		selector:  calendar.NewSelector(clock, selection),
		register:  parking.NewRegister(clock.Now),
		publisher: publisher,
		lastSeen:  clock.Now(),
	}
}

// Snapshot is a consistent copy of the state for rendering
type Snapshot struct {
	SessionID    string                `json:"sessionId"`
	Calendar     calendar.MonthView    `json:"calendar"`
	Selected     []calendar.Day        `json:"selected"`
	Draft        parking.Draft         `json:"draft"`
	Applications []parking.Application `json:"applications"`
	Rows         []parking.Row         `json:"rows"`
	Notice       *parking.Notice       `json:"notice,omitempty"`
}

func (s *State) touch() {
	s.lastSeen = s.clock.Now()
}

// LastSeen returns the time of the last operation
func (s *State) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Navigate shifts the visible month
func (s *State) Navigate(dir calendar.Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.selector.Navigate(dir)
}

// Toggle flips a day of the visible month; disabled days are ignored
func (s *State) Toggle(day int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.selector.Toggle(day)
}

// UpdateDraft stores field values without submitting
func (s *State) UpdateDraft(d parking.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.form.Fill(d)
}

// SetField updates a single form field, as typed
func (s *State) SetField(field parking.Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.form.Set(field, value)
}

// SubmitForm binds d to the form and submits it with the selected dates.
// The notice is also kept for the next Snapshot.
func (s *State) SubmitForm(ctx context.Context, d parking.Draft) (parking.Notice, *parking.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.form.Fill(d)
	var created *parking.Application
	notice, err := s.form.Submit(s.selection.Days(), func(sub parking.Submission) {
		app := s.submitLocked(ctx, sub)
		created = &app
	})
	s.notice = &notice
	return notice, created, err
}

// submitLocked finalizes a validated submission: id and timestamp, append,
// clear the selection, forward to the publisher. Only the form's emit
// callback reaches it.
func (s *State) submitLocked(ctx context.Context, sub parking.Submission) parking.Application {
	app := s.register.Append(sub)
	s.selection.Clear()

	slog.Info("parking application submitted",
		slog.String("sessionId", s.ID),
		slog.String("applicationId", app.ID),
		slog.Int("days", len(app.Dates)),
	)
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, app); err != nil {
			slog.Warn("application publish failed", slog.String("applicationId", app.ID), slog.Any("error", err))
		}
	}
	return app
}

// DismissNotice drops the pending notice. JSON clients receive the notice in
// the response and must not see it again on the next page render.
func (s *State) DismissNotice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = nil
}

// Applications returns the submitted applications in insertion order
func (s *State) Applications() []parking.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.register.All()
}

// Selected returns the selected dates
func (s *State) Selected() []calendar.Day {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Days()
}

// Snapshot copies the state. When consume is set the pending notice is
// returned once and then dropped, like a dismissed toast.
func (s *State) Snapshot(consume bool) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	snap := Snapshot{
		SessionID:    s.ID,
		Calendar:     s.selector.View(),
		Selected:     s.selection.Days(),
		Draft:        s.form.Draft(),
		Applications: s.register.All(),
		Rows:         s.register.Rows(),
		Notice:       s.notice,
	}
	if consume {
		s.notice = nil
	}
	return snap
}
