package session

import (
	"testing"
	"time"

	"github.com/trondheimsveien165173-max/parkering1651731/internal/calendar"
)

func TestResolve(t *testing.T) {
	m := NewManager(calendar.FixedClock(time.Date(2024, 2, 3, 9, 0, 0, 0, time.UTC)), nil, time.Hour)

	s1, created := m.Resolve("")
	if !created || s1 == nil || s1.ID == "" {
		t.Fatalf("Expected new session, got %v %v", s1, created)
	}

	s2, created := m.Resolve(s1.ID)
	if created || s2 != s1 {
		t.Fatal("Session not cached")
	}

	s3, created := m.Resolve("unknown-id")
	if !created || s3.ID == "unknown-id" {
		t.Error("Unknown ids must get a fresh session with a server-issued id")
	}
	if m.Len() != 2 {
		t.Errorf("Expected 2 sessions, got %d", m.Len())
	}
}

func TestPrune(t *testing.T) {
	now := time.Date(2024, 2, 3, 9, 0, 0, 0, time.UTC)
	m := NewManager(calendar.ClockFunc(func() time.Time { return now }), nil, time.Hour)

	idle, _ := m.Resolve("")
	now = now.Add(50 * time.Minute)
	active, _ := m.Resolve("")
	now = now.Add(20 * time.Minute)

	if removed := m.Prune(); removed != 1 {
		t.Fatalf("Expected 1 pruned session, got %d", removed)
	}
	if kept, created := m.Resolve(active.ID); created || kept != active {
		t.Error("Active session should be kept")
	}
	if fresh, created := m.Resolve(idle.ID); !created || fresh.ID == idle.ID {
		t.Error("Idle session should be pruned")
	}
}
