package parking

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/trondheimsveien165173-max/parkering1651731/internal/calendar"
)

func TestFormSubmitSuccess(t *testing.T) {
	var form Form
	form.Fill(completeDraft())
	dates := []calendar.Day{calendar.NewDay(2024, 2, 10), calendar.NewDay(2024, 2, 11)}

	var emitted []Submission
	notice, err := form.Submit(dates, func(s Submission) { emitted = append(emitted, s) })
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	if len(emitted) != 1 {
		t.Fatalf("Expected 1 submission, got %d", len(emitted))
	}
	if len(emitted[0].Dates) != 2 || emitted[0].UnitNumber != "12" {
		t.Errorf("Unexpected submission %+v", emitted[0])
	}
	if !form.Draft().IsEmpty() {
		t.Errorf("Form should be reset, got %+v", form.Draft())
	}
	if notice.Level != NoticeSuccess {
		t.Errorf("Expected success notice, got %s", notice.Level)
	}
	if notice.Description != "Din forespørsel for 2 dager er mottatt." {
		t.Errorf("Unexpected description %q", notice.Description)
	}

	// The emitted dates must not alias the caller's slice
	dates[0] = calendar.NewDay(2030, 1, 1)
	if emitted[0].Dates[0].Year != 2024 {
		t.Error("Submission dates alias the caller's slice")
	}
}

func TestFormSubmitSingularNotice(t *testing.T) {
	var form Form
	form.Fill(completeDraft())

	notice, err := form.Submit([]calendar.Day{calendar.NewDay(2024, 2, 10)}, func(Submission) {})
	if err != nil {
		t.Fatal(err)
	}
	if notice.Description != "Din forespørsel for 1 dag er mottatt." {
		t.Errorf("Unexpected description %q", notice.Description)
	}
}

func TestFormSubmitFailureKeepsFields(t *testing.T) {
	tests := []struct {
		name    string
		dates   []calendar.Day
		unit    string
		wantErr error
		title   string
	}{
		{"no dates", nil, "12", ErrNoDateSelected, "Vennligst velg minst én dato fra kalenderen"},
		{"bad unit", []calendar.Day{calendar.NewDay(2024, 2, 10)}, "66", ErrUnitOutOfRange, "Leilighetsnummer må være mellom 1 og 65"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var form Form
			draft := completeDraft()
			draft.UnitNumber = tt.unit
			form.Fill(draft)

			emitted := false
			notice, err := form.Submit(tt.dates, func(Submission) { emitted = true })
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Submit() error = %v, want %v", err, tt.wantErr)
			}
			if emitted {
				t.Error("Nothing should be emitted on failure")
			}
			if form.Draft() != draft {
				t.Errorf("Fields should be retained, got %+v", form.Draft())
			}
			if notice.Level != NoticeError || notice.Title != tt.title {
				t.Errorf("Unexpected notice %+v", notice)
			}
		})
	}
}

func TestRegisterIDsFollowClock(t *testing.T) {
	now := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	r := NewRegister(func() time.Time { return now })
	sub := Submission{Dates: []calendar.Day{calendar.NewDay(2024, 2, 10)}, Draft: completeDraft()}

	var ids []string
	for i := 0; i < 5; i++ {
		ids = append(ids, r.Append(sub).ID)
	}
	now = now.Add(-time.Hour)
	ids = append(ids, r.Append(sub).ID)

	for i, s := range ids {
		id, err := uuid.Parse(s)
		if err != nil {
			t.Fatalf("Expected a valid uuid, got %q: %v", s, err)
		}
		if id.Version() != 7 || id.Variant() != uuid.RFC4122 {
			t.Errorf("Expected a version 7 RFC 9562 uuid, got version %d variant %v", id.Version(), id.Variant())
		}
		sec, nsec := id.Time().UnixTime()
		if got := time.Unix(sec, nsec).UnixMilli(); got != time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC).UnixMilli() {
			t.Errorf("Expected id %d to carry the register clock, got %d", i, got)
		}
		if i > 0 && !(ids[i-1] < s) {
			t.Errorf("Expected ids to strictly increase: %s >= %s", ids[i-1], s)
		}
	}
}

func TestRegisterSequenceOverflow(t *testing.T) {
	now := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	r := NewRegister(func() time.Time { return now })

	prev := r.newID(now)
	for i := 0; i < maxSeq+1; i++ {
		next := r.newID(now)
		if !(prev < next) {
			t.Fatalf("Expected ids to strictly increase at %d: %s >= %s", i, prev, next)
		}
		prev = next
	}
	if r.lastMS != now.UnixMilli()+1 || r.seq != 0 {
		t.Errorf("Expected the counter to carry into the timestamp, got ms %d seq %d", r.lastMS-now.UnixMilli(), r.seq)
	}
}

func TestRegisterAppend(t *testing.T) {
	now := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	r := NewRegister(func() time.Time { return now })

	single := Submission{Dates: []calendar.Day{calendar.NewDay(2024, 2, 10)}, Draft: completeDraft()}
	multi := Submission{Dates: []calendar.Day{calendar.NewDay(2024, 2, 10), calendar.NewDay(2024, 2, 11), calendar.NewDay(2024, 3, 1)}, Draft: completeDraft()}

	first := r.Append(single)
	now = now.Add(time.Millisecond)
	second := r.Append(multi)

	if first.ID == "" || first.ID == second.ID {
		t.Fatalf("Expected unique ids, got %q and %q", first.ID, second.ID)
	}
	if !(first.ID < second.ID) {
		t.Errorf("Expected ids to increase with creation time: %s >= %s", first.ID, second.ID)
	}
	if !second.SubmittedAt.After(first.SubmittedAt) {
		t.Error("Expected later timestamp on second application")
	}

	rows := r.Rows()
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0].Dates != "10.2.2024" {
		t.Errorf("Expected localized single date, got %q", rows[0].Dates)
	}
	if rows[1].Dates != "3 dager" {
		t.Errorf("Expected day count, got %q", rows[1].Dates)
	}
	if rows[0].ID != first.ID || rows[0].UnitNumber != "12" || rows[0].LicensePlate != "AB 12345" {
		t.Errorf("Unexpected row %+v", rows[0])
	}
}
