package parking

import (
	"time"

	"github.com/google/uuid"

	"github.com/trondheimsveien165173-max/parkering1651731/internal/calendar"
)

// Row is one line of the results table
type Row struct {
	ID           string `json:"id"`
	Dates        string `json:"dates"`
	Name         string `json:"name"`
	UnitNumber   string `json:"unitNumber"`
	LicensePlate string `json:"licensePlate"`
	Reason       string `json:"reason"`
}

// Register is the append-only list of finalized applications.
// Insertion order is display order.
type Register struct {
	now   func() time.Time
	items []Application

	lastMS int64
	seq    uint16
}

// NewRegister stamps applications with now and a UUIDv7 id whose timestamp
// is taken from the same clock
func NewRegister(now func() time.Time) *Register {
	if now == nil {
		now = time.Now
	}
	return &Register{now: now}
}

// maxSeq is the largest value of the 12 bit rand_a counter
const maxSeq = 0x0fff

// newID builds a UUIDv7 for at. Ids of one register strictly increase: within
// the same millisecond, or when the clock steps back, the 12 bit counter in
// rand_a advances and carries into the timestamp when it overflows.
func (r *Register) newID(at time.Time) string {
	ms := at.UnixMilli()
	if ms > r.lastMS {
		r.lastMS = ms
		r.seq = 0
	} else if r.seq < maxSeq {
		r.seq++
	} else {
		r.lastMS++
		r.seq = 0
	}

	id := uuid.Must(uuid.NewRandom())
	id[0] = byte(r.lastMS >> 40)
	id[1] = byte(r.lastMS >> 32)
	id[2] = byte(r.lastMS >> 24)
	id[3] = byte(r.lastMS >> 16)
	id[4] = byte(r.lastMS >> 8)
	id[5] = byte(r.lastMS)
	id[6] = 0x70 | byte(r.seq>>8)&0x0f
	id[7] = byte(r.seq)
	id[8] = 0x80 | id[8]&0x3f
	return id.String()
}

// Append finalizes a submission
func (r *Register) Append(s Submission) Application {
	dates := make([]calendar.Day, len(s.Dates))
	copy(dates, s.Dates)

	at := r.now()
	app := Application{
		ID:           r.newID(at),
		Dates:        dates,
		Reason:       s.Reason,
		UnitNumber:   s.UnitNumber,
		LicensePlate: s.LicensePlate,
		Name:         s.Name,
		Phone:        s.Phone,
		Email:        s.Email,
		SubmittedAt:  at,
	}
	r.items = append(r.items, app)
	return app
}

// All returns a copy of the applications in insertion order
func (r *Register) All() []Application {
	out := make([]Application, len(r.items))
	copy(out, r.items)
	return out
}

func (r *Register) Len() int {
	return len(r.items)
}

// Rows renders the results table
func (r *Register) Rows() []Row {
	rows := make([]Row, 0, len(r.items))
	for _, app := range r.items {
		rows = append(rows, RowOf(app))
	}
	return rows
}

// RowOf projects an application onto a table row
func RowOf(app Application) Row {
	return Row{
		ID:           app.ID,
		Dates:        app.DatesLabel(),
		Name:         app.Name,
		UnitNumber:   app.UnitNumber,
		LicensePlate: app.LicensePlate,
		Reason:       app.Reason,
	}
}
