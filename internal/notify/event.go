// Package notify forwards finalized parking applications to the management side:
// the spreadsheet stand-in, a Kafka topic, the in-memory ledger and the live board.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/trondheimsveien165173-max/parkering1651731/internal/parking"
)

const (
	EntityApplication = "parking_application"
	ActionCreated     = "created"
)

// Event is the envelope written to every management channel
type Event struct {
	Entity     string              `json:"entity"`
	Action     string              `json:"action"`
	ResourceID string              `json:"resourceId"`
	Timestamp  time.Time           `json:"timestamp"`
	Data       parking.Application `json:"data"`
}

// NewCreatedEvent wraps a freshly submitted application
func NewCreatedEvent(app parking.Application) Event {
	return Event{
		Entity:     EntityApplication,
		Action:     ActionCreated,
		ResourceID: app.ID,
		Timestamp:  app.SubmittedAt.UTC(),
		Data:       app,
	}
}

// Topic is entity.action
func (e Event) Topic() string {
	return e.Entity + "." + e.Action
}

func encodeEvent(app parking.Application) ([]byte, error) {
	return json.Marshal(NewCreatedEvent(app))
}

// Fanout publishes to every publisher and joins their errors
type Fanout []parking.Publisher

func (f Fanout) Publish(ctx context.Context, app parking.Application) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, app); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
