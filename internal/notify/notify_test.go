package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/segmentio/kafka-go"

	"github.com/trondheimsveien165173-max/parkering1651731/internal/calendar"
	"github.com/trondheimsveien165173-max/parkering1651731/internal/parking"
)

func testApplication(id string) parking.Application {
	return parking.Application{
		ID:           id,
		Dates:        []calendar.Day{calendar.NewDay(2024, 2, 10), calendar.NewDay(2024, 2, 11)},
		Reason:       "Besøk",
		UnitNumber:   "12",
		LicensePlate: "AB 12345",
		Name:         "Kari Nordmann",
		Phone:        "12345678",
		Email:        "kari@eksempel.no",
		SubmittedAt:  time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
	}
}

type recorder struct {
	mu   sync.Mutex
	apps []parking.Application
	err  error
}

func (r *recorder) Publish(_ context.Context, app parking.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps = append(r.apps, app)
	return r.err
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.apps)
}

func TestEventEnvelope(t *testing.T) {
	data, err := encodeEvent(testApplication("app-1"))
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["entity"] != EntityApplication || decoded["action"] != ActionCreated || decoded["resourceId"] != "app-1" {
		t.Errorf("Unexpected envelope: %s", data)
	}
	if !strings.Contains(string(data), `"dates":["2024-02-10","2024-02-11"]`) {
		t.Errorf("Expected ISO dates in payload: %s", data)
	}
	if NewCreatedEvent(testApplication("x")).Topic() != "parking_application.created" {
		t.Error("Unexpected topic")
	}
}

func TestFanoutJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	ok := &recorder{}
	failing := &recorder{err: boom}

	err := Fanout{ok, nil, failing}.Publish(context.Background(), testApplication("a"))
	if !errors.Is(err, boom) {
		t.Errorf("Expected joined error to contain boom, got %v", err)
	}
	if ok.count() != 1 || failing.count() != 1 {
		t.Error("Every publisher should be called")
	}
}

func TestAsyncDrainsOnClose(t *testing.T) {
	rec := &recorder{err: errors.New("sheet down")}
	async := NewAsync(rec, 8, time.Second)

	for _, id := range []string{"a", "b", "c"} {
		if err := async.Publish(context.Background(), testApplication(id)); err != nil {
			t.Fatalf("Publish() failed: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := async.Close(ctx); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if rec.count() != 3 {
		t.Errorf("Expected 3 delivered applications, got %d", rec.count())
	}
	if err := async.Publish(context.Background(), testApplication("d")); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed after Close, got %v", err)
	}
}

func TestLedger(t *testing.T) {
	l := NewLedger()
	_ = l.Publish(context.Background(), testApplication("a"))
	_ = l.Publish(context.Background(), testApplication("b"))

	all := l.All()
	if len(all) != 2 || all[0].ID != "a" || all[1].ID != "b" {
		t.Errorf("Unexpected ledger contents %+v", all)
	}
	all[0].ID = "mutated"
	if l.All()[0].ID != "a" {
		t.Error("All() should return a copy")
	}
}

type fakeWriter struct {
	msgs []kafka.Message
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestKafkaPublisher(t *testing.T) {
	if NewKafkaPublisher(nil, "parking.applications") != nil {
		t.Error("Expected nil publisher without brokers")
	}

	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, topic: "parking.applications"}
	if err := p.Publish(context.Background(), testApplication("app-7")); err != nil {
		t.Fatalf("Publish() failed: %v", err)
	}

	if len(w.msgs) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(w.msgs))
	}
	msg := w.msgs[0]
	if string(msg.Key) != "app-7" {
		t.Errorf("Expected key app-7, got %s", msg.Key)
	}
	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	if headers["event"] != "parking_application.created" || headers["entity"] != EntityApplication {
		t.Errorf("Unexpected headers %v", headers)
	}
	var event Event
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		t.Fatalf("Message value is not an event: %v", err)
	}
	if event.Data.LicensePlate != "AB 12345" || len(event.Data.Dates) != 2 {
		t.Errorf("Unexpected event data %+v", event.Data)
	}
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("Board never attached")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := hub.Publish(context.Background(), testApplication("live-1")); err != nil {
		t.Fatal(err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event Event
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if event.ResourceID != "live-1" || event.Action != ActionCreated {
		t.Errorf("Unexpected event %+v", event)
	}
}
