package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/trondheimsveien165173-max/parkering1651731/internal/parking"
)

// messageWriter is the part of *kafka.Writer the publisher uses
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes one message per application to the management topic,
// keyed by application id.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

// NewKafkaPublisher returns nil when no brokers are configured
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	if len(brokers) == 0 {
		return nil
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			BatchTimeout:           50 * time.Millisecond,
		},
		topic: topic,
	}
}

func buildMessage(app parking.Application) (kafka.Message, error) {
	event := NewCreatedEvent(app)
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode application %s: %w", app.ID, err)
	}
	return kafka.Message{
		Key:   []byte(app.ID),
		Value: value,
		Time:  app.SubmittedAt,
		Headers: []kafka.Header{
			{Key: "entity", Value: []byte(event.Entity)},
			{Key: "action", Value: []byte(event.Action)},
			{Key: "event", Value: []byte(event.Topic())},
		},
	}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, app parking.Application) error {
	msg, err := buildMessage(app)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write to %s: %w", p.topic, err)
	}
	slog.Debug("kafka message produced", slog.String("topic", p.topic), slog.String("applicationId", app.ID))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
