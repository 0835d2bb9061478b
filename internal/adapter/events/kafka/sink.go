// Package kafka publishes engine events to a Kafka topic for off-engine indexers.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"blindbuy-escrow/internal/core/domain"

	"github.com/segmentio/kafka-go"
)

const headerEventType = "event-type"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Sink implements ports.EventSink. Messages are keyed by Event.Key so all
// events of one order land on the same partition.
type Sink struct {
	writer messageWriter
}

func NewSink(brokers []string, topic string) *Sink {
	return &Sink{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

func (s *Sink) Name() string { return "kafka" }

func (s *Sink) Send(ctx context.Context, ev domain.Event) error {
	value, err := json.Marshal(ev.Payload())
	if err != nil {
		return fmt.Errorf("kafka: marshal event: %w", err)
	}
	msg := kafka.Message{
		Key:     []byte(ev.Key()),
		Value:   value,
		Time:    ev.OccurredAt,
		Headers: []kafka.Header{{Key: headerEventType, Value: []byte(ev.Type)}},
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write %s: %w", ev.Type, err)
	}
	return nil
}

func (s *Sink) Close() error {
	return s.writer.Close()
}
