package kafka

import (
	"context"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/quentinrf/plant-monitor/services/env-service/internal/adapters/telemetry"
	"github.com/quentinrf/plant-monitor/services/env-service/internal/domain"
)

// messageWriter is the part of kafka.Writer the sink uses
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Sink writes each snapshot to a Kafka topic keyed by device ID
// This implements the ports.Sink interface
type Sink struct {
	writer   messageWriter
	deviceID string
}

// NewSink creates a sink writing to topic on brokers
func NewSink(brokers []string, topic, deviceID string) *Sink {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return newSink(w, deviceID)
}

func newSink(w messageWriter, deviceID string) *Sink {
	return &Sink{
		writer:   w,
		deviceID: deviceID,
	}
}

// Publish sends the snapshot as a JSON telemetry payload
func (s *Sink) Publish(ctx context.Context, snapshot domain.Snapshot) error {
	payload, err := telemetry.Encode(s.deviceID, snapshot)
	if err != nil {
		return err
	}

	msg := kafkago.Message{
		Key:   []byte(s.deviceID),
		Value: payload,
		Time:  snapshot.TakenAt,
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}
	return nil
}

// Close flushes pending messages and closes the writer
func (s *Sink) Close() error {
	return s.writer.Close()
}
