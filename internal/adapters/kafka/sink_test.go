package kafka

import (
	"context"
	"errors"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quentinrf/plant-monitor/services/env-service/internal/domain"
)

type fakeWriter struct {
	messages []kafkago.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	w.messages = append(w.messages, msgs...)
	return w.err
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestSink_Publish(t *testing.T) {
	w := &fakeWriter{}
	sink := newSink(w, "esp-01")
	snap := domain.NewSnapshot(domain.Invalid, 55.0, 512, 3000)

	require.NoError(t, sink.Publish(context.Background(), snap))

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, "esp-01", string(msg.Key))
	assert.Equal(t, snap.TakenAt, msg.Time)
	assert.Contains(t, string(msg.Value), `"temperature_celsius":null`)
	assert.Contains(t, string(msg.Value), `"light_level":3000`)
}

func TestSink_PublishError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	err := newSink(w, "esp-01").Publish(context.Background(), domain.NewSnapshot(1, 2, 3, 4))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "write kafka message")
}

func TestSink_Close(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, newSink(w, "esp-01").Close())
	assert.True(t, w.closed)
}
