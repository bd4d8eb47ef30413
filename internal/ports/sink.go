package ports

import (
	"context"
	"fmt"
	"io"

	"github.com/quentinrf/plant-monitor/services/env-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/env-service/internal/render"
)

// Sink receives every snapshot the reporter takes
// This is a PORT - adapters (console, gRPC health, MQTT, Kafka) will implement it
type Sink interface {
	Publish(ctx context.Context, snapshot domain.Snapshot) error
}

// ConsoleSink writes the diagnostic summary line, one per snapshot
type ConsoleSink struct {
	w io.Writer
}

// NewConsoleSink creates a sink writing to w (normally os.Stdout)
func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

// Publish writes the console line followed by a newline
func (c *ConsoleSink) Publish(_ context.Context, snapshot domain.Snapshot) error {
	if _, err := fmt.Fprintln(c.w, render.ConsoleLine(snapshot)); err != nil {
		return fmt.Errorf("write console line: %w", err)
	}
	return nil
}
