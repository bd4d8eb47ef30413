package ports

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/env-service/internal/domain"
)

// ExtraDelay is added to the sensor's minimum sampling period to get the reporting period
const ExtraDelay = 2 * time.Second

// Snapshotter is what the reporter needs from the sensor side
type Snapshotter interface {
	ReadSnapshot(ctx context.Context) domain.Snapshot
	MinimumSamplingPeriod() time.Duration
}

// Reporter handles periodic sensor reading and fan-out to sinks
type Reporter struct {
	reader   Snapshotter
	sinks    []Sink
	interval time.Duration
}

// NewReporter creates a reporter ticking every MinimumSamplingPeriod + ExtraDelay
func NewReporter(reader Snapshotter, sinks ...Sink) *Reporter {
	return &Reporter{
		reader:   reader,
		sinks:    sinks,
		interval: reader.MinimumSamplingPeriod() + ExtraDelay,
	}
}

// Interval returns the fixed reporting period
func (r *Reporter) Interval() time.Duration {
	return r.interval
}

// Start begins periodic sensor reading
// This runs in a goroutine until context is cancelled
func (r *Reporter) Start(ctx context.Context) {
	log.Info().
		Dur("interval", r.interval).
		Int("sinks", len(r.sinks)).
		Msg("starting periodic reporter")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.ReportOnce(ctx)

		case <-ctx.Done():
			log.Info().Msg("stopping periodic reporter")
			return
		}
	}
}

// ReportOnce reads one snapshot and hands it to every sink
func (r *Reporter) ReportOnce(ctx context.Context) {
	log.Debug().Msg("reading sensors")

	snapshot := r.reader.ReadSnapshot(ctx)
	if !snapshot.Valid() {
		log.Warn().Msg("snapshot carries invalid climate values")
	}

	for _, sink := range r.sinks {
		if err := sink.Publish(ctx, snapshot); err != nil {
			log.Error().Err(err).Msg("failed to publish snapshot")
		}
	}
}
