package ports

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/env-service/internal/domain"
)

// SnapshotReader takes fresh snapshots from the sensor hardware
// Reads are serialized: HTTP handlers and the reporter share the same physical sensors
type SnapshotReader struct {
	mu      sync.Mutex
	climate ClimateSensor
	sound   AnalogChannel
	light   AnalogChannel
}

// NewSnapshotReader creates a reader over the three hardware ports
func NewSnapshotReader(climate ClimateSensor, sound, light AnalogChannel) *SnapshotReader {
	return &SnapshotReader{
		climate: climate,
		sound:   sound,
		light:   light,
	}
}

// ReadSnapshot samples every sensor once and never fails
// A climate read error yields domain.Invalid for temperature and humidity
func (r *SnapshotReader) ReadSnapshot(ctx context.Context) domain.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	temperature, humidity, err := r.climate.ReadClimate(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read climate sensor")
		temperature, humidity = domain.Invalid, domain.Invalid
	}

	sound := r.readLevel(ctx, r.sound, "sound")
	light := r.readLevel(ctx, r.light, "light")

	return domain.NewSnapshot(temperature, humidity, sound, light)
}

// readLevel reports 0 when the channel errors; analog inputs always carry a value on real hardware
func (r *SnapshotReader) readLevel(ctx context.Context, ch AnalogChannel, name string) int {
	level, err := ch.ReadLevel(ctx)
	if err != nil {
		log.Warn().Err(err).Str("channel", name).Msg("failed to read analog channel")
		return 0
	}
	return level
}

// MinimumSamplingPeriod forwards the climate sensor's minimum read interval
func (r *SnapshotReader) MinimumSamplingPeriod() time.Duration {
	return r.climate.MinimumSamplingPeriod()
}
