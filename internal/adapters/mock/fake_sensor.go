package mock

import (
	"context"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/quentinrf/plant-monitor/services/env-service/internal/domain"
)

// dhtSamplingPeriod matches a DHT22, the sensor the fake stands in for
const dhtSamplingPeriod = 2 * time.Second

// FakeClimateSensor simulates a combined temperature/humidity sensor for development
// This implements the ports.ClimateSensor interface
type FakeClimateSensor struct {
	baseTemp  float64
	tempVar   float64
	baseHumid float64
	humidVar  float64
	failing   atomic.Bool
	reads     atomic.Int64
}

// NewFakeClimateSensor creates a sensor that returns realistic values
// baseTemp/baseHumid: average readings (e.g., 21°C, 45%)
// tempVar/humidVar: +/- range; zero makes the sensor deterministic
func NewFakeClimateSensor(baseTemp, tempVar, baseHumid, humidVar float64) *FakeClimateSensor {
	return &FakeClimateSensor{
		baseTemp:  baseTemp,
		tempVar:   tempVar,
		baseHumid: baseHumid,
		humidVar:  humidVar,
	}
}

// ReadClimate returns a simulated reading, or ErrSensorUnavailable while failing
func (s *FakeClimateSensor) ReadClimate(ctx context.Context) (float64, float64, error) {
	s.reads.Add(1)

	if s.failing.Load() {
		return domain.Invalid, domain.Invalid, domain.ErrSensorUnavailable
	}

	temperature := s.baseTemp + jitter(s.tempVar)
	humidity := clampFloat(s.baseHumid+jitter(s.humidVar), 0, 100)

	return temperature, humidity, nil
}

// SetFailing makes subsequent reads fail, like an unplugged sensor
func (s *FakeClimateSensor) SetFailing(failing bool) {
	s.failing.Store(failing)
}

// Reads returns how many times the sensor was sampled
func (s *FakeClimateSensor) Reads() int64 {
	return s.reads.Load()
}

// MinimumSamplingPeriod returns the DHT22 interval
func (s *FakeClimateSensor) MinimumSamplingPeriod() time.Duration {
	return dhtSamplingPeriod
}

// Close is a no-op for fake sensor
func (s *FakeClimateSensor) Close() error {
	return nil
}

// maxLevel is the top of a 12-bit converter range
const maxLevel = 4095

// FakeAnalog simulates a raw analog input such as a microphone or photoresistor
// This implements the ports.AnalogChannel interface
type FakeAnalog struct {
	baseValue int
	variation int
}

// NewFakeAnalog creates a channel reading baseValue +/- variation, clamped to 0-4095
func NewFakeAnalog(baseValue, variation int) *FakeAnalog {
	return &FakeAnalog{
		baseValue: baseValue,
		variation: variation,
	}
}

// ReadLevel returns a simulated raw level
func (a *FakeAnalog) ReadLevel(ctx context.Context) (int, error) {
	level := a.baseValue
	if a.variation > 0 {
		level += rand.Intn(2*a.variation+1) - a.variation
	}

	if level < 0 {
		level = 0
	}
	if level > maxLevel {
		level = maxLevel
	}

	return level, nil
}

// Close is a no-op for fake channel
func (a *FakeAnalog) Close() error {
	return nil
}

// jitter returns a random value in [-variation, +variation]
func jitter(variation float64) float64 {
	return (rand.Float64() - 0.5) * 2 * variation
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
