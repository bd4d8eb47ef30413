package periph

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/bmxx80"

	"github.com/quentinrf/plant-monitor/services/env-service/internal/domain"
)

// bmeSamplingPeriod leaves the BME280 time to finish a forced-mode conversion with 4x oversampling
const bmeSamplingPeriod = time.Second

// ClimateSensor reads temperature and humidity from a BME280
// This implements the ports.ClimateSensor interface
type ClimateSensor struct {
	dev *bmxx80.Dev
}

// NewClimateSensor probes a BME280 at addr (0x76 or 0x77)
func NewClimateSensor(bus i2c.Bus, addr uint16) (*ClimateSensor, error) {
	dev, err := bmxx80.NewI2C(bus, addr, &bmxx80.DefaultOpts)
	if err != nil {
		return nil, fmt.Errorf("open bme280 at %#x: %w", addr, err)
	}
	return &ClimateSensor{dev: dev}, nil
}

// ReadClimate performs one measurement
func (s *ClimateSensor) ReadClimate(ctx context.Context) (float64, float64, error) {
	if err := ctx.Err(); err != nil {
		return domain.Invalid, domain.Invalid, err
	}

	var env physic.Env
	if err := s.dev.Sense(&env); err != nil {
		return domain.Invalid, domain.Invalid, fmt.Errorf("%w: bme280: %v", domain.ErrSensorUnavailable, err)
	}

	return celsius(env.Temperature), percentRH(env.Humidity), nil
}

// MinimumSamplingPeriod returns the interval between reliable BME280 reads
func (s *ClimateSensor) MinimumSamplingPeriod() time.Duration {
	return bmeSamplingPeriod
}

// Close puts the sensor to sleep
func (s *ClimateSensor) Close() error {
	return s.dev.Halt()
}

func celsius(t physic.Temperature) float64 {
	return float64(t-physic.ZeroCelsius) / float64(physic.Kelvin)
}

func percentRH(h physic.RelativeHumidity) float64 {
	return float64(h) / float64(physic.PercentRH)
}
