package ports

import (
	"context"
	"time"
)

// ClimateSensor defines how to read the combined temperature/humidity sensor
// This is a PORT - adapters (I2C, Mock) will implement it
type ClimateSensor interface {
	// ReadClimate returns temperature in Celsius and relative humidity in percent
	ReadClimate(ctx context.Context) (temperature, humidity float64, err error)

	// MinimumSamplingPeriod is the shortest interval between two reliable reads
	MinimumSamplingPeriod() time.Duration

	// Close releases any resources
	Close() error
}

// AnalogChannel defines how to read one raw analog input (sound, light)
type AnalogChannel interface {
	// ReadLevel returns the raw converter value
	ReadLevel(ctx context.Context) (int, error)

	// Close releases any resources
	Close() error
}
