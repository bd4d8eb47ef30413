package domain

import "errors"

var (
	// ErrSensorUnavailable indicates sensor cannot be read
	ErrSensorUnavailable = errors.New("sensor unavailable")

	// ErrUnknownSensorType indicates SENSOR_TYPE names no known adapter
	ErrUnknownSensorType = errors.New("unknown sensor type")
)
