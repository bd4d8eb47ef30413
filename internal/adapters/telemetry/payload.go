// Package telemetry defines the JSON message the MQTT and Kafka sinks publish.
package telemetry

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/quentinrf/plant-monitor/services/env-service/internal/domain"
)

// Payload is one snapshot as sent to a broker. Invalid climate values are null.
type Payload struct {
	DeviceID    string    `json:"device_id"`
	Timestamp   time.Time `json:"timestamp"`
	Temperature *float64  `json:"temperature_celsius"`
	Humidity    *float64  `json:"humidity_percent"`
	SoundLevel  int       `json:"sound_level"`
	LightLevel  int       `json:"light_level"`
}

// NewPayload converts a snapshot, mapping the invalid marker to nil.
func NewPayload(deviceID string, s domain.Snapshot) Payload {
	return Payload{
		DeviceID:    deviceID,
		Timestamp:   s.TakenAt.UTC(),
		Temperature: finite(s.Temperature),
		Humidity:    finite(s.Humidity),
		SoundLevel:  s.SoundLevel,
		LightLevel:  s.LightLevel,
	}
}

// Encode marshals the snapshot as a Payload.
func Encode(deviceID string, s domain.Snapshot) ([]byte, error) {
	b, err := json.Marshal(NewPayload(deviceID, s))
	if err != nil {
		return nil, fmt.Errorf("encode telemetry payload: %w", err)
	}
	return b, nil
}

func finite(v float64) *float64 {
	if domain.IsInvalid(v) {
		return nil
	}
	return &v
}
