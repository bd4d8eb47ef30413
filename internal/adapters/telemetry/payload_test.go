package telemetry

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quentinrf/plant-monitor/services/env-service/internal/domain"
)

func TestEncode(t *testing.T) {
	s := domain.NewSnapshot(21.3, 55.0, 512, 3000)
	s.TakenAt = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	b, err := Encode("esp-01", s)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"device_id": "esp-01",
		"timestamp": "2026-10-18T12:00:00Z",
		"temperature_celsius": 21.3,
		"humidity_percent": 55,
		"sound_level": 512,
		"light_level": 3000
	}`, string(b))
}

func TestEncode_InvalidBecomesNull(t *testing.T) {
	b, err := Encode("esp-01", domain.NewSnapshot(domain.Invalid, domain.Invalid, 1, 2))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))

	assert.Nil(t, decoded["temperature_celsius"])
	assert.Nil(t, decoded["humidity_percent"])
	assert.Contains(t, decoded, "temperature_celsius")
	assert.EqualValues(t, 1, decoded["sound_level"])
}
