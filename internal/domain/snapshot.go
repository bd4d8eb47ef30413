package domain

import (
	"math"
	"time"
)

// Invalid marks a climate value the sensor could not produce
var Invalid = math.NaN()

// Snapshot holds one set of the four sensor readings taken at the same instant
// This is pure domain logic - no hardware, no HTTP, just the measured values
type Snapshot struct {
	Temperature float64 // degrees Celsius, Invalid if the read failed
	Humidity    float64 // percent RH, Invalid if the read failed
	SoundLevel  int     // raw analog reading
	LightLevel  int     // raw analog reading
	TakenAt     time.Time
}

// NewSnapshot creates a snapshot stamped with the current time
func NewSnapshot(temperature, humidity float64, sound, light int) Snapshot {
	return Snapshot{
		Temperature: temperature,
		Humidity:    humidity,
		SoundLevel:  sound,
		LightLevel:  light,
		TakenAt:     time.Now(),
	}
}

// IsInvalid reports whether v is the invalid marker or otherwise not a finite number
func IsInvalid(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// Valid returns true if both climate values are usable
func (s Snapshot) Valid() bool {
	return !IsInvalid(s.Temperature) && !IsInvalid(s.Humidity)
}
