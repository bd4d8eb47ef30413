package domain

import (
	"math"
	"testing"
)

func TestNewSnapshot(t *testing.T) {
	s := NewSnapshot(21.3, 55.0, 512, 3000)

	if s.Temperature != 21.3 || s.Humidity != 55.0 {
		t.Errorf("unexpected climate values: %v, %v", s.Temperature, s.Humidity)
	}
	if s.SoundLevel != 512 || s.LightLevel != 3000 {
		t.Errorf("unexpected levels: %v, %v", s.SoundLevel, s.LightLevel)
	}
	if s.TakenAt.IsZero() {
		t.Error("expected TakenAt to be set")
	}
}

func TestSnapshot_Valid(t *testing.T) {
	tests := []struct {
		name        string
		temperature float64
		humidity    float64
		want        bool
	}{
		{name: "finite values", temperature: 21.3, humidity: 55.0, want: true},
		{name: "zero is valid", temperature: 0, humidity: 0, want: true},
		{name: "invalid temperature", temperature: Invalid, humidity: 55.0, want: false},
		{name: "invalid humidity", temperature: 21.3, humidity: Invalid, want: false},
		{name: "infinite temperature", temperature: math.Inf(1), humidity: 55.0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSnapshot(tt.temperature, tt.humidity, 0, 0)
			if got := s.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsInvalid(t *testing.T) {
	if !IsInvalid(Invalid) {
		t.Error("expected Invalid marker to be invalid")
	}
	if !IsInvalid(math.Inf(-1)) {
		t.Error("expected -Inf to be invalid")
	}
	if IsInvalid(-40) {
		t.Error("expected -40 to be valid")
	}
}
