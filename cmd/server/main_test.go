package main

import (
	"context"
	"errors"
	"testing"

	"github.com/quentinrf/plant-monitor/services/env-service/internal/domain"
)

func TestOpenSensors_Mock(t *testing.T) {
	sensors, err := openSensors(Config{SensorType: "mock"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer sensors.close()

	temperature, humidity, err := sensors.climate.ReadClimate(context.Background())
	if err != nil {
		t.Fatalf("ReadClimate failed: %v", err)
	}
	if temperature < 19 || temperature > 23 {
		t.Errorf("temperature out of mock range: %v", temperature)
	}
	if humidity < 40 || humidity > 50 {
		t.Errorf("humidity out of mock range: %v", humidity)
	}
}

func TestOpenSensors_Unknown(t *testing.T) {
	_, err := openSensors(Config{SensorType: "gpio"})
	if !errors.Is(err, domain.ErrUnknownSensorType) {
		t.Errorf("expected ErrUnknownSensorType, got %v", err)
	}
}

func TestClientTLS_Disabled(t *testing.T) {
	cfg, err := clientTLS(Config{})
	if err != nil || cfg != nil {
		t.Errorf("expected nil config and error, got %v, %v", cfg, err)
	}
}
