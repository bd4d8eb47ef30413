package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Config holds application configuration
type Config struct {
	Port        string
	GRPCPort    string
	SensorType  string // "mock" | "i2c"
	I2CBus      string // periph bus name, "" for the first bus
	ClimateAddr uint16 // BME280 address
	ADCAddr     uint16 // ADS1115 address
	TLSCert     string // path to this service's certificate
	TLSKey      string // path to this service's private key
	TLSCA       string // path to the CA certificate
	MQTTBroker  string // e.g. tcp://localhost:1883, empty disables MQTT
	MQTTTopic   string
	KafkaBroker []string // empty disables Kafka
	KafkaTopic  string
	DeviceID    string
	LogLevel    zerolog.Level
}

// loadConfig reads configuration from environment variables
func loadConfig() (Config, error) {
	climateAddr, err := parseAddr("BME280_ADDR", 0x76)
	if err != nil {
		return Config{}, err
	}

	adcAddr, err := parseAddr("ADS1115_ADDR", 0x48)
	if err != nil {
		return Config{}, err
	}

	logLevel := zerolog.InfoLevel
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		lvl, err := zerolog.ParseLevel(s)
		if err != nil {
			return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		logLevel = lvl
	}

	var kafkaBrokers []string
	for _, b := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		if b = strings.TrimSpace(b); b != "" {
			kafkaBrokers = append(kafkaBrokers, b)
		}
	}

	deviceID := os.Getenv("DEVICE_ID")
	if deviceID == "" {
		deviceID = uuid.NewString()
	}

	return Config{
		Port:        getenv("PORT", "8080"),
		GRPCPort:    getenv("GRPC_PORT", "50051"),
		SensorType:  getenv("SENSOR_TYPE", "mock"),
		I2CBus:      os.Getenv("I2C_BUS"),
		ClimateAddr: climateAddr,
		ADCAddr:     adcAddr,
		TLSCert:     os.Getenv("TLS_CERT"),
		TLSKey:      os.Getenv("TLS_KEY"),
		TLSCA:       os.Getenv("TLS_CA"),
		MQTTBroker:  os.Getenv("MQTT_BROKER"),
		MQTTTopic:   getenv("MQTT_TOPIC", "sensors/env"),
		KafkaBroker: kafkaBrokers,
		KafkaTopic:  getenv("KAFKA_TOPIC", "env-readings"),
		DeviceID:    deviceID,
		LogLevel:    logLevel,
	}, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseAddr accepts decimal or 0x-prefixed I2C addresses
func parseAddr(key string, fallback uint16) (uint16, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return uint16(v), nil
}
