package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"

	grpcAdapter "github.com/quentinrf/plant-monitor/services/env-service/internal/adapters/grpc"
	"github.com/quentinrf/plant-monitor/services/env-service/internal/adapters/httpapi"
	"github.com/quentinrf/plant-monitor/services/env-service/internal/adapters/kafka"
	"github.com/quentinrf/plant-monitor/services/env-service/internal/adapters/mock"
	"github.com/quentinrf/plant-monitor/services/env-service/internal/adapters/mqtt"
	"github.com/quentinrf/plant-monitor/services/env-service/internal/adapters/periph"
	"github.com/quentinrf/plant-monitor/services/env-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/env-service/internal/netx"
	"github.com/quentinrf/plant-monitor/services/env-service/internal/ports"
	"github.com/quentinrf/plant-monitor/services/env-service/pkg/tlsconfig"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// Initialize logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	log.Info().Msg("starting env service")

	// Read configuration from environment
	config, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	zerolog.SetGlobalLevel(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize sensors
	sensors, err := openSensors(config)
	if err != nil {
		log.Fatal().Err(err).Str("sensor_type", config.SensorType).Msg("failed to open sensors")
	}
	defer sensors.close()

	reader := ports.NewSnapshotReader(sensors.climate, sensors.sound, sensors.light)

	// Initialize reporter sinks; the console line always comes first
	health := grpcAdapter.NewHealthReporter()
	sinks := []ports.Sink{ports.NewConsoleSink(os.Stdout), health}

	if config.MQTTBroker != "" {
		tlsCfg, err := clientTLS(config)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load MQTT TLS config")
		}
		sink, err := mqtt.Dial(config.MQTTBroker, config.MQTTTopic, config.DeviceID, tlsCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect MQTT sink")
		}
		defer sink.Close()
		sinks = append(sinks, sink)
		log.Info().Str("broker", config.MQTTBroker).Str("topic", config.MQTTTopic).Msg("MQTT telemetry enabled")
	}

	if len(config.KafkaBroker) > 0 {
		sink := kafka.NewSink(config.KafkaBroker, config.KafkaTopic, config.DeviceID)
		defer sink.Close()
		sinks = append(sinks, sink)
		log.Info().Strs("brokers", config.KafkaBroker).Str("topic", config.KafkaTopic).Msg("Kafka telemetry enabled")
	}

	// Configure TLS if certificates are provided
	var serverOpts []grpc.ServerOption
	if config.TLSCert != "" {
		tlsCfg, err := tlsconfig.LoadServerTLS(config.TLSCert, config.TLSKey, config.TLSCA)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load TLS config")
		}
		serverOpts = append(serverOpts, grpc.Creds(credentials.NewTLS(tlsCfg)))
		log.Info().Msg("mTLS enabled")
	} else {
		log.Warn().Msg("TLS_CERT not set, starting gRPC without TLS (dev mode only)")
	}

	grpcServer := grpcAdapter.NewServer(health, serverOpts...)

	// Wait for the network, then start both servers
	grpcListener, err := netx.ListenWithRetry(ctx, "tcp", fmt.Sprintf(":%s", config.GRPCPort), netx.RetryDelay)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to listen for gRPC")
	}
	httpListener, err := netx.ListenWithRetry(ctx, "tcp", fmt.Sprintf(":%s", config.Port), netx.RetryDelay)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to listen for HTTP")
	}

	httpServer := &http.Server{
		Handler:           httpapi.NewRouter(httpapi.NewHandler(reader)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info().Str("port", config.GRPCPort).Msg("gRPC health server listening")
	go func() {
		if err := grpcServer.Serve(grpcListener); err != nil {
			log.Fatal().Err(err).Msg("failed to serve gRPC")
		}
	}()

	log.Info().Str("port", config.Port).Msg("HTTP server listening")
	go func() {
		if err := httpServer.Serve(httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to serve HTTP")
		}
	}()

	// Start periodic reporter
	reporter := ports.NewReporter(reader, sinks...)
	go reporter.Start(ctx)

	// Wait for interrupt signal
	<-ctx.Done()

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP shutdown did not complete")
	}
	health.Shutdown()
	grpcServer.GracefulStop()

	log.Info().Msg("server stopped")
}

// sensorSet bundles the hardware handles for the lifetime of the process
type sensorSet struct {
	climate ports.ClimateSensor
	sound   ports.AnalogChannel
	light   ports.AnalogChannel
	close   func()
}

func openSensors(config Config) (sensorSet, error) {
	switch config.SensorType {
	case "i2c":
		hw, err := periph.Open(config.I2CBus, config.ClimateAddr, config.ADCAddr)
		if err != nil {
			return sensorSet{}, err
		}
		log.Info().
			Str("bus", config.I2CBus).
			Uint16("bme280", config.ClimateAddr).
			Uint16("ads1115", config.ADCAddr).
			Msg("initialized I2C sensors")
		return sensorSet{
			climate: hw.Climate,
			sound:   hw.Sound,
			light:   hw.Light,
			close: func() {
				if err := hw.Close(); err != nil {
					log.Error().Err(err).Msg("failed to release sensors")
				}
			},
		}, nil

	case "mock":
		log.Info().Msg("initialized mock sensors")
		return sensorSet{
			climate: mock.NewFakeClimateSensor(21.0, 1.5, 45.0, 5.0), // indoor room
			sound:   mock.NewFakeAnalog(600, 200),
			light:   mock.NewFakeAnalog(2500, 300),
			close:   func() {},
		}, nil

	default:
		return sensorSet{}, fmt.Errorf("%w %q; set SENSOR_TYPE=mock or i2c", domain.ErrUnknownSensorType, config.SensorType)
	}
}

// clientTLS returns nil when no certificate is configured
func clientTLS(config Config) (*tls.Config, error) {
	if config.TLSCert == "" {
		return nil, nil
	}
	return tlsconfig.LoadClientTLS(config.TLSCert, config.TLSKey, config.TLSCA)
}
