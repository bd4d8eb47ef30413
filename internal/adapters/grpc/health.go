package grpc

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/quentinrf/plant-monitor/services/env-service/internal/domain"
)

// SensorsService is the health service name tracking sensor validity
const SensorsService = "env.Sensors"

// HealthReporter maps reporter snapshots onto gRPC health status
// This implements the ports.Sink interface
type HealthReporter struct {
	server *health.Server

	mu     sync.Mutex
	status healthpb.HealthCheckResponse_ServingStatus
}

// NewHealthReporter creates a health server that starts out SERVING
func NewHealthReporter() *HealthReporter {
	h := &HealthReporter{
		server: health.NewServer(),
		status: healthpb.HealthCheckResponse_SERVING,
	}
	h.server.SetServingStatus("", h.status)
	h.server.SetServingStatus(SensorsService, h.status)
	return h
}

// Publish sets NOT_SERVING while the climate sensor returns invalid values
func (h *HealthReporter) Publish(_ context.Context, snapshot domain.Snapshot) error {
	status := healthpb.HealthCheckResponse_SERVING
	if !snapshot.Valid() {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	h.mu.Lock()
	changed := status != h.status
	h.status = status
	h.mu.Unlock()

	if changed {
		log.Info().Str("status", status.String()).Msg("sensor health changed")
		h.server.SetServingStatus("", status)
		h.server.SetServingStatus(SensorsService, status)
	}
	return nil
}

// Shutdown flips every service to NOT_SERVING ahead of GracefulStop
func (h *HealthReporter) Shutdown() {
	h.server.Shutdown()
}

// NewServer creates a gRPC server exposing the health service and reflection
func NewServer(h *HealthReporter, opts ...grpc.ServerOption) *grpc.Server {
	srv := grpc.NewServer(opts...)
	healthpb.RegisterHealthServer(srv, h.server)

	// Enable gRPC reflection for grpcurl testing
	reflection.Register(srv)

	return srv
}
