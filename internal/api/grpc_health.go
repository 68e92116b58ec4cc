package api

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// CatalogServiceName is the gRPC health service name that tracks whether
// the catalog source can be loaded.
const CatalogServiceName = "storefront.Catalog"

// Pinger is satisfied by *catalog.Service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthReporter publishes catalog availability over the gRPC Health
// Checking Protocol, for both the overall server ("") and CatalogServiceName.
type HealthReporter struct {
	server  *health.Server
	pinger  Pinger
	timeout time.Duration
	log     *slog.Logger
}

// NewHealthReporter creates a reporter. Both services start as NOT_SERVING
// until the first Check.
func NewHealthReporter(p Pinger, timeout time.Duration, log *slog.Logger) *HealthReporter {
	if log == nil {
		log = slog.Default()
	}
	s := health.NewServer()
	s.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	s.SetServingStatus(CatalogServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return &HealthReporter{
		server:  s,
		pinger:  p,
		timeout: timeout,
		log:     log,
	}
}

// Register adds the health service to a gRPC server.
func (hr *HealthReporter) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, hr.server)
}

// Server exposes the underlying health server.
func (hr *HealthReporter) Server() *health.Server {
	return hr.server
}

// Check pings the catalog once and publishes the result.
func (hr *HealthReporter) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	if hr.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, hr.timeout)
		defer cancel()
	}

	status := healthpb.HealthCheckResponse_SERVING
	if err := hr.pinger.Ping(ctx); err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
		hr.log.Warn("catalog health check failed", "error", err)
	}

	hr.server.SetServingStatus("", status)
	hr.server.SetServingStatus(CatalogServiceName, status)
	return status
}

// Run checks immediately and then every interval until ctx is done, after
// which every service reports NOT_SERVING.
func (hr *HealthReporter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	hr.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			hr.server.Shutdown()
			hr.log.Info("catalog health checker stopped")
			return
		case <-ticker.C:
			hr.Check(ctx)
		}
	}
}
