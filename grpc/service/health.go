// Package service hosts the bot's gRPC endpoints.
package service

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/zeromicro/go-zero/core/logx"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported for the bot.
const ServiceName = "handin.Bot"

// HealthServer exposes the standard gRPC health check.
type HealthServer struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
}

// NewHealthServer listens on addr. Both the overall status and ServiceName
// start as NOT_SERVING until SetServing is called.
func NewHealthServer(addr string) (*HealthServer, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)

	s := &HealthServer{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
	}
	s.set(grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	return s, nil
}

// Addr returns the listening address.
func (s *HealthServer) Addr() string {
	return s.listener.Addr().String()
}

// SetServing marks the bot as connected.
func (s *HealthServer) SetServing() {
	s.set(grpc_health_v1.HealthCheckResponse_SERVING)
}

// SetNotServing marks the bot as disconnected.
func (s *HealthServer) SetNotServing() {
	s.set(grpc_health_v1.HealthCheckResponse_NOT_SERVING)
}

func (s *HealthServer) set(status grpc_health_v1.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Serve blocks until ctx is cancelled or the server fails.
func (s *HealthServer) Serve(ctx context.Context) error {
	logx.Infow("health server listening", logx.Field("addr", s.Addr()))
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
		err := <-serveErr
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}
}
