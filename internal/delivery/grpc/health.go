// Package grpc exposes the service's gRPC surface: the standard health check
// and server reflection.
package grpc

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// ServiceName is the health-check name of the shop API. The empty name reports
// overall server health.
const ServiceName = "shop.v1.ShopAPI"

type Server struct {
	*grpclib.Server
	health *health.Server
	log    *logrus.Logger
}

func NewServer(logger *logrus.Logger) *Server {
	srv := grpclib.NewServer(grpclib.UnaryInterceptor(loggingInterceptor(logger)))

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	reflection.Register(srv)
	logger.Info("gRPC health and reflection services registered")

	return &Server{Server: srv, health: hs, log: logger}
}

// Shutdown flips every service to NOT_SERVING and drains in-flight calls.
func (s *Server) Shutdown() {
	s.health.Shutdown()
	s.Server.GracefulStop()
	s.log.Info("gRPC server gracefully stopped.")
}

func loggingInterceptor(logger *logrus.Logger) grpclib.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpclib.UnaryServerInfo, handler grpclib.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		entry := logger.WithFields(logrus.Fields{
			"grpc_method": info.FullMethod,
			"grpc_code":   status.Code(err).String(),
			"latency_ms":  time.Since(start).Milliseconds(),
		})
		if err != nil {
			entry.Warnf("gRPC call failed: %v", err)
		} else {
			entry.Debug("gRPC call completed")
		}
		return resp, err
	}
}
