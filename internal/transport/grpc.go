// Package transport exposes the herald's admin gRPC and HTTP handlers.
package transport

import (
	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HeraldServiceName is the service name reported by the health endpoint.
const HeraldServiceName = "ecash.herald"

// NewGRPCServer returns a server with recovery, tags, metrics and logging interceptors.
func NewGRPCServer(logger *zap.Logger) *grpc.Server {
	chain := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	server := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(chain...)),
	)
	grpcPrometheus.EnableHandlingTimeHistogram()
	return server
}

// HealthHandler publishes the follower's state through the gRPC health protocol.
type HealthHandler struct {
	server  *health.Server
	service string
}

// NewHealthHandler starts in NOT_SERVING until the first successful tip poll.
func NewHealthHandler() *HealthHandler {
	h := &HealthHandler{
		server:  health.NewServer(),
		service: HeraldServiceName,
	}
	h.SetServing(false)
	return h
}

// Register attaches the health service to server and registers its metrics.
func (h *HealthHandler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h.server)
	grpcPrometheus.Register(server)
}

// SetServing updates both the herald service and the overall server status.
func (h *HealthHandler) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	h.server.SetServingStatus(h.service, status)
	h.server.SetServingStatus("", status)
}

// Shutdown reports NOT_SERVING for good.
func (h *HealthHandler) Shutdown() {
	h.server.Shutdown()
}
