package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-task-manager/internal/logger"
)

// ServiceName is the health-checked name of the task manager service.
const ServiceName = "taskmanager.TaskManager"

// Handler is the root gRPC transport handler.
//
// It owns the standard gRPC health service, which load balancers and
// orchestrators use to probe the server, and the interceptors that give
// every call the same logging as the HTTP API.
type Handler struct {
	health *health.Server

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] reporting health through a fresh
// health server.
func NewHandler(logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		health: health.NewServer(),
		logger: logger,
	}
}

// ServerOptions returns the options a server for this handler must be
// created with.
func (h *Handler) ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(h.withTraceID, h.withLogging),
	}
}

// Register attaches the handler's services to server and reports them as
// serving.
func (h *Handler) Register(server *grpc.Server) {
	grpc_health_v1.RegisterHealthServer(server, h.health)
	h.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	h.health.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
}

// Shutdown reports every service as NOT_SERVING so that probes fail while
// in-flight calls drain.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
