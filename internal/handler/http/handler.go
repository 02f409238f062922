package http

import (
	"time"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/service"
)

// multipartOverhead is the allowance for multipart boundaries and part
// headers on top of the avatar size limit.
const multipartOverhead = 64 << 10

type Handler struct {
	services *service.Services

	requestTimeout time.Duration
	avatarMaxBytes int64

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		requestTimeout: cfg.Server.RequestTimeout,
		avatarMaxBytes: cfg.Storage.Avatar.MaxBytes,
		logger:         logger,
	}
}
