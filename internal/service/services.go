package service

import (
	"fmt"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/store"
)

// Services groups the business services handed to the transport layer.
type Services struct {
	AuthService    AuthService
	UserService    UserService
	TaskService    TaskService
	AppInfoService AppInfoService
}

// NewServices wires all services on top of storages.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	authService, err := NewAuthService(storages.UserRepository, storages.SessionRepository, cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating auth service: %w", err)
	}

	taskService := NewTaskValidationService().Wrap(NewTaskService(storages.TaskRepository, logger))

	return &Services{
		AuthService:    authService,
		UserService:    NewUserService(storages.UserRepository, cfg.App, cfg.Storage.Avatar, logger),
		TaskService:    taskService,
		AppInfoService: appInfoService,
	}, nil
}
