package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/store"
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/models"
)

// taskService is the core TaskService. It expects input that already passed
// TaskValidationService and only forwards to the repository, which applies
// the owner constraint in every statement.
type taskService struct {
	taskRepository store.TaskRepository
	logger         *logger.Logger
}

func NewTaskService(taskRepository store.TaskRepository, logger *logger.Logger) TaskService {
	return &taskService{
		taskRepository: taskRepository,
		logger:         logger,
	}
}

func (t *taskService) CreateTask(ctx context.Context, ownerID uuid.UUID, newTask models.NewTask) (models.Task, error) {
	task, err := t.taskRepository.CreateTask(ctx, models.Task{
		ID:          utils.NewID(),
		Description: newTask.Description,
		Completed:   newTask.Completed,
		OwnerID:     ownerID,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("owner_id", ownerID.String()).Msg("error creating task")
		return models.Task{}, t.mapError(err)
	}

	return task, nil
}

func (t *taskService) ListTasks(ctx context.Context, query models.TaskListQuery) ([]models.Task, error) {
	tasks, err := t.taskRepository.ListTasks(ctx, query)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("owner_id", query.OwnerID.String()).Msg("error listing tasks")
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}

	return tasks, nil
}

func (t *taskService) GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (models.Task, error) {
	task, err := t.taskRepository.GetTask(ctx, ownerID, taskID)
	if err != nil {
		return models.Task{}, t.mapError(err)
	}

	return task, nil
}

func (t *taskService) UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, update models.TaskUpdate) (models.Task, error) {
	task, err := t.taskRepository.UpdateTask(ctx, ownerID, taskID, update)
	if err != nil {
		return models.Task{}, t.mapError(err)
	}

	return task, nil
}

func (t *taskService) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) (models.Task, error) {
	task, err := t.taskRepository.DeleteTask(ctx, ownerID, taskID)
	if err != nil {
		return models.Task{}, t.mapError(err)
	}

	return task, nil
}

// mapError hides whether a task is missing or belongs to someone else.
func (t *taskService) mapError(err error) error {
	switch {
	case errors.Is(err, store.ErrTaskNotFound):
		return ErrTaskNotFound
	case errors.Is(err, store.ErrUserNotFound):
		return ErrUserNotFound
	default:
		return err
	}
}
