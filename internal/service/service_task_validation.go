package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-task-manager/internal/validators"
	"github.com/MKhiriev/go-task-manager/models"
)

// TaskValidationService normalizes and validates task input before passing
// it on to the wrapped TaskService.
type TaskValidationService struct {
	inner     TaskService
	validator validators.Validator
}

func NewTaskValidationService() TaskServiceWrapper {
	return &TaskValidationService{
		validator: validators.NewTaskValidator(),
	}
}

func (v *TaskValidationService) CreateTask(ctx context.Context, ownerID uuid.UUID, task models.NewTask) (models.Task, error) {
	validators.NormalizeNewTask(&task)
	if err := v.validator.Validate(ctx, task); err != nil {
		return models.Task{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.CreateTask(ctx, ownerID, task)
}

func (v *TaskValidationService) ListTasks(ctx context.Context, query models.TaskListQuery) ([]models.Task, error) {
	if err := v.validator.Validate(ctx, query); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.ListTasks(ctx, query)
}

func (v *TaskValidationService) GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (models.Task, error) {
	return v.inner.GetTask(ctx, ownerID, taskID)
}

func (v *TaskValidationService) UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, update models.TaskUpdate) (models.Task, error) {
	validators.NormalizeTaskUpdate(&update)
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.Task{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.UpdateTask(ctx, ownerID, taskID, update)
}

func (v *TaskValidationService) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) (models.Task, error) {
	return v.inner.DeleteTask(ctx, ownerID, taskID)
}

func (v *TaskValidationService) Wrap(inner TaskService) TaskService {
	v.inner = inner
	return v
}
