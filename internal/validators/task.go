package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-task-manager/models"
)

// Field name constants used to scope task validation.
const (
	FieldDescription = "description"
	FieldCompleted   = "completed"
	FieldOwnerID     = "owner"
)

// taskSortColumns maps the public sort keys to table columns.
var taskSortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"description": "description",
	"completed":   "completed",
}

// TaskValidator validates task payloads and listing queries.
type TaskValidator struct{}

// NewTaskValidator returns a Validator for task payloads.
func NewTaskValidator() Validator {
	return &TaskValidator{}
}

// Validate dispatches on the dynamic type of obj.
//
// Supported types:
//   - models.NewTask / *models.NewTask
//   - models.TaskUpdate / *models.TaskUpdate
//   - models.TaskListQuery / *models.TaskListQuery
func (v *TaskValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.NewTask:
		return v.validateNewTask(value, fields...)
	case *models.NewTask:
		return v.validateNewTask(*value, fields...)

	case models.TaskUpdate:
		return v.validateUpdate(value)
	case *models.TaskUpdate:
		return v.validateUpdate(*value)

	case models.TaskListQuery:
		return v.validateListQuery(value)
	case *models.TaskListQuery:
		return v.validateListQuery(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *TaskValidator) validateNewTask(task models.NewTask, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDescription}
	}

	for _, f := range fields {
		switch f {
		case FieldDescription:
			if task.Description == "" {
				return ErrEmptyDescription
			}
		case FieldCompleted:
			// any bool is valid
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *TaskValidator) validateUpdate(u models.TaskUpdate) error {
	if u.Description != nil && *u.Description == "" {
		return ErrEmptyDescription
	}
	return nil
}

func (v *TaskValidator) validateListQuery(q models.TaskListQuery) error {
	if q.OwnerID == uuid.Nil {
		return ErrInvalidOwnerID
	}

	if q.SortBy != "" {
		known := false
		for _, column := range taskSortColumns {
			if column == q.SortBy {
				known = true
				break
			}
		}
		if !known {
			return ErrInvalidSortField
		}
	}

	switch q.SortDirection {
	case "", models.SortAsc, models.SortDesc:
	default:
		return ErrInvalidSort
	}

	return nil
}

// ParseTaskSort parses a "field:direction" sort expression into a table
// column and direction. The direction defaults to descending when omitted.
func ParseTaskSort(sortBy string) (string, models.SortDirection, error) {
	field, dir, hasDir := strings.Cut(sortBy, ":")

	column, ok := taskSortColumns[field]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortField, field)
	}

	if !hasDir {
		return column, models.SortDesc, nil
	}

	switch models.SortDirection(strings.ToLower(dir)) {
	case models.SortAsc:
		return column, models.SortAsc, nil
	case models.SortDesc:
		return column, models.SortDesc, nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSort, dir)
	}
}
