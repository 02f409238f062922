package models

import (
	"time"

	"github.com/google/uuid"
)

// Task is a single to-do item owned by exactly one user.
type Task struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`

	// OwnerID references the user who created the task. Immutable.
	OwnerID uuid.UUID `json:"owner"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Task model.
func (t Task) TableName() string {
	return "tasks"
}

// NewTask is the payload accepted by the task creation endpoint.
type NewTask struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// TaskUpdate describes a partial update of a task.
// Only non-nil fields are applied.
type TaskUpdate struct {
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// SortDirection is the ordering applied to a task listing.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// TaskListQuery describes a filtered, sorted and paginated listing of a
// single owner's tasks.
type TaskListQuery struct {
	// OwnerID is always applied; a listing never crosses owners.
	OwnerID uuid.UUID

	// Completed filters by the completed flag when non-nil.
	Completed *bool

	// SortBy is the database column to order by. Empty means issuance order.
	SortBy        string
	SortDirection SortDirection

	// Limit of 0 means no limit.
	Limit uint64
	Skip  uint64
}
