// Package store contains the PostgreSQL persistence layer of the task
// manager: the connection wrapper, driver error classification and the
// user, session and task repositories.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-task-manager/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts and their avatars.
type UserRepository interface {
	// CreateUser inserts user and returns it as stored.
	// A duplicate email yields [ErrEmailAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	// UpdateUser applies the non-nil fields of update.
	UpdateUser(ctx context.Context, userID uuid.UUID, update models.UserUpdate) (models.User, error)
	// DeleteUser removes the user together with its sessions and tasks in
	// one transaction and returns the deleted user.
	DeleteUser(ctx context.Context, userID uuid.UUID) (models.User, error)
	// SetAvatar replaces the avatar; a nil avatar clears it.
	SetAvatar(ctx context.Context, userID uuid.UUID, avatar []byte) error
	GetAvatar(ctx context.Context, userID uuid.UUID) ([]byte, error)
}

// SessionRepository tracks the issued tokens of each user. Tokens are
// identified by a digest; every method is a single SQL statement.
type SessionRepository interface {
	AddToken(ctx context.Context, userID uuid.UUID, tokenHash string) error
	RemoveToken(ctx context.Context, userID uuid.UUID, tokenHash string) error
	ClearTokens(ctx context.Context, userID uuid.UUID) error
	ContainsToken(ctx context.Context, userID uuid.UUID, tokenHash string) (bool, error)
	// PruneTokens deletes the sessions of all users issued before
	// issuedBefore and returns how many were removed.
	PruneTokens(ctx context.Context, issuedBefore time.Time) (int64, error)
}

// TaskRepository persists tasks. Every method is scoped to an owner, so a
// task of another user is indistinguishable from a missing one.
type TaskRepository interface {
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
	ListTasks(ctx context.Context, query models.TaskListQuery) ([]models.Task, error)
	GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (models.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, update models.TaskUpdate) (models.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) (models.Task, error)
}
