// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the task manager HTTP API.
//
// The primary abstraction is [ServerAdapter], which hides the REST details
// from the command-line client. Error responses are mapped by mapHTTPError to
// the sentinel values of this package so that callers can use [errors.Is]
// (e.g. [ErrUnauthorized] for 401, [ErrNotFound] for 404).
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-task-manager/models"
)

// TaskFilter carries the optional query parameters of a task listing.
type TaskFilter struct {
	Completed *bool
	// SortBy is a "field:asc|desc" expression, e.g. "createdAt:desc".
	SortBy string
	Limit  uint64
	Skip   uint64
}

// ServerAdapter defines communication with the task manager server.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "" if none is set.
	Token() string

	// Signup creates an account. On success the returned token is stored via
	// SetToken.
	Signup(ctx context.Context, req models.SignupRequest) (models.AuthResponse, error)

	// Login opens a new session. On success the returned token is stored via
	// SetToken.
	Login(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error)

	// Logout revokes the current session and forgets the token.
	Logout(ctx context.Context) error

	// LogoutAll revokes every session of the user and forgets the token.
	LogoutAll(ctx context.Context) error

	Me(ctx context.Context) (models.User, error)

	CreateTask(ctx context.Context, task models.NewTask) (models.Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]models.Task, error)
	UpdateTask(ctx context.Context, taskID uuid.UUID, update models.TaskUpdate) (models.Task, error)
	DeleteTask(ctx context.Context, taskID uuid.UUID) (models.Task, error)

	// Version returns the version reported by the server.
	Version(ctx context.Context) (string, error)
}
