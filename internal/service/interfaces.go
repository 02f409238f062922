package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-task-manager/models"
)

// AuthService issues, resolves and revokes sessions.
type AuthService interface {
	// Signup creates an account and opens its first session.
	Signup(ctx context.Context, req models.SignupRequest) (models.User, models.Token, error)
	// Login verifies credentials and opens a new session. Other sessions of
	// the user stay valid.
	Login(ctx context.Context, credentials models.Credentials) (models.User, models.Token, error)
	// Authenticate resolves a bearer token into an identity. The token must
	// carry a valid signature, name an existing user and still be among that
	// user's active sessions.
	Authenticate(ctx context.Context, tokenString string) (models.Identity, error)
	// Logout revokes the session of identity.Token only.
	Logout(ctx context.Context, identity models.Identity) error
	// LogoutAll revokes every session of the user.
	LogoutAll(ctx context.Context, userID uuid.UUID) error
	// PruneExpiredSessions deletes sessions whose tokens can no longer pass
	// verification. It is a no-op when tokens never expire.
	PruneExpiredSessions(ctx context.Context) (int64, error)
}

// UserService manages the profile of an authenticated user.
type UserService interface {
	GetUser(ctx context.Context, userID uuid.UUID) (models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, update models.UserUpdate) (models.User, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) (models.User, error)
	SetAvatar(ctx context.Context, userID uuid.UUID, filename string, data []byte) error
	DeleteAvatar(ctx context.Context, userID uuid.UUID) error
	GetAvatar(ctx context.Context, userID uuid.UUID) ([]byte, error)
}

// TaskService is the ownership-scoped task API. Every method takes the id of
// the authenticated owner and never touches tasks of anyone else.
type TaskService interface {
	CreateTask(ctx context.Context, ownerID uuid.UUID, task models.NewTask) (models.Task, error)
	ListTasks(ctx context.Context, query models.TaskListQuery) ([]models.Task, error)
	GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (models.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, update models.TaskUpdate) (models.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) (models.Task, error)
}

// TaskServiceWrapper defines middleware composition for TaskService.
// Implementations wrap an existing TaskService to add behavior such as
// validation.
type TaskServiceWrapper interface {
	Wrap(TaskService) TaskService
}

// AppInfoService exposes build information.
type AppInfoService interface {
	GetAppInfo(ctx context.Context) models.AppInfo
}
