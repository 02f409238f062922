package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/service"
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/models"
)

// ─────────────────────────────────────────────
// Mock: service.AuthService
// ─────────────────────────────────────────────

type mockAuthService struct {
	signupFn       func(ctx context.Context, req models.SignupRequest) (models.User, models.Token, error)
	loginFn        func(ctx context.Context, c models.Credentials) (models.User, models.Token, error)
	authenticateFn func(ctx context.Context, token string) (models.Identity, error)
	logoutFn       func(ctx context.Context, identity models.Identity) error
	logoutAllFn    func(ctx context.Context, userID uuid.UUID) error
}

func (m *mockAuthService) Signup(ctx context.Context, req models.SignupRequest) (models.User, models.Token, error) {
	if m.signupFn != nil {
		return m.signupFn(ctx, req)
	}
	return models.User{}, models.Token{}, nil
}

func (m *mockAuthService) Login(ctx context.Context, c models.Credentials) (models.User, models.Token, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, c)
	}
	return models.User{}, models.Token{}, nil
}

func (m *mockAuthService) Authenticate(ctx context.Context, token string) (models.Identity, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, token)
	}
	return models.Identity{}, service.ErrAuthenticationFailed
}

func (m *mockAuthService) Logout(ctx context.Context, identity models.Identity) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, identity)
	}
	return nil
}

func (m *mockAuthService) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	if m.logoutAllFn != nil {
		return m.logoutAllFn(ctx, userID)
	}
	return nil
}

func (m *mockAuthService) PruneExpiredSessions(context.Context) (int64, error) {
	return 0, nil
}

// ─────────────────────────────────────────────
// Mock: service.UserService
// ─────────────────────────────────────────────

type mockUserService struct {
	getUserFn       func(ctx context.Context, userID uuid.UUID) (models.User, error)
	updateProfileFn func(ctx context.Context, userID uuid.UUID, u models.UserUpdate) (models.User, error)
	deleteAccountFn func(ctx context.Context, userID uuid.UUID) (models.User, error)
	setAvatarFn     func(ctx context.Context, userID uuid.UUID, filename string, data []byte) error
	deleteAvatarFn  func(ctx context.Context, userID uuid.UUID) error
	getAvatarFn     func(ctx context.Context, userID uuid.UUID) ([]byte, error)
}

func (m *mockUserService) GetUser(ctx context.Context, userID uuid.UUID) (models.User, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, userID)
	}
	return models.User{}, nil
}

func (m *mockUserService) UpdateProfile(ctx context.Context, userID uuid.UUID, u models.UserUpdate) (models.User, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, userID, u)
	}
	return models.User{}, nil
}

func (m *mockUserService) DeleteAccount(ctx context.Context, userID uuid.UUID) (models.User, error) {
	if m.deleteAccountFn != nil {
		return m.deleteAccountFn(ctx, userID)
	}
	return models.User{}, nil
}

func (m *mockUserService) SetAvatar(ctx context.Context, userID uuid.UUID, filename string, data []byte) error {
	if m.setAvatarFn != nil {
		return m.setAvatarFn(ctx, userID, filename, data)
	}
	return nil
}

func (m *mockUserService) DeleteAvatar(ctx context.Context, userID uuid.UUID) error {
	if m.deleteAvatarFn != nil {
		return m.deleteAvatarFn(ctx, userID)
	}
	return nil
}

func (m *mockUserService) GetAvatar(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	if m.getAvatarFn != nil {
		return m.getAvatarFn(ctx, userID)
	}
	return nil, service.ErrAvatarNotFound
}

// ─────────────────────────────────────────────
// Mock: service.TaskService
// ─────────────────────────────────────────────

type mockTaskService struct {
	createFn func(ctx context.Context, ownerID uuid.UUID, t models.NewTask) (models.Task, error)
	listFn   func(ctx context.Context, q models.TaskListQuery) ([]models.Task, error)
	getFn    func(ctx context.Context, ownerID, taskID uuid.UUID) (models.Task, error)
	updateFn func(ctx context.Context, ownerID, taskID uuid.UUID, u models.TaskUpdate) (models.Task, error)
	deleteFn func(ctx context.Context, ownerID, taskID uuid.UUID) (models.Task, error)
}

func (m *mockTaskService) CreateTask(ctx context.Context, ownerID uuid.UUID, t models.NewTask) (models.Task, error) {
	if m.createFn != nil {
		return m.createFn(ctx, ownerID, t)
	}
	return models.Task{}, nil
}

func (m *mockTaskService) ListTasks(ctx context.Context, q models.TaskListQuery) ([]models.Task, error) {
	if m.listFn != nil {
		return m.listFn(ctx, q)
	}
	return nil, nil
}

func (m *mockTaskService) GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (models.Task, error) {
	if m.getFn != nil {
		return m.getFn(ctx, ownerID, taskID)
	}
	return models.Task{}, service.ErrTaskNotFound
}

func (m *mockTaskService) UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, u models.TaskUpdate) (models.Task, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, ownerID, taskID, u)
	}
	return models.Task{}, service.ErrTaskNotFound
}

func (m *mockTaskService) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) (models.Task, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, ownerID, taskID)
	}
	return models.Task{}, service.ErrTaskNotFound
}

// ─────────────────────────────────────────────
// Mock: service.AppInfoService
// ─────────────────────────────────────────────

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppInfo(_ context.Context) models.AppInfo {
	return models.AppInfo{Version: m.version}
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// testIdentity is what the auth mock resolves testToken into.
var (
	testToken    = "valid-token"
	testIdentity = models.Identity{
		User:  models.User{ID: uuid.MustParse("7d0c8d8c-54b9-4c44-9a2f-3c1c2f1f0a11"), Name: "Ada", Email: "ada@example.com"},
		Token: testToken,
	}
)

// acceptTestToken authenticates testToken only.
func acceptTestToken(_ context.Context, token string) (models.Identity, error) {
	if token != testToken {
		return models.Identity{}, service.ErrAuthenticationFailed
	}
	return testIdentity, nil
}

type testServices struct {
	auth  *mockAuthService
	users *mockUserService
	tasks *mockTaskService
}

func newTestServices() testServices {
	return testServices{
		auth:  &mockAuthService{authenticateFn: acceptTestToken},
		users: &mockUserService{},
		tasks: &mockTaskService{},
	}
}

// handler builds a Handler on top of the mocks.
func (s testServices) handler() *Handler {
	return &Handler{
		services: &service.Services{
			AuthService:    s.auth,
			UserService:    s.users,
			TaskService:    s.tasks,
			AppInfoService: &mockAppInfoService{version: "test-version"},
		},
		avatarMaxBytes: 1 << 20,
		logger:         logger.Nop(),
	}
}

// router builds the full route tree on top of the mocks.
func (s testServices) router() http.Handler {
	return s.handler().Init()
}

// withIdentity binds testIdentity the way the auth middleware does.
func withIdentity(r *http.Request) *http.Request {
	return r.WithContext(utils.WithIdentity(r.Context(), testIdentity))
}
