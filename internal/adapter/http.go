package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/utils"
	"github.com/MKhiriev/go-task-manager/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter] for cfg.HTTPAddress. A missing scheme defaults to http.
//
// Returns an error if the address is empty or cannot be parsed as a URL.
func NewHTTPServerAdapter(cfg *config.ClientConfig, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	return h.token
}

// Signup implements [ServerAdapter] via POST /users.
func (h *httpServerAdapter) Signup(ctx context.Context, req models.SignupRequest) (models.AuthResponse, error) {
	var auth models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&auth).
		Post("/users")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("signup request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	h.SetToken(auth.Token)
	return auth, nil
}

// Login implements [ServerAdapter] via POST /users/login.
func (h *httpServerAdapter) Login(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error) {
	var auth models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(credentials).
		SetResult(&auth).
		Post("/users/login")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	h.SetToken(auth.Token)
	return auth, nil
}

func (h *httpServerAdapter) Logout(ctx context.Context) error {
	return h.logout(ctx, "/users/logout")
}

func (h *httpServerAdapter) LogoutAll(ctx context.Context) error {
	return h.logout(ctx, "/users/logoutAll")
}

func (h *httpServerAdapter) logout(ctx context.Context, path string) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Post(path)
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetToken("")
	return nil
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.User, error) {
	var user models.User
	if err := h.do(ctx, resty.MethodGet, "/users/me", nil, nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (h *httpServerAdapter) CreateTask(ctx context.Context, task models.NewTask) (models.Task, error) {
	var created models.Task
	if err := h.do(ctx, resty.MethodPost, "/tasks", nil, task, &created); err != nil {
		return models.Task{}, err
	}
	return created, nil
}

// ListTasks implements [ServerAdapter] via GET /tasks. Zero fields of filter
// are not sent.
func (h *httpServerAdapter) ListTasks(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	query := url.Values{}
	if filter.Completed != nil {
		query.Set("completed", strconv.FormatBool(*filter.Completed))
	}
	if filter.SortBy != "" {
		query.Set("sortBy", filter.SortBy)
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.FormatUint(filter.Limit, 10))
	}
	if filter.Skip > 0 {
		query.Set("skip", strconv.FormatUint(filter.Skip, 10))
	}

	var tasks []models.Task
	if err := h.do(ctx, resty.MethodGet, "/tasks", query, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (h *httpServerAdapter) UpdateTask(ctx context.Context, taskID uuid.UUID, update models.TaskUpdate) (models.Task, error) {
	var task models.Task
	if err := h.do(ctx, resty.MethodPatch, "/tasks/"+taskID.String(), nil, update, &task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (h *httpServerAdapter) DeleteTask(ctx context.Context, taskID uuid.UUID) (models.Task, error) {
	var task models.Task
	if err := h.do(ctx, resty.MethodDelete, "/tasks/"+taskID.String(), nil, nil, &task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	var info models.AppInfo

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&info).
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return info.Version, nil
}

// do sends an authenticated JSON request and decodes a 2xx body into result.
func (h *httpServerAdapter) do(ctx context.Context, method, path string, query url.Values, body, result any) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	if query != nil {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.SetResult(result).Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s request: %w", method, path, err)
	}

	h.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode()).
		Dur("duration", resp.Time()).
		Msg("server responded")

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNotLoggedIn
	}

	return h.client.R().
		SetContext(ctx).
		SetAuthToken(token), nil
}
