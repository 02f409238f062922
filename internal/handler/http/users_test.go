package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-task-manager/internal/service"
	"github.com/MKhiriev/go-task-manager/internal/store"
	"github.com/MKhiriev/go-task-manager/internal/validators"
	"github.com/MKhiriev/go-task-manager/models"
)

func doRequest(h http.Handler, method, path, body string, authorized bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func errorBody(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Error
}

func TestSignup(t *testing.T) {
	user := models.User{ID: uuid.New(), Name: "Ada", Email: "a@x.com", PasswordHash: "$2a$hash"}
	token := models.Token{SignedString: "T1", UserID: user.ID}

	tests := []struct {
		name       string
		body       string
		signupErr  error
		wantStatus int
		wantError  string
	}{
		{name: "created", body: `{"name":"Ada","email":"a@x.com","password":"secret1"}`, wantStatus: http.StatusCreated},
		{name: "malformed json", body: `{"name":`, wantStatus: http.StatusBadRequest},
		{
			name:       "validation error",
			body:       `{"name":"Ada","email":"a@x.com","password":"123"}`,
			signupErr:  fmt.Errorf("%w: %w", service.ErrValidation, validators.ErrPasswordTooShort),
			wantStatus: http.StatusBadRequest,
			wantError:  "validation failed: password must be at least 6 characters long",
		},
		{name: "email taken", body: `{"name":"Ada","email":"a@x.com","password":"secret1"}`, signupErr: service.ErrEmailAlreadyExists, wantStatus: http.StatusBadRequest},
		{name: "storage down", body: `{"name":"Ada","email":"a@x.com","password":"secret1"}`, signupErr: store.ErrTransientStorage, wantStatus: http.StatusInternalServerError, wantError: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcs := newTestServices()
			svcs.auth.signupFn = func(_ context.Context, req models.SignupRequest) (models.User, models.Token, error) {
				assert.Equal(t, "a@x.com", req.Email)
				if tt.signupErr != nil {
					return models.User{}, models.Token{}, tt.signupErr
				}
				return user, token, nil
			}

			rr := doRequest(svcs.router(), http.MethodPost, "/users", tt.body, false)
			require.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, "T1", resp["token"])
				u := resp["user"].(map[string]any)
				assert.Equal(t, user.ID.String(), u["id"])
				assert.NotContains(t, u, "passwordHash")
				assert.NotContains(t, rr.Body.String(), "$2a$hash")
				return
			}
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, errorBody(t, rr))
			}
		})
	}
}

func TestLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svcs := newTestServices()
		svcs.auth.loginFn = func(_ context.Context, c models.Credentials) (models.User, models.Token, error) {
			assert.Equal(t, models.Credentials{Email: "a@x.com", Password: "secret1"}, c)
			return models.User{ID: uuid.New()}, models.Token{SignedString: "T2"}, nil
		}

		rr := doRequest(svcs.router(), http.MethodPost, "/users/login", `{"email":"a@x.com","password":"secret1"}`, false)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"token":"T2"`)
	})

	t.Run("invalid credentials are a generic 400", func(t *testing.T) {
		svcs := newTestServices()
		svcs.auth.loginFn = func(context.Context, models.Credentials) (models.User, models.Token, error) {
			return models.User{}, models.Token{}, service.ErrInvalidCredentials
		}

		rr := doRequest(svcs.router(), http.MethodPost, "/users/login", `{"email":"a@x.com","password":"wrong"}`, false)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "invalid credentials", errorBody(t, rr))
	})
}

func TestLogout(t *testing.T) {
	t.Run("logout revokes the presented session", func(t *testing.T) {
		svcs := newTestServices()
		called := false
		svcs.auth.logoutFn = func(_ context.Context, identity models.Identity) error {
			called = true
			assert.Equal(t, testIdentity, identity)
			return nil
		}

		rr := doRequest(svcs.router(), http.MethodPost, "/users/logout", "", true)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, called)
	})

	t.Run("logout all", func(t *testing.T) {
		svcs := newTestServices()
		svcs.auth.logoutAllFn = func(_ context.Context, userID uuid.UUID) error {
			assert.Equal(t, testIdentity.User.ID, userID)
			return nil
		}

		rr := doRequest(svcs.router(), http.MethodPost, "/users/logoutAll", "", true)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		svcs := newTestServices()

		for _, path := range []string{"/users/logout", "/users/logoutAll"} {
			rr := doRequest(svcs.router(), http.MethodPost, path, "", false)
			assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		svcs := newTestServices()
		svcs.auth.logoutFn = func(context.Context, models.Identity) error { return store.ErrTransientStorage }

		rr := doRequest(svcs.router(), http.MethodPost, "/users/logout", "", true)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestMe(t *testing.T) {
	svcs := newTestServices()

	rr := doRequest(svcs.router(), http.MethodGet, "/users/me", "", true)
	require.Equal(t, http.StatusOK, rr.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	assert.Equal(t, testIdentity.User.ID, user.ID)
	assert.Equal(t, "ada@example.com", user.Email)
}

func TestUpdateMe(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		updateErr  error
		wantCalled bool
		wantStatus int
		wantError  string
	}{
		{name: "allowed fields", body: `{"name":"Grace","age":36}`, wantCalled: true, wantStatus: http.StatusOK},
		{name: "empty body", body: `{}`, wantCalled: true, wantStatus: http.StatusOK},
		{name: "unknown field rejects all", body: `{"name":"Grace","tokens":[]}`, wantStatus: http.StatusBadRequest, wantError: "invalid update"},
		{name: "immutable id", body: `{"id":"x"}`, wantStatus: http.StatusBadRequest, wantError: "invalid update"},
		{name: "malformed json", body: `[1,2]`, wantStatus: http.StatusBadRequest},
		{name: "wrong type", body: `{"age":"old"}`, wantStatus: http.StatusBadRequest},
		{
			name:       "validation",
			body:       `{"password":"password123"}`,
			updateErr:  fmt.Errorf("%w: %w", service.ErrValidation, validators.ErrPasswordContainsPassword),
			wantCalled: true,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcs := newTestServices()
			called := false
			svcs.users.updateProfileFn = func(_ context.Context, userID uuid.UUID, u models.UserUpdate) (models.User, error) {
				called = true
				assert.Equal(t, testIdentity.User.ID, userID)
				if tt.updateErr != nil {
					return models.User{}, tt.updateErr
				}
				user := models.User{ID: userID, Name: "Ada"}
				if u.Name != nil {
					user.Name = *u.Name
				}
				return user, nil
			}

			rr := doRequest(svcs.router(), http.MethodPatch, "/users/me", tt.body, true)
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCalled, called)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, errorBody(t, rr))
			}
		})
	}
}

func TestDeleteMe(t *testing.T) {
	svcs := newTestServices()
	svcs.users.deleteAccountFn = func(_ context.Context, userID uuid.UUID) (models.User, error) {
		return models.User{ID: userID, Name: "Ada"}, nil
	}

	rr := doRequest(svcs.router(), http.MethodDelete, "/users/me", "", true)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), testIdentity.User.ID.String())
}
