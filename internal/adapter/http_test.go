// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/models"
)

const testToken = "header.payload.signature"

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()

	a, err := NewHTTPServerAdapter(&config.ClientConfig{
		HTTPAddress:    serverURL,
		RequestTimeout: 5 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)

	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestSignup_Success(t *testing.T) {
	user := models.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users", r.URL.Path)

		var req models.SignupRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice@example.com", req.Email)

		writeJSON(t, w, http.StatusCreated, models.AuthResponse{User: user, Token: testToken})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Signup(context.Background(), models.SignupRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret1",
	})

	require.NoError(t, err)
	assert.Equal(t, user.ID, got.User.ID)
	assert.Equal(t, testToken, a.Token())
}

func TestSignup_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, map[string]string{"error": "email already exists"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Signup(context.Background(), models.SignupRequest{})

	require.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "email already exists")
	assert.Empty(t, a.Token())
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantErr   error
		wantToken string
	}{
		{name: "success", status: http.StatusOK, wantToken: testToken},
		{name: "invalid credentials", status: http.StatusBadRequest, wantErr: ErrBadRequest},
		{name: "server failure", status: http.StatusInternalServerError, wantErr: ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/users/login", r.URL.Path)
				if tt.status != http.StatusOK {
					writeJSON(t, w, tt.status, map[string]string{"error": http.StatusText(tt.status)})
					return
				}
				writeJSON(t, w, http.StatusOK, models.AuthResponse{Token: testToken})
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL)
			_, err := a.Login(context.Background(), models.Credentials{Email: "a@b.c", Password: "secret1"})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantToken, a.Token())
		})
	}
}

func TestLogout_ClearsToken(t *testing.T) {
	for _, path := range []string{"/users/logout", "/users/logoutAll"} {
		t.Run(path, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, path, r.URL.Path)
				assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
				w.WriteHeader(http.StatusOK)
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL)
			a.SetToken(testToken)

			var err error
			if path == "/users/logout" {
				err = a.Logout(context.Background())
			} else {
				err = a.LogoutAll(context.Background())
			}

			require.NoError(t, err)
			assert.Empty(t, a.Token())
		})
	}
}

func TestAuthedRequest_NoToken(t *testing.T) {
	a := newTestAdapter(t, "http://localhost:1")

	_, err := a.Me(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	err = a.Logout(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestMe_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "please authenticate"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(testToken)

	_, err := a.Me(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "please authenticate")
}

func TestListTasks_Query(t *testing.T) {
	completed := false
	tasks := []models.Task{{ID: uuid.New(), Description: "write tests"}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/tasks", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "false", q.Get("completed"))
		assert.Equal(t, "createdAt:desc", q.Get("sortBy"))
		assert.Equal(t, "10", q.Get("limit"))
		assert.False(t, q.Has("skip"))

		writeJSON(t, w, http.StatusOK, tasks)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(testToken)

	got, err := a.ListTasks(context.Background(), TaskFilter{
		Completed: &completed,
		SortBy:    "createdAt:desc",
		Limit:     10,
	})

	require.NoError(t, err)
	assert.Equal(t, tasks[0].ID, got[0].ID)
}

func TestCreateTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var body models.NewTask
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		writeJSON(t, w, http.StatusCreated, models.Task{ID: uuid.New(), Description: body.Description})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(testToken)

	got, err := a.CreateTask(context.Background(), models.NewTask{Description: "buy milk"})
	require.NoError(t, err)
	assert.Equal(t, "buy milk", got.Description)
}

func TestUpdateTask(t *testing.T) {
	id := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/tasks/"+id.String(), r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"completed": true}, body)

		writeJSON(t, w, http.StatusOK, models.Task{ID: id, Completed: true})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(testToken)

	done := true
	got, err := a.UpdateTask(context.Background(), id, models.TaskUpdate{Completed: &done})
	require.NoError(t, err)
	assert.True(t, got.Completed)
}

func TestDeleteTask_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		writeJSON(t, w, http.StatusNotFound, map[string]string{"error": "task not found"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(testToken)

	_, err := a.DeleteTask(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, models.AppInfo{Version: "1.2.3"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.2.3", got)
}

func TestMapHTTPError_UnknownStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Version(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), http.StatusText(http.StatusBadGateway))
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid http", "http://localhost:8080", "http://localhost:8080", false},
		{"no scheme", "localhost:8080", "http://localhost:8080", false},
		{"trailing slash", "http://localhost:8080/", "http://localhost:8080", false},
		{"surrounding spaces", "  localhost:8080 ", "http://localhost:8080", false},
		{"empty", "", "", true},
		{"no host", "http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
