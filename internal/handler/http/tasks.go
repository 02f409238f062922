package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/service"
	"github.com/MKhiriev/go-task-manager/internal/validators"
	"github.com/MKhiriev/go-task-manager/models"
)

// Query parameters of the task listing.
const (
	queryCompleted = "completed"
	querySortBy    = "sortBy"
	queryLimit     = "limit"
	querySkip      = "skip"
)

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var newTask models.NewTask
	if err = decodeJSON(r, &newTask); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.services.TaskService.CreateTask(r.Context(), identity.User.ID, newTask)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, task, http.StatusCreated)
}

// listTasks serves GET /tasks?completed=true&sortBy=createdAt:desc&limit=10&skip=20
func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	query, err := parseTaskListQuery(r.URL.Query())
	if err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("invalid task listing query")
		writeError(w, r, err)
		return
	}
	query.OwnerID = identity.User.ID

	tasks, err := h.services.TaskService.ListTasks(r.Context(), query)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if tasks == nil {
		tasks = []models.Task{}
	}
	writeJSON(w, r, tasks, http.StatusOK)
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	taskID, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.services.TaskService.GetTask(r.Context(), identity.User.ID, taskID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, task, http.StatusOK)
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	taskID, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var update models.TaskUpdate
	if err = decodeUpdate(r, validators.TaskUpdateFields, &update); err != nil {
		if errors.Is(err, validators.ErrInvalidUpdate) {
			logger.FromRequest(r).Debug().Err(err).Msg("task update rejected")
			err = service.ErrInvalidUpdate
		}
		writeError(w, r, err)
		return
	}

	task, err := h.services.TaskService.UpdateTask(r.Context(), identity.User.ID, taskID, update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, task, http.StatusOK)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	taskID, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.services.TaskService.DeleteTask(r.Context(), identity.User.ID, taskID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, task, http.StatusOK)
}

// parseTaskListQuery reads the filter, sort and pagination parameters.
// The owner is left for the caller to fill from the identity.
func parseTaskListQuery(values url.Values) (models.TaskListQuery, error) {
	var query models.TaskListQuery

	if raw := values.Get(queryCompleted); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return models.TaskListQuery{}, fmt.Errorf("%w: %s=%q", ErrInvalidQuery, queryCompleted, raw)
		}
		query.Completed = &completed
	}

	if raw := values.Get(querySortBy); raw != "" {
		column, direction, err := validators.ParseTaskSort(raw)
		if err != nil {
			return models.TaskListQuery{}, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
		}
		query.SortBy = column
		query.SortDirection = direction
	}

	var err error
	if query.Limit, err = parseUintParam(values, queryLimit); err != nil {
		return models.TaskListQuery{}, err
	}
	if query.Skip, err = parseUintParam(values, querySkip); err != nil {
		return models.TaskListQuery{}, err
	}

	return query, nil
}

func parseUintParam(values url.Values, name string) (uint64, error) {
	raw := values.Get(name)
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidQuery, name, raw)
	}
	return n, nil
}
