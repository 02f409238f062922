package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/service"
	"github.com/MKhiriev/go-task-manager/internal/store"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON:   http.StatusBadRequest,
	ErrInvalidID:     http.StatusBadRequest,
	ErrInvalidQuery:  http.StatusBadRequest,
	ErrInvalidUpload: http.StatusBadRequest,

	service.ErrValidation:           http.StatusBadRequest,
	service.ErrInvalidCredentials:   http.StatusBadRequest,
	service.ErrInvalidUpdate:        http.StatusBadRequest,
	service.ErrInvalidAvatar:        http.StatusBadRequest,
	service.ErrEmailAlreadyExists:   http.StatusBadRequest,
	service.ErrAuthenticationFailed: http.StatusUnauthorized,
	service.ErrUserNotFound:         http.StatusNotFound,
	service.ErrTaskNotFound:         http.StatusNotFound,
	service.ErrAvatarNotFound:       http.StatusNotFound,

	store.ErrTransientStorage: http.StatusInternalServerError,
}

// unauthorizedMessage is the single body sent for every 401.
const unauthorizedMessage = "please authenticate"

type errorResponse struct {
	Error string `json:"error"`
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError answers with the status mapped from err and a {"error": ...}
// body. Client errors carry the error text; server errors and 401 carry a
// fixed message only.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)

	message := err.Error()
	switch {
	case status == http.StatusUnauthorized:
		message = unauthorizedMessage
	case status >= http.StatusInternalServerError:
		logger.FromRequest(r).Err(err).Str("uri", r.RequestURI).Msg("request failed")
		message = http.StatusText(status)
	}

	writeJSON(w, r, errorResponse{Error: message}, status)
}
