package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-task-manager/internal/logger"
)

// avatarFormField is the multipart field carrying the avatar file.
const avatarFormField = "avatar"

func (h *Handler) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	identity, err := identityFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.avatarMaxBytes+multipartOverhead)

	file, header, err := r.FormFile(avatarFormField)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			err = fmt.Errorf("%w: file too large", ErrInvalidUpload)
		} else {
			err = fmt.Errorf("%w: %w", ErrInvalidUpload, err)
		}
		log.Debug().Err(err).Msg("avatar upload rejected")
		writeError(w, r, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidUpload, err))
		return
	}

	if err = h.services.UserService.SetAvatar(r.Context(), identity.User.ID, header.Filename, data); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) deleteAvatar(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.UserService.DeleteAvatar(r.Context(), identity.User.ID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// getAvatar is public: anyone knowing a user id may fetch its avatar.
func (h *Handler) getAvatar(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.writeAvatar(w, r, userID)
}

func (h *Handler) getMyAvatar(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.writeAvatar(w, r, identity.User.ID)
}

func (h *Handler) writeAvatar(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	avatar, err := h.services.UserService.GetAvatar(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(avatar)
}
