package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vidstream/api/internal/core/domain"
	"github.com/vidstream/api/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
	authService ports.AuthService
	uploadDir   string
}

func NewUserHandler(userService ports.UserService, authService ports.AuthService, uploadDir string) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
		uploadDir:   uploadDir,
	}
}

func (h *UserHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, "unauthorized request", nil)
		return
	}
	writeJSON(w, http.StatusOK, "current user fetched successfully", user)
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, "unauthorized request", nil)
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	if err := h.authService.ChangePassword(r.Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "password changed successfully", nil)
}

type updateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func (h *UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, "unauthorized request", nil)
		return
	}

	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	updated, err := h.userService.UpdateAccount(r.Context(), user.ID, req.FullName, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "account updated successfully", updated)
}

func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "avatar", h.userService.UpdateAvatar, "avatar updated successfully")
}

func (h *UserHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "coverImage", h.userService.UpdateCoverImage, "cover image updated successfully")
}

type imageUpdateFunc func(ctx context.Context, id, localPath string) (*domain.User, error)

func (h *UserHandler) updateImage(w http.ResponseWriter, r *http.Request, field string, update imageUpdateFunc, message string) {
	user := userFromContext(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, "unauthorized request", nil)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid multipart form", nil)
		return
	}

	localPath, err := stageFile(r, field, h.uploadDir)
	if err != nil {
		writeError(w, err)
		return
	}

	updated, err := update(r.Context(), user.ID, localPath)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, message, updated)
}
