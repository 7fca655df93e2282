package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/vidstream/api/internal/core/domain"
	"github.com/vidstream/api/internal/core/ports"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"

	maxUploadBytes = 16 << 20
)

type AuthHandler struct {
	authService ports.AuthService
	uploadDir   string
	accessTTL   time.Duration
	refreshTTL  time.Duration
}

func NewAuthHandler(authService ports.AuthService, uploadDir string, accessTTL, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		uploadDir:   uploadDir,
		accessTTL:   accessTTL,
		refreshTTL:  refreshTTL,
	}
}

// Register handles multipart registration: text fields plus an avatar file
// and an optional coverImage file. Files are staged to the upload dir; the
// media storage removes them after the upload attempt.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid multipart form", nil)
		return
	}

	avatarPath, err := stageFile(r, "avatar", h.uploadDir)
	if err != nil {
		writeError(w, err)
		return
	}
	coverPath, err := stageFile(r, "coverImage", h.uploadDir)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.authService.Register(r.Context(), ports.RegisterInput{
		FullName:       r.FormValue("fullName"),
		Username:       r.FormValue("username"),
		Email:          r.FormValue("email"),
		Password:       r.FormValue("password"),
		AvatarPath:     avatarPath,
		CoverImagePath: coverPath,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, "user created successfully", user)
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	user, pair, err := h.authService.Login(r.Context(), ports.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.setTokenCookies(w, pair)
	writeJSON(w, http.StatusOK, "user logged in successfully", loginResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout runs behind the auth gate; the identity comes from the verified
// access token, never from the request body.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, "unauthorized request", nil)
		return
	}

	if err := h.authService.Logout(r.Context(), user.ID); err != nil {
		writeError(w, err)
		return
	}

	h.expireTokenCookies(w)
	writeJSON(w, http.StatusOK, "user logged out successfully", nil)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token := ""
	if cookie, err := r.Cookie(refreshTokenCookie); err == nil {
		token = cookie.Value
	}
	if token == "" {
		var req refreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			token = req.RefreshToken
		}
	}

	pair, err := h.authService.Refresh(r.Context(), token)
	if err != nil {
		h.expireTokenCookies(w)
		writeError(w, err)
		return
	}

	h.setTokenCookies(w, pair)
	writeJSON(w, http.StatusOK, "access token refreshed", pair)
}

// stageFile copies one uploaded file into the upload dir and returns its
// local path. A missing file is not an error here; required-file checks are
// the orchestrator's call.
func stageFile(r *http.Request, field, uploadDir string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	dst, err := os.CreateTemp(uploadDir, "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return dst.Name(), nil
}

func (h *AuthHandler) setTokenCookies(w http.ResponseWriter, pair *ports.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(h.accessTTL.Seconds()),
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    pair.RefreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(h.refreshTTL.Seconds()),
	})
}

func (h *AuthHandler) expireTokenCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: accessTokenCookie, Path: "/", HttpOnly: true, Secure: true, MaxAge: -1})
	http.SetCookie(w, &http.Cookie{Name: refreshTokenCookie, Path: "/", HttpOnly: true, Secure: true, MaxAge: -1})
}
