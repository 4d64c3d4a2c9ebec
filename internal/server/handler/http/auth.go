package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tkhr-dev/teamlog/internal/middleware"
	"github.com/tkhr-dev/teamlog/internal/models"
	"github.com/tkhr-dev/teamlog/internal/service"
	"go.uber.org/zap"
)

// minPasswordLength is the minimum accepted password length on
// registration.
const minPasswordLength = 4

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Register creates a new user. Returns service.ErrNameTaken when
	// the name is already in use.
	Register(ctx context.Context, name, password string) (*models.User, error)
	// Login verifies credentials. Returns service.ErrInvalidCredentials
	// when they do not match.
	Login(ctx context.Context, name, password string) (*models.User, error)
	// UserByID resolves a user id, returning (nil, nil) when unknown.
	UserByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthHandler handles HTTP requests for registration, login, logout and
// session resolution.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	// SecureCookies marks issued session cookies as Secure.
	SecureCookies bool
	// Log receives server-side error detail never exposed to callers.
	Log *zap.Logger
}

// credentialsRequest represents the JSON payload for registration and
// login.
type credentialsRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// userResponse is the public shape of a user in auth replies.
type userResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Register handles POST /api/auth/register. It expects a JSON body with
// name and password, creates the user and issues a session cookie.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "ユーザー名とパスワードが必要です")
		return
	}
	if len(req.Password) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "パスワードは4文字以上にしてください")
		return
	}

	user, err := h.AuthService.Register(r.Context(), req.Name, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrNameTaken) {
			writeError(w, http.StatusConflict, "このユーザー名は既に使用されています")
			return
		}
		h.Log.Error("failed to register user", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "ユーザー登録に失敗しました")
		return
	}

	middleware.SetSessionCookie(w, user.ID, h.SecureCookies)
	writeJSON(w, http.StatusCreated, userResponse{ID: user.ID, Name: user.Name})
}

// Login handles POST /api/auth/login. On success it issues a session
// cookie carrying the user id.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "ユーザー名とパスワードが必要です")
		return
	}

	user, err := h.AuthService.Login(r.Context(), req.Name, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "ユーザー名またはパスワードが正しくありません")
			return
		}
		h.Log.Error("failed to login", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "ログインに失敗しました")
		return
	}

	middleware.SetSessionCookie(w, user.ID, h.SecureCookies)
	writeJSON(w, http.StatusOK, userResponse{ID: user.ID, Name: user.Name})
}

// Me handles GET /api/auth/me. It resolves the session cookie to a user
// and never errors to the caller: any failure resolves to a null user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"user": nil})
		return
	}

	user, err := h.AuthService.UserByID(r.Context(), userID)
	if err != nil {
		h.Log.Error("failed to resolve session user", zap.Error(err))
		writeJSON(w, http.StatusOK, map[string]any{"user": nil})
		return
	}
	if user == nil {
		writeJSON(w, http.StatusOK, map[string]any{"user": nil})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": userResponse{ID: user.ID, Name: user.Name},
	})
}

// Logout handles POST /api/auth/logout by expiring the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w, h.SecureCookies)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
