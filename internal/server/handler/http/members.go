package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tkhr-dev/teamlog/internal/models"
	"go.uber.org/zap"
)

// MemberService defines the interface for member listing and creation
// required by the MembersHandler.
type MemberService interface {
	// Members returns all registered users.
	Members(ctx context.Context) ([]models.User, error)
	// CreateMember creates a user with the given name and password.
	CreateMember(ctx context.Context, name, password string) (*models.User, error)
}

// MembersHandler handles HTTP requests of the team management view.
// The password hash field is excluded from serialization by the model,
// so member listings never expose credentials.
type MembersHandler struct {
	// MemberService performs the underlying member operations.
	MemberService MemberService
	// Log receives server-side error detail never exposed to callers.
	Log *zap.Logger
}

// List handles GET /api/members.
func (h *MembersHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.MemberService.Members(r.Context())
	if err != nil {
		h.Log.Error("failed to fetch members", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch members")
		return
	}
	if members == nil {
		members = []models.User{}
	}
	writeJSON(w, http.StatusOK, members)
}

// Create handles POST /api/members. It expects a JSON body with name and
// password.
func (h *MembersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "Password is required")
		return
	}

	member, err := h.MemberService.CreateMember(r.Context(), req.Name, req.Password)
	if err != nil {
		h.Log.Error("failed to create member", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create member")
		return
	}
	writeJSON(w, http.StatusCreated, member)
}
