package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tkhr-dev/teamlog/internal/models"
	"github.com/tkhr-dev/teamlog/internal/service"
	"go.uber.org/zap"
)

// AttendanceService defines the interface for attendance operations
// required by the AttendanceHandler.
type AttendanceService interface {
	// List returns entries, optionally filtered by exact date.
	List(ctx context.Context, date string) ([]models.Attendance, error)
	// Upsert creates or updates the entry for the (user, date) pair.
	// The bool is true when a new entry was created.
	Upsert(ctx context.Context, params service.UpsertAttendanceParams) (*models.Attendance, bool, error)
	// Patch applies a partial update. Returns service.ErrNotFound when
	// the id is unknown.
	Patch(ctx context.Context, id int64, patch service.AttendancePatch) (*models.Attendance, error)
	// Delete removes an entry. Returns service.ErrNotFound when the id
	// is unknown.
	Delete(ctx context.Context, id int64) error
}

// AttendanceHandler handles HTTP requests for attendance entries.
//
// None of its mutation endpoints check record ownership; any
// authenticated session may edit or delete any user's entry. The
// original system behaves this way and the behavior is preserved for
// compatibility (see DESIGN.md).
type AttendanceHandler struct {
	// AttendanceService performs the underlying attendance operations.
	AttendanceService AttendanceService
	// Log receives server-side error detail never exposed to callers.
	Log *zap.Logger
}

// upsertAttendanceRequest represents the JSON payload of an attendance
// submission.
type upsertAttendanceRequest struct {
	UserID       int64  `json:"userId"`
	Date         string `json:"date"`
	Status       string `json:"status"`
	Location     string `json:"location"`
	Tasks        string `json:"tasks"`
	Consultation string `json:"consultation"`
}

// patchAttendanceRequest represents the JSON payload of a partial
// update; absent fields are left untouched.
type patchAttendanceRequest struct {
	Status       *string `json:"status"`
	Location     *string `json:"location"`
	Tasks        *string `json:"tasks"`
	Consultation *string `json:"consultation"`
}

// List handles GET /api/attendance with an optional ?date=YYYY-MM-DD
// exact-match filter.
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.AttendanceService.List(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		h.Log.Error("failed to fetch attendance", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch attendance")
		return
	}
	if entries == nil {
		entries = []models.Attendance{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// Upsert handles POST /api/attendance. Submitting twice for the same
// (userId, date) pair updates the existing entry instead of creating a
// duplicate; the response is 201 on create and 200 on update.
func (h *AttendanceHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req upsertAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == 0 || req.Date == "" || req.Status == "" {
		writeError(w, http.StatusBadRequest, "userId, date, and status are required")
		return
	}

	entry, created, err := h.AttendanceService.Upsert(r.Context(), service.UpsertAttendanceParams{
		UserID:       req.UserID,
		Date:         req.Date,
		Status:       req.Status,
		Location:     req.Location,
		Tasks:        req.Tasks,
		Consultation: req.Consultation,
	})
	if err != nil {
		h.Log.Error("failed to create/update attendance", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create/update attendance")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, entry)
}

// Patch handles PATCH /api/attendance/{id}.
func (h *AttendanceHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid attendance ID")
		return
	}

	var req patchAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.AttendanceService.Patch(r.Context(), id, service.AttendancePatch{
		Status:       req.Status,
		Location:     req.Location,
		Tasks:        req.Tasks,
		Consultation: req.Consultation,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Attendance record not found")
			return
		}
		h.Log.Error("failed to update attendance", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to update attendance")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Delete handles DELETE /api/attendance/{id}.
func (h *AttendanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid attendance ID")
		return
	}

	if err := h.AttendanceService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Attendance record not found")
			return
		}
		h.Log.Error("failed to delete attendance", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to delete attendance")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
