package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/tkhr-dev/teamlog/internal/models"
	"github.com/tkhr-dev/teamlog/internal/service"
	"go.uber.org/zap"
)

// EventService defines the interface for calendar event operations
// required by the EventsHandler.
type EventService interface {
	// List returns all calendar events.
	List(ctx context.Context) ([]models.Event, error)
	// Create inserts a new calendar event.
	Create(ctx context.Context, params service.CreateEventParams) (*models.Event, error)
}

// EventsHandler handles HTTP requests for calendar events.
type EventsHandler struct {
	// EventService performs the underlying event operations.
	EventService EventService
	// Log receives server-side error detail never exposed to callers.
	Log *zap.Logger
}

// createEventRequest represents the JSON payload of a new calendar
// event. Timestamps are RFC 3339 strings.
type createEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	UserID      int64  `json:"userId"`
}

// List handles GET /api/events.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.EventService.List(r.Context())
	if err != nil {
		h.Log.Error("failed to fetch events", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// Create handles POST /api/events.
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" || req.StartTime == "" || req.EndTime == "" || req.UserID == 0 {
		writeError(w, http.StatusBadRequest, "Title, startTime, endTime, and userId are required")
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "startTime and endTime must be RFC 3339 timestamps")
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "startTime and endTime must be RFC 3339 timestamps")
		return
	}

	event, err := h.EventService.Create(r.Context(), service.CreateEventParams{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   start,
		EndTime:     end,
		UserID:      req.UserID,
	})
	if err != nil {
		h.Log.Error("failed to create event", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create event")
		return
	}
	writeJSON(w, http.StatusCreated, event)
}
