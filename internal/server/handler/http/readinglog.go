package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tkhr-dev/teamlog/internal/middleware"
	"github.com/tkhr-dev/teamlog/internal/models"
	"github.com/tkhr-dev/teamlog/internal/service"
	"go.uber.org/zap"
)

// ReadingLogService defines the interface for reading record operations
// required by the ReadingLogHandler.
type ReadingLogService interface {
	// Records returns the user's records, or everyone's when showAll.
	Records(ctx context.Context, userID int64, showAll bool) ([]models.ReadingRecordWithBook, error)
	// AddRecord resolves the book and inserts a new record.
	AddRecord(ctx context.Context, userID int64, params service.AddRecordParams) (*models.ReadingRecord, error)
	// UpdateRecord overwrites a record's mutable fields. Returns
	// service.ErrNotFound / service.ErrNotOwner accordingly.
	UpdateRecord(ctx context.Context, userID, id int64, params service.UpdateRecordParams) (*models.ReadingRecord, error)
	// DeleteRecord removes a record. Returns service.ErrNotFound /
	// service.ErrNotOwner accordingly.
	DeleteRecord(ctx context.Context, userID, id int64) error
}

// ReadingLogHandler handles HTTP requests for reading records. All
// endpoints require a session; update and delete additionally enforce
// that the session user owns the record.
type ReadingLogHandler struct {
	// ReadingLogService performs the underlying reading log operations.
	ReadingLogService ReadingLogService
	// Log receives server-side error detail never exposed to callers.
	Log *zap.Logger
}

// createRecordRequest represents the JSON payload of a new reading
// record submission.
type createRecordRequest struct {
	BookData     *models.BookData `json:"bookData"`
	Rating       float64          `json:"rating"`
	Review       string           `json:"review"`
	Tags         []string         `json:"tags"`
	FinishedDate string           `json:"finishedDate"`
}

// updateRecordRequest represents the JSON payload of a reading record
// update. The client always submits the full field set.
type updateRecordRequest struct {
	Rating       float64  `json:"rating"`
	Review       string   `json:"review"`
	Tags         []string `json:"tags"`
	FinishedDate string   `json:"finishedDate"`
}

// List handles GET /api/reading-records, optionally with ?showAll=true.
func (h *ReadingLogHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "ログインが必要です")
		return
	}

	showAll := r.URL.Query().Get("showAll") == "true"
	records, err := h.ReadingLogService.Records(r.Context(), userID, showAll)
	if err != nil {
		h.Log.Error("failed to fetch reading records", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch reading records")
		return
	}
	if records == nil {
		records = []models.ReadingRecordWithBook{}
	}
	writeJSON(w, http.StatusOK, records)
}

// Create handles POST /api/reading-records. The submitted book is
// deduplicated by its external catalog id; the record itself is always
// inserted anew.
func (h *ReadingLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "ログインが必要です")
		return
	}

	var req createRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BookData == nil || req.Rating == 0 {
		writeError(w, http.StatusBadRequest, "Book data and rating are required")
		return
	}

	record, err := h.ReadingLogService.AddRecord(r.Context(), userID, service.AddRecordParams{
		Book:         *req.BookData,
		Rating:       req.Rating,
		Review:       req.Review,
		Tags:         req.Tags,
		FinishedDate: req.FinishedDate,
	})
	if err != nil {
		h.Log.Error("failed to create reading record", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create reading record")
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// Patch handles PATCH /api/reading-records/{id}; owner only.
func (h *ReadingLogHandler) Patch(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "ログインが必要です")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid reading record ID")
		return
	}

	var req updateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.ReadingLogService.UpdateRecord(r.Context(), userID, id, service.UpdateRecordParams{
		Rating:       req.Rating,
		Review:       req.Review,
		Tags:         req.Tags,
		FinishedDate: req.FinishedDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			writeError(w, http.StatusNotFound, "Reading record not found")
		case errors.Is(err, service.ErrNotOwner):
			writeError(w, http.StatusForbidden, "この記録を更新する権限がありません")
		default:
			h.Log.Error("failed to update reading record", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to update reading record")
		}
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// Delete handles DELETE /api/reading-records/{id}; owner only.
func (h *ReadingLogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "ログインが必要です")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid reading record ID")
		return
	}

	if err := h.ReadingLogService.DeleteRecord(r.Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			writeError(w, http.StatusNotFound, "Reading record not found")
		case errors.Is(err, service.ErrNotOwner):
			writeError(w, http.StatusForbidden, "この記録を削除する権限がありません")
		default:
			h.Log.Error("failed to delete reading record", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to delete reading record")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
