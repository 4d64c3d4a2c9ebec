package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/tkhr-dev/teamlog/internal/service"
	"go.uber.org/zap"
)

// BookSearcher defines the interface for catalog search required by the
// BooksHandler.
type BookSearcher interface {
	// Search returns one normalized page of catalog results.
	Search(ctx context.Context, query string, startIndex int) (*service.BookSearchResult, error)
}

// BooksHandler handles HTTP requests proxying the external book catalog.
type BooksHandler struct {
	// BookSearcher performs the upstream catalog queries.
	BookSearcher BookSearcher
	// Log receives server-side error detail never exposed to callers.
	Log *zap.Logger
}

// Search handles GET /api/books/search?q=...&startIndex=N. An upstream
// failure surfaces immediately as a 500; there is no retry.
func (h *BooksHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, `Query parameter "q" is required`)
		return
	}

	startIndex := 0
	if raw := r.URL.Query().Get("startIndex"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			startIndex = parsed
		}
	}

	result, err := h.BookSearcher.Search(r.Context(), query, startIndex)
	if err != nil {
		h.Log.Error("failed to search books", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to search books")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
