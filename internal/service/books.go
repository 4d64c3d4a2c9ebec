package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tkhr-dev/teamlog/internal/models"
)

// maxSearchResults is the fixed page size requested from the catalog.
const maxSearchResults = 40

// BookSearchResult is the normalized response of a catalog search.
type BookSearchResult struct {
	// Books is one page of normalized results. Possibly empty, never
	// absent.
	Books []models.BookData `json:"books"`
	// TotalItems is the upstream's total match count across all pages.
	TotalItems int `json:"totalItems"`
}

// BooksService proxies free-text queries to the external book catalog and
// normalizes the response shape.
type BooksService struct {
	// client performs the outbound catalog requests.
	client *http.Client
	// baseURL is the catalog volumes endpoint.
	baseURL string
}

// NewBooksService constructs a BooksService querying the catalog at
// baseURL (the Google Books volumes endpoint in production).
func NewBooksService(baseURL string) *BooksService {
	return &BooksService{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
	}
}

// volumesResponse mirrors the subset of the catalog payload we consume.
type volumesResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		ID         string `json:"id"`
		VolumeInfo struct {
			Title       string   `json:"title"`
			Authors     []string `json:"authors"`
			Description string   `json:"description"`
			ImageLinks  struct {
				Thumbnail      string `json:"thumbnail"`
				SmallThumbnail string `json:"smallThumbnail"`
			} `json:"imageLinks"`
			PublishedDate string   `json:"publishedDate"`
			PageCount     int      `json:"pageCount"`
			Categories    []string `json:"categories"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// Search queries the catalog for the given free text, starting at the
// given result offset, and returns one normalized page. Every result has
// at least a title ("タイトル不明" when the catalog omits one) and an
// authors list, possibly empty. Upstream failures are returned as-is; no
// retry is attempted.
func (s *BooksService) Search(ctx context.Context, query string, startIndex int) (*BookSearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxSearchResults))
	params.Set("startIndex", strconv.Itoa(startIndex))
	params.Set("langRestrict", "ja")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var payload volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}

	books := make([]models.BookData, 0, len(payload.Items))
	for _, item := range payload.Items {
		info := item.VolumeInfo

		title := info.Title
		if title == "" {
			title = "タイトル不明"
		}
		thumbnail := info.ImageLinks.Thumbnail
		if thumbnail == "" {
			thumbnail = info.ImageLinks.SmallThumbnail
		}

		books = append(books, models.BookData{
			GoogleBooksID: item.ID,
			Title:         title,
			Authors:       emptyIfNil(info.Authors),
			Description:   info.Description,
			Thumbnail:     thumbnail,
			PublishedDate: info.PublishedDate,
			PageCount:     info.PageCount,
			Categories:    emptyIfNil(info.Categories),
		})
	}

	return &BookSearchResult{Books: books, TotalItems: payload.TotalItems}, nil
}
