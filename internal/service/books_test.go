package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "golang", r.URL.Query().Get("q"))
		assert.Equal(t, "40", r.URL.Query().Get("maxResults"))
		assert.Equal(t, "40", r.URL.Query().Get("startIndex"))
		assert.Equal(t, "ja", r.URL.Query().Get("langRestrict"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"totalItems": 123,
			"items": [
				{
					"id": "vol1",
					"volumeInfo": {
						"title": "Go言語入門",
						"authors": ["山田太郎"],
						"description": "a primer",
						"imageLinks": {"thumbnail": "http://img/large", "smallThumbnail": "http://img/small"},
						"publishedDate": "2024-01-01",
						"pageCount": 300,
						"categories": ["Computers"]
					}
				},
				{
					"id": "vol2",
					"volumeInfo": {
						"imageLinks": {"smallThumbnail": "http://img/small2"}
					}
				}
			]
		}`))
	}))
	defer upstream.Close()

	svc := NewBooksService(upstream.URL)
	result, err := svc.Search(context.Background(), "golang", 40)
	require.NoError(t, err)

	assert.Equal(t, 123, result.TotalItems)
	require.Len(t, result.Books, 2)

	first := result.Books[0]
	assert.Equal(t, "vol1", first.GoogleBooksID)
	assert.Equal(t, "Go言語入門", first.Title)
	assert.Equal(t, []string{"山田太郎"}, first.Authors)
	assert.Equal(t, "http://img/large", first.Thumbnail)

	// Missing fields get defaults: placeholder title, fallback
	// thumbnail, empty lists.
	second := result.Books[1]
	assert.Equal(t, "タイトル不明", second.Title)
	assert.Equal(t, "http://img/small2", second.Thumbnail)
	assert.NotNil(t, second.Authors)
	assert.Empty(t, second.Authors)
	assert.NotNil(t, second.Categories)
}

func TestSearch_NoItems(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"totalItems": 0}`))
	}))
	defer upstream.Close()

	svc := NewBooksService(upstream.URL)
	result, err := svc.Search(context.Background(), "nothing", 0)
	require.NoError(t, err)
	assert.NotNil(t, result.Books)
	assert.Empty(t, result.Books)
	assert.Zero(t, result.TotalItems)
}

func TestSearch_UpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	svc := NewBooksService(upstream.URL)
	_, err := svc.Search(context.Background(), "golang", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
