package records

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tkhr-dev/teamlog/internal/models"
)

// Client talks to the teamlog reading records API.
type Client struct {
	// HTTP performs the requests. Its cookie jar carries the session.
	HTTP *http.Client
	// BaseURL is the server root, e.g. http://localhost:8080.
	BaseURL string
}

// Login authenticates with the server; the session cookie lands in the
// client's cookie jar.
func (c *Client) Login(ctx context.Context, name, password string) error {
	body, _ := json.Marshal(map[string]string{"name": name, "password": password})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed with status %d", resp.StatusCode)
	}
	return nil
}

// Fetch returns the session user's reading records, or every user's when
// showAll is true. Filtering and sorting happen locally via Apply.
func (c *Client) Fetch(ctx context.Context, showAll bool) ([]models.ReadingRecordWithBook, error) {
	url := c.BaseURL + "/api/reading-records"
	if showAll {
		url += "?showAll=true"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build records request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch records failed with status %d", resp.StatusCode)
	}

	var records []models.ReadingRecordWithBook
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}
