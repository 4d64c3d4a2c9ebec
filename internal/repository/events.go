package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tkhr-dev/teamlog/internal/models"
)

// PostgresEventRepository implements calendar event persistence against
// PostgreSQL.
type PostgresEventRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresEventRepository creates a PostgresEventRepository with the
// given database connection.
func NewPostgresEventRepository(db *sql.DB) *PostgresEventRepository {
	return &PostgresEventRepository{DB: db}
}

// Events returns all calendar events ordered by start time.
func (r *PostgresEventRepository) Events(ctx context.Context) ([]models.Event, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, title, description, start_time, end_time, user_id, created_at
		  FROM events ORDER BY start_time
	`)
	if err != nil {
		return nil, fmt.Errorf("Events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		var description sql.NullString
		if err := rows.Scan(&e.ID, &e.Title, &description, &e.StartTime, &e.EndTime, &e.UserID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		e.Description = description.String
		events = append(events, e)
	}
	return events, rows.Err()
}

// CreateEvent inserts a new event and returns the stored row.
func (r *PostgresEventRepository) CreateEvent(ctx context.Context, e *models.Event) (*models.Event, error) {
	stored := *e
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO events (title, description, start_time, end_time, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, e.Title, nullIfEmpty(e.Description), e.StartTime, e.EndTime, e.UserID).
		Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("CreateEvent: %w", err)
	}
	return &stored, nil
}
