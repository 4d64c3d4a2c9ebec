package service

import (
	"context"
	"time"

	"github.com/tkhr-dev/teamlog/internal/models"
)

// EventRepository defines the persistence operations required by the
// calendar event service.
type EventRepository interface {
	// Events returns all calendar events.
	Events(ctx context.Context) ([]models.Event, error)
	// CreateEvent inserts a new event and returns the stored row.
	CreateEvent(ctx context.Context, e *models.Event) (*models.Event, error)
}

// CreateEventParams carries the fields of a new calendar event.
type CreateEventParams struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	UserID      int64
}

// EventService implements calendar event listing and creation.
type EventService struct {
	// repo performs the data-layer operations.
	repo EventRepository
}

// NewEventService constructs an EventService using the provided repository.
func NewEventService(repo EventRepository) *EventService {
	return &EventService{repo: repo}
}

// List returns all calendar events.
func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	return s.repo.Events(ctx)
}

// Create inserts a new calendar event.
func (s *EventService) Create(ctx context.Context, params CreateEventParams) (*models.Event, error) {
	return s.repo.CreateEvent(ctx, &models.Event{
		Title:       params.Title,
		Description: params.Description,
		StartTime:   params.StartTime,
		EndTime:     params.EndTime,
		UserID:      params.UserID,
	})
}
