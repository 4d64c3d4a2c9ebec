package docstore

import (
	"context"
	"sort"
	"time"

	"github.com/tkhr-dev/teamlog/internal/models"
)

// Events returns all calendar events ordered by start time.
func (s *Store) Events(_ context.Context) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]models.Event, 0, len(s.events.Docs))
	for _, e := range s.events.Docs {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].StartTime.Equal(events[j].StartTime) {
			return events[i].ID < events[j].ID
		}
		return events[i].StartTime.Before(events[j].StartTime)
	})
	return events, nil
}

// CreateEvent inserts a new event and returns the stored document.
func (s *Store) CreateEvent(_ context.Context, e *models.Event) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *e
	stored.ID = s.events.allocate()
	stored.CreatedAt = time.Now().UTC()
	s.events.Docs[stored.ID] = stored

	if err := save(s.dir, "events", &s.events); err != nil {
		return nil, err
	}
	return &stored, nil
}
