package docstore

import (
	"context"
	"sort"
	"time"

	"github.com/tkhr-dev/teamlog/internal/models"
)

// Attendances returns all entries, or only those matching the exact date
// string when date is non-empty. Ordered by id.
func (s *Store) Attendances(_ context.Context, date string) ([]models.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]models.Attendance, 0, len(s.attendance.Docs))
	for _, a := range s.attendance.Docs {
		if date != "" && a.Date != date {
			continue
		}
		entries = append(entries, a)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

// AttendanceByUserDate returns the entry for the (userID, date) pair, or
// (nil, nil) if none exists.
func (s *Store) AttendanceByUserDate(_ context.Context, userID int64, date string) (*models.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.attendance.Docs {
		if a.UserID == userID && a.Date == date {
			entry := a
			return &entry, nil
		}
	}
	return nil, nil
}

// AttendanceByID returns the entry with the given id, or (nil, nil) if
// none exists.
func (s *Store) AttendanceByID(_ context.Context, id int64) (*models.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.attendance.Docs[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

// CreateAttendance inserts a new entry and returns the stored document.
func (s *Store) CreateAttendance(_ context.Context, a *models.Attendance) (*models.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	stored := *a
	stored.ID = s.attendance.allocate()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.attendance.Docs[stored.ID] = stored

	if err := save(s.dir, "attendance", &s.attendance); err != nil {
		return nil, err
	}
	return &stored, nil
}

// UpdateAttendance overwrites the mutable fields of the entry with the
// given id, refreshes updatedAt, and returns the stored document.
// Returns (nil, nil) when the id is unknown.
func (s *Store) UpdateAttendance(_ context.Context, a *models.Attendance) (*models.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.attendance.Docs[a.ID]
	if !ok {
		return nil, nil
	}

	existing.Status = a.Status
	existing.Location = a.Location
	existing.Tasks = a.Tasks
	existing.Consultation = a.Consultation
	existing.UpdatedAt = time.Now().UTC()
	s.attendance.Docs[existing.ID] = existing

	if err := save(s.dir, "attendance", &s.attendance); err != nil {
		return nil, err
	}
	return &existing, nil
}

// DeleteAttendance removes the entry with the given id. Returns false
// when no such entry existed.
func (s *Store) DeleteAttendance(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.attendance.Docs[id]; !ok {
		return false, nil
	}
	delete(s.attendance.Docs, id)

	if err := save(s.dir, "attendance", &s.attendance); err != nil {
		return false, err
	}
	return true, nil
}
