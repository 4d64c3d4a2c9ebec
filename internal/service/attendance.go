package service

import (
	"context"

	"github.com/tkhr-dev/teamlog/internal/models"
)

// AttendanceRepository defines the persistence operations required by the
// attendance service.
type AttendanceRepository interface {
	// Attendances returns all entries, or only those whose date equals
	// the given YYYY-MM-DD string when date is non-empty.
	Attendances(ctx context.Context, date string) ([]models.Attendance, error)
	// AttendanceByUserDate returns the entry for the (userID, date)
	// pair, or (nil, nil) if none exists.
	AttendanceByUserDate(ctx context.Context, userID int64, date string) (*models.Attendance, error)
	// AttendanceByID returns the entry with the given id, or (nil, nil)
	// if none exists.
	AttendanceByID(ctx context.Context, id int64) (*models.Attendance, error)
	// CreateAttendance inserts a new entry and returns the stored row.
	CreateAttendance(ctx context.Context, a *models.Attendance) (*models.Attendance, error)
	// UpdateAttendance overwrites the mutable fields of the entry with
	// the given id, refreshes updatedAt, and returns the stored row.
	UpdateAttendance(ctx context.Context, a *models.Attendance) (*models.Attendance, error)
	// DeleteAttendance removes the entry with the given id. Returns
	// false if no such entry existed.
	DeleteAttendance(ctx context.Context, id int64) (bool, error)
}

// UpsertAttendanceParams carries the fields submitted for an attendance
// upsert. UserID, Date and Status are required; the rest default to empty.
type UpsertAttendanceParams struct {
	UserID       int64
	Date         string
	Status       models.AttendanceStatus
	Location     string
	Tasks        string
	Consultation string
}

// AttendancePatch carries the fields of a partial attendance update.
// Nil fields are left untouched.
type AttendancePatch struct {
	Status       *string
	Location     *string
	Tasks        *string
	Consultation *string
}

// AttendanceService implements attendance listing and the upsert keyed by
// the (user, date) natural pair.
type AttendanceService struct {
	// repo performs the data-layer operations.
	repo AttendanceRepository
}

// NewAttendanceService constructs an AttendanceService using the provided
// repository.
func NewAttendanceService(repo AttendanceRepository) *AttendanceService {
	return &AttendanceService{repo: repo}
}

// List returns attendance entries, optionally filtered by exact date.
func (s *AttendanceService) List(ctx context.Context, date string) ([]models.Attendance, error) {
	return s.repo.Attendances(ctx, date)
}

// Upsert creates or updates the single attendance entry for the
// (UserID, Date) pair. If an entry exists, its status, location, tasks and
// consultation are overwritten and updatedAt refreshed, leaving id and
// createdAt untouched. Repeated submission for the same day never
// duplicates. The returned bool is true when a new entry was created.
func (s *AttendanceService) Upsert(ctx context.Context, params UpsertAttendanceParams) (*models.Attendance, bool, error) {
	existing, err := s.repo.AttendanceByUserDate(ctx, params.UserID, params.Date)
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		existing.Status = params.Status
		existing.Location = params.Location
		existing.Tasks = params.Tasks
		existing.Consultation = params.Consultation
		updated, err := s.repo.UpdateAttendance(ctx, existing)
		return updated, false, err
	}

	created, err := s.repo.CreateAttendance(ctx, &models.Attendance{
		UserID:       params.UserID,
		Date:         params.Date,
		Status:       params.Status,
		Location:     params.Location,
		Tasks:        params.Tasks,
		Consultation: params.Consultation,
	})
	return created, true, err
}

// Patch applies a partial update to the entry with the given id.
// Returns ErrNotFound when the id is unknown.
//
// Note: attendance entries carry no ownership check on update or delete;
// any authenticated session may modify any user's entry. This mirrors the
// original system and is preserved for compatibility.
func (s *AttendanceService) Patch(ctx context.Context, id int64, patch AttendancePatch) (*models.Attendance, error) {
	existing, err := s.repo.AttendanceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	if patch.Status != nil {
		existing.Status = *patch.Status
	}
	if patch.Location != nil {
		existing.Location = *patch.Location
	}
	if patch.Tasks != nil {
		existing.Tasks = *patch.Tasks
	}
	if patch.Consultation != nil {
		existing.Consultation = *patch.Consultation
	}

	return s.repo.UpdateAttendance(ctx, existing)
}

// Delete removes the entry with the given id. Returns ErrNotFound when the
// id is unknown.
func (s *AttendanceService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeleteAttendance(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
