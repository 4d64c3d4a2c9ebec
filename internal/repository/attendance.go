package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tkhr-dev/teamlog/internal/models"
)

// PostgresAttendanceRepository implements attendance persistence against
// PostgreSQL.
type PostgresAttendanceRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAttendanceRepository creates a PostgresAttendanceRepository
// with the given database connection.
func NewPostgresAttendanceRepository(db *sql.DB) *PostgresAttendanceRepository {
	return &PostgresAttendanceRepository{DB: db}
}

const attendanceColumns = `id, user_id, date, status, location, tasks, consultation, created_at, updated_at`

// scanAttendance scans one attendance row, mapping NULL optionals to
// empty strings.
func scanAttendance(scan func(dest ...any) error) (*models.Attendance, error) {
	var a models.Attendance
	var location, tasks, consultation sql.NullString
	if err := scan(&a.ID, &a.UserID, &a.Date, &a.Status, &location, &tasks, &consultation, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Location = location.String
	a.Tasks = tasks.String
	a.Consultation = consultation.String
	return &a, nil
}

// Attendances returns all entries, or only those matching the exact date
// string when date is non-empty.
func (r *PostgresAttendanceRepository) Attendances(ctx context.Context, date string) ([]models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance ORDER BY id`
	args := []any{}
	if date != "" {
		query = `SELECT ` + attendanceColumns + ` FROM attendance WHERE date = $1 ORDER BY id`
		args = append(args, date)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("Attendances: %w", err)
	}
	defer rows.Close()

	var entries []models.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		entries = append(entries, *a)
	}
	return entries, rows.Err()
}

// AttendanceByUserDate returns the entry for the (userID, date) pair, or
// (nil, nil) if none exists.
func (r *PostgresAttendanceRepository) AttendanceByUserDate(ctx context.Context, userID int64, date string) (*models.Attendance, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+attendanceColumns+` FROM attendance WHERE user_id = $1 AND date = $2
	`, userID, date)
	a, err := scanAttendance(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("AttendanceByUserDate: %w", err)
	}
	return a, nil
}

// AttendanceByID returns the entry with the given id, or (nil, nil) if
// none exists.
func (r *PostgresAttendanceRepository) AttendanceByID(ctx context.Context, id int64) (*models.Attendance, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+attendanceColumns+` FROM attendance WHERE id = $1
	`, id)
	a, err := scanAttendance(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("AttendanceByID: %w", err)
	}
	return a, nil
}

// CreateAttendance inserts a new entry and returns the stored row.
func (r *PostgresAttendanceRepository) CreateAttendance(ctx context.Context, a *models.Attendance) (*models.Attendance, error) {
	stored := *a
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO attendance (user_id, date, status, location, tasks, consultation)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, a.UserID, a.Date, a.Status, nullIfEmpty(a.Location), nullIfEmpty(a.Tasks), nullIfEmpty(a.Consultation)).
		Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("CreateAttendance: %w", err)
	}
	return &stored, nil
}

// UpdateAttendance overwrites the mutable fields of the entry with the
// given id, refreshes updated_at, and returns the stored row.
func (r *PostgresAttendanceRepository) UpdateAttendance(ctx context.Context, a *models.Attendance) (*models.Attendance, error) {
	stored := *a
	err := r.DB.QueryRowContext(ctx, `
		UPDATE attendance
		   SET status = $2, location = $3, tasks = $4, consultation = $5, updated_at = now()
		 WHERE id = $1
		RETURNING created_at, updated_at
	`, a.ID, a.Status, nullIfEmpty(a.Location), nullIfEmpty(a.Tasks), nullIfEmpty(a.Consultation)).
		Scan(&stored.CreatedAt, &stored.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("UpdateAttendance: %w", err)
	}
	return &stored, nil
}

// DeleteAttendance removes the entry with the given id. Returns false
// when no such entry existed.
func (r *PostgresAttendanceRepository) DeleteAttendance(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("DeleteAttendance: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("DeleteAttendance rows affected: %w", err)
	}
	return affected > 0, nil
}

// nullIfEmpty maps an empty optional string to SQL NULL, matching the
// original schema where optional text columns store NULL rather than "".
func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
