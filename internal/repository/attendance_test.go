package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/tkhr-dev/teamlog/internal/models"
)

func attendanceRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "date", "status", "location", "tasks", "consultation", "created_at", "updated_at",
	})
}

func TestAttendances_DateFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresAttendanceRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM attendance WHERE date = $1 ORDER BY id`)).
		WithArgs("2025-06-02").
		WillReturnRows(attendanceRows().
			AddRow(int64(1), int64(1), "2025-06-02", "present", "office", nil, nil, now, now))

	entries, err := repo.Attendances(context.Background(), "2025-06-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d; want 1", len(entries))
	}
	got := entries[0]
	if got.Status != models.StatusPresent || got.Location != "office" {
		t.Errorf("unexpected entry: %+v", got)
	}
	// NULL optionals come back as empty strings.
	if got.Tasks != "" || got.Consultation != "" {
		t.Errorf("NULL columns not mapped to empty: %+v", got)
	}
}

func TestAttendanceByUserDate_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresAttendanceRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM attendance WHERE user_id = $1 AND date = $2`)).
		WithArgs(int64(1), "2025-06-02").
		WillReturnRows(attendanceRows())

	entry, err := repo.AttendanceByUserDate(context.Background(), 1, "2025-06-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry != nil {
		t.Errorf("expected nil entry for missing row, got %+v", entry)
	}
}

func TestCreateAttendance(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresAttendanceRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO attendance (user_id, date, status, location, tasks, consultation)`)).
		WithArgs(int64(1), "2025-06-02", "present",
			sql.NullString{String: "office", Valid: true},
			sql.NullString{}, sql.NullString{}).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(3), now, now))

	entry, err := repo.CreateAttendance(context.Background(), &models.Attendance{
		UserID: 1, Date: "2025-06-02", Status: models.StatusPresent, Location: "office",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.ID != 3 {
		t.Errorf("id = %d; want 3", entry.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestUpdateAttendance_Unknown(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresAttendanceRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE attendance`)).
		WithArgs(int64(99), "present", sql.NullString{}, sql.NullString{}, sql.NullString{}).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}))

	entry, err := repo.UpdateAttendance(context.Background(), &models.Attendance{ID: 99, Status: models.StatusPresent})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry != nil {
		t.Errorf("expected nil for unknown id, got %+v", entry)
	}
}

func TestDeleteAttendance(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresAttendanceRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM attendance WHERE id = $1`)).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM attendance WHERE id = $1`)).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.DeleteAttendance(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected true for affected row")
	}

	ok, err = repo.DeleteAttendance(context.Background(), 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected false for missing row")
	}
}
