package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestUserByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresUserRepository(db)

	created := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, password, created_at FROM users WHERE name = $1`)).
		WithArgs("Alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "password", "created_at"}).
			AddRow(int64(1), "Alice", "hash1", created))

	user, err := repo.UserByName(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 1 || user.Name != "Alice" || user.PasswordHash != "hash1" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestUserByName_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, password, created_at FROM users WHERE name = $1`)).
		WithArgs("Bob").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "password", "created_at"}))

	user, err := repo.UserByName(context.Background(), "Bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil user for missing row, got %+v", user)
	}
}

func TestCreateUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresUserRepository(db)

	created := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (name, password) VALUES ($1, $2)`)).
		WithArgs("Alice", "hash1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), created))

	user, err := repo.CreateUser(context.Background(), "Alice", "hash1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 7 || user.Name != "Alice" || user.PasswordHash != "hash1" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestUsers(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresUserRepository(db)

	created := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, password, created_at FROM users ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "password", "created_at"}).
			AddRow(int64(1), "Alice", "hash1", created).
			AddRow(int64(2), "Bob", "hash2", created))

	users, err := repo.Users(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("users = %d; want 2", len(users))
	}
	if users[0].Name != "Alice" || users[1].Name != "Bob" {
		t.Errorf("unexpected order: %+v", users)
	}
}
