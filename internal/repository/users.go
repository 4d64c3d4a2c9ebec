// Package repository provides PostgreSQL persistence implementations for
// the service-layer repository interfaces. The document-oriented
// counterpart lives in internal/docstore; both expose identical behavior.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tkhr-dev/teamlog/internal/models"
)

// PostgresUserRepository implements user persistence against PostgreSQL.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a PostgresUserRepository with the
// given database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// UserByName returns the user with the given name, or (nil, nil) if no
// such user exists.
func (r *PostgresUserRepository) UserByName(ctx context.Context, name string) (*models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, password, created_at FROM users WHERE name = $1
	`, name).Scan(&u.ID, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("UserByName: %w", err)
	}
	return &u, nil
}

// UserByID returns the user with the given id, or (nil, nil) if no such
// user exists.
func (r *PostgresUserRepository) UserByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, password, created_at FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("UserByID: %w", err)
	}
	return &u, nil
}

// CreateUser inserts a new user and returns the stored row.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, name, passwordHash string) (*models.User, error) {
	u := models.User{Name: name, PasswordHash: passwordHash}
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO users (name, password) VALUES ($1, $2)
		RETURNING id, created_at
	`, name, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return &u, nil
}

// Users returns all users ordered by id.
func (r *PostgresUserRepository) Users(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, password, created_at FROM users ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("Users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
