// Package service provides business logic for authentication, attendance,
// calendar events and reading records, delegating persistence to
// repository interfaces.
package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/tkhr-dev/teamlog/internal/models"
)

// UserRepository defines the persistence operations required by the
// authentication service.
type UserRepository interface {
	// UserByName returns the user with the given name, or (nil, nil)
	// if no such user exists.
	UserByName(ctx context.Context, name string) (*models.User, error)
	// UserByID returns the user with the given id, or (nil, nil) if
	// no such user exists.
	UserByID(ctx context.Context, id int64) (*models.User, error)
	// CreateUser inserts a new user and returns the stored row.
	CreateUser(ctx context.Context, name, passwordHash string) (*models.User, error)
	// Users returns all users.
	Users(ctx context.Context) ([]models.User, error)
}

// AuthService implements registration, login and member listing.
type AuthService struct {
	// repo performs the data-layer operations.
	repo UserRepository
}

// NewAuthService constructs an AuthService using the provided repository.
func NewAuthService(repo UserRepository) *AuthService {
	return &AuthService{repo: repo}
}

// hashPassword returns the hex-encoded SHA-256 digest of password.
// The original system stores this exact digest, so the primitive is kept
// for compatibility with existing rows.
func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// verifyPassword reports whether password hashes to hash.
func verifyPassword(password, hash string) bool {
	digest := hashPassword(password)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(hash)) == 1
}

// Register creates a new user with the given name and password.
// Returns ErrNameTaken if a user with that name already exists.
func (s *AuthService) Register(ctx context.Context, name, password string) (*models.User, error) {
	existing, err := s.repo.UserByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrNameTaken
	}
	return s.repo.CreateUser(ctx, name, hashPassword(password))
}

// Login verifies the given credentials and returns the matching user.
// Returns ErrInvalidCredentials when the name is unknown or the password
// does not match.
func (s *AuthService) Login(ctx context.Context, name, password string) (*models.User, error) {
	user, err := s.repo.UserByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if user == nil || !verifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// UserByID resolves a user id to a user. Returns (nil, nil) when the id
// is unknown, matching the "session resolves to null" contract of the
// /auth/me endpoint.
func (s *AuthService) UserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.UserByID(ctx, id)
}

// Members returns all registered users.
func (s *AuthService) Members(ctx context.Context) ([]models.User, error) {
	return s.repo.Users(ctx)
}

// CreateMember creates a user on behalf of the team management view.
// Unlike Register it performs no duplicate-name pre-check; a conflicting
// name surfaces as a storage error.
func (s *AuthService) CreateMember(ctx context.Context, name, password string) (*models.User, error) {
	return s.repo.CreateUser(ctx, name, hashPassword(password))
}
