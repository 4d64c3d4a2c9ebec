package docstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tkhr-dev/teamlog/internal/models"
)

// userDoc is the persisted form of a user. models.User excludes the
// password hash from JSON serialization, so users are stored through
// this shape to keep the hash in the collection file.
type userDoc struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (d userDoc) toModel() models.User {
	return models.User{
		ID:           d.ID,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
}

// UserByName returns the user with the given name, or (nil, nil) if no
// such user exists.
func (s *Store) UserByName(_ context.Context, name string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.users.Docs {
		if d.Name == name {
			user := d.toModel()
			return &user, nil
		}
	}
	return nil, nil
}

// UserByID returns the user with the given id, or (nil, nil) if no such
// user exists.
func (s *Store) UserByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.users.Docs[id]
	if !ok {
		return nil, nil
	}
	user := d.toModel()
	return &user, nil
}

// CreateUser inserts a new user and returns the stored document. The
// name must be unique, matching the relational schema's constraint.
func (s *Store) CreateUser(_ context.Context, name, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.users.Docs {
		if d.Name == name {
			return nil, fmt.Errorf("user name %q already exists", name)
		}
	}

	d := userDoc{
		ID:           s.users.allocate(),
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users.Docs[d.ID] = d

	if err := save(s.dir, "users", &s.users); err != nil {
		return nil, err
	}
	user := d.toModel()
	return &user, nil
}

// Users returns all users ordered by id.
func (s *Store) Users(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users.Docs))
	for _, d := range s.users.Docs {
		users = append(users, d.toModel())
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}
