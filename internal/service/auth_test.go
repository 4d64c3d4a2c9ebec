package service

import (
	"context"
	"errors"
	"testing"

	"github.com/tkhr-dev/teamlog/internal/models"
)

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users  map[int64]models.User
	nextID int64
	err    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]models.User), nextID: 1}
}

func (f *fakeUserRepo) UserByName(_ context.Context, name string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Name == name {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UserByID(_ context.Context, id int64) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeUserRepo) CreateUser(_ context.Context, name, passwordHash string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u := models.User{ID: f.nextID, Name: name, PasswordHash: passwordHash}
	f.users[u.ID] = u
	f.nextID++
	return &u, nil
}

func (f *fakeUserRepo) Users(_ context.Context) ([]models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func TestRegister_Duplicate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	first, err := svc.Register(context.Background(), "Alice", "pass1")
	if err != nil {
		t.Fatalf("first register: %v", err)
	}
	if first.ID == 0 {
		t.Errorf("expected assigned id, got 0")
	}

	_, err = svc.Register(context.Background(), "Alice", "pass2")
	if !errors.Is(err, ErrNameTaken) {
		t.Fatalf("second register error = %v; want ErrNameTaken", err)
	}
}

func TestRegister_HashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	user, err := svc.Register(context.Background(), "Alice", "pass1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	stored := repo.users[user.ID]
	if stored.PasswordHash == "pass1" {
		t.Error("password stored in plaintext")
	}
	// Unsalted SHA-256 hex digest of "pass1".
	want := "e6c3da5b206634d7f3f3586d747ffdb36b5c675757b380c6a5fe5c570c714349"
	if stored.PasswordHash != want {
		t.Errorf("hash = %q; want %q", stored.PasswordHash, want)
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)
	if _, err := svc.Register(context.Background(), "Alice", "pass1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	tests := []struct {
		name     string
		login    string
		password string
		wantErr  error
	}{
		{name: "valid credentials", login: "Alice", password: "pass1"},
		{name: "wrong password", login: "Alice", password: "wrong", wantErr: ErrInvalidCredentials},
		{name: "unknown user", login: "Bob", password: "pass1", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Login(context.Background(), tt.login, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v; want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.Name != tt.login {
				t.Errorf("user name = %q; want %q", user.Name, tt.login)
			}
		})
	}
}

func TestLogin_RepoError(t *testing.T) {
	repo := newFakeUserRepo()
	repo.err = errors.New("store down")
	svc := NewAuthService(repo)

	_, err := svc.Login(context.Background(), "Alice", "pass1")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("error = %v; want underlying store error", err)
	}
}

func TestUserByID_Unknown(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	user, err := svc.UserByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil user for unknown id, got %+v", user)
	}
}
