package service

import "errors"

// Sentinel errors returned by services. Handlers translate them to HTTP
// status codes.
var (
	// ErrNotFound signals that a referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrNotOwner signals that the acting user does not own the record.
	ErrNotOwner = errors.New("record owned by another user")
	// ErrNameTaken signals a duplicate user name on registration.
	ErrNameTaken = errors.New("name already taken")
	// ErrInvalidCredentials signals a failed name/password check.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
