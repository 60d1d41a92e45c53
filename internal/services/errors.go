package services

import "errors"

// Validation errors returned to callers. Handlers map them onto HTTP status
// codes with errors.Is; services wrap them with context via fmt.Errorf.
var (
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidInput  = errors.New("invalid input")
)
