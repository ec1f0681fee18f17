package usecase

import "errors"

// Sentinel errors services wrap with context. Handlers map them onto the
// HTTP taxonomy with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
)
