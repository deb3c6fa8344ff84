package domain

import "errors"

// Sentinel errors for the service layer. Handlers map these onto HTTP
// status codes; services wrap them with fmt.Errorf("%w: ...") to add detail.
var (
	ErrValidation = errors.New("invalid input")
	ErrAuth       = errors.New("invalid credentials")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
)
