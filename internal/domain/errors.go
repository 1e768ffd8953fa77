package domain

import "errors"

// Error taxonomy. Handlers map these to HTTP status codes; services wrap
// them with context via fmt.Errorf("...: %w", Err...).
var (
	ErrValidation     = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrAuthentication = errors.New("authentication failed")
	ErrConflict       = errors.New("conflict")
	ErrUpstream       = errors.New("upstream service failure")
	ErrInternal       = errors.New("internal error")
)
