package domain

import "errors"

// Sentinel errors classifying failures across the service layer.
// Handlers map these to HTTP status codes; callers check them with errors.Is.
var (
	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates the input failed a domain constraint.
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates the operation is illegal in the entity's
	// current state, such as connecting an already-connected session.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")
)
