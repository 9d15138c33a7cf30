package app

import "errors"

// Errors shared by the application services. Store errors pass through unchanged.
var (
	// ErrUnauthenticated indicates the operation needs a signed-in user.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden indicates the user lacks the role the operation needs.
	ErrForbidden = errors.New("forbidden")
	// ErrUsernameRequired indicates the user must create a profile first.
	ErrUsernameRequired = errors.New("username required")
	// ErrInvalidInput indicates a request failed basic validation.
	ErrInvalidInput = errors.New("invalid input")
)
