package service

import "errors"

// ValidationError reports a missing or malformed input field
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError reports a uniqueness clash with existing data
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// AuthError reports failed authentication without saying which part failed
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

var (
	ErrMissingCredentials = &ValidationError{Message: "username and password are required"}
	ErrUsernameTaken      = &ConflictError{Message: "username already exists"}
	ErrInvalidCredentials = &AuthError{Message: "invalid credentials"}
)

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

func IsAuth(err error) bool {
	var target *AuthError
	return errors.As(err, &target)
}
