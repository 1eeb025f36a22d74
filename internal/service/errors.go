package service

import (
	"errors"
	"strings"
)

// ErrBadCredentials covers wrong passwords and unknown fallback secrets
// without revealing which one failed.
var ErrBadCredentials = errors.New("wrong team number or password")

// ErrForbidden is returned when an authenticated requester is not allowed
// to perform the action.
var ErrForbidden = errors.New("not allowed")

// ErrTooManyAttempts is returned when the login throttle kicks in.
var ErrTooManyAttempts = errors.New("too many failed login attempts, try again later")

// ValidationError reports every violated input rule together.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Reasons, "; ")
}

func validationErr(reasons ...string) *ValidationError {
	return &ValidationError{Reasons: reasons}
}
