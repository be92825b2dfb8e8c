package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches every APIError. The screen does not discriminate
	// status codes and reports all of them as an unknown user.
	ErrNotFound = errors.New("user not found")

	// ErrEmptyUsername is returned when a submitted username is blank.
	ErrEmptyUsername = errors.New("username must not be empty")
)

// APIError is a non-2xx response from the repositories endpoint.
type APIError struct {
	Username   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("github api returned %d for user %q", e.StatusCode, e.Username)
	}
	return fmt.Sprintf("github api returned %d for user %q: %s", e.StatusCode, e.Username, e.Message)
}

func (e *APIError) Is(target error) bool { return target == ErrNotFound }

// TransportError is a failure to reach the API at all: DNS, refused
// connection, TLS, reset.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError is a 2xx response whose body is not a list of repositories.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "can't decode repositories: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }
