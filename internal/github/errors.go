package github

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifies an upstream failure
type ErrorKind string

const (
	// KindAuth means the token was rejected (401, or 403 without rate-limit headers)
	KindAuth ErrorKind = "auth"
	// KindRateLimited means the API rate limit was exhausted (403/429 with rate-limit headers)
	KindRateLimited ErrorKind = "rate_limited"
	// KindNotFound means the resource does not exist or is not visible to the token
	KindNotFound ErrorKind = "not_found"
	// KindServerError means the upstream returned a 5xx or the connection failed
	KindServerError ErrorKind = "server_error"
	// KindMalformed means the upstream returned a success status with an undecodable body
	KindMalformed ErrorKind = "malformed_response"
	// KindTimeout means the request or the aggregate deadline expired
	KindTimeout ErrorKind = "timeout"
)

// APIError is a classified upstream failure
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	// ResetAt is when the rate limit window resets. Only set for KindRateLimited.
	ResetAt time.Time
	Err     error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("github: %s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("github: %s: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Predefined constructors

func ErrAuth(status int, message string) *APIError {
	return &APIError{Kind: KindAuth, StatusCode: status, Message: message}
}

func ErrRateLimited(status int, resetAt time.Time) *APIError {
	return &APIError{
		Kind:       KindRateLimited,
		StatusCode: status,
		Message:    fmt.Sprintf("rate limit exceeded, resets at %s", resetAt.UTC().Format(time.RFC3339)),
		ResetAt:    resetAt,
	}
}

func ErrNotFound(message string) *APIError {
	return &APIError{Kind: KindNotFound, StatusCode: 404, Message: message}
}

func ErrServer(status int, message string) *APIError {
	return &APIError{Kind: KindServerError, StatusCode: status, Message: message}
}

func ErrMalformed(err error) *APIError {
	return &APIError{Kind: KindMalformed, Message: "undecodable response body", Err: err}
}

func ErrTimeout(err error) *APIError {
	return &APIError{Kind: KindTimeout, Message: "request deadline exceeded", Err: err}
}

func ErrNetwork(err error) *APIError {
	return &APIError{Kind: KindServerError, Message: "connection failed", Err: err}
}

// KindOf returns the classification of err, or an empty kind for errors that
// did not come from the GitHub client.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// IsAuthError reports whether err is a credential rejection
func IsAuthError(err error) bool {
	return KindOf(err) == KindAuth
}
