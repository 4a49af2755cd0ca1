// Package errors provides custom error types for ghops
package errors

import (
	"errors"
	"fmt"
	"time"
)

// Common errors
var (
	ErrInputAborted       = errors.New("input aborted by operator")
	ErrMissingCredential  = errors.New("missing credential: both username and token are required")
	ErrCredentialReleased = errors.New("credential has been released")
	ErrInvalidRepository  = errors.New("invalid repository format (expected owner/repo)")
	ErrRateLimited        = errors.New("GitHub API rate limit exceeded")
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized: invalid or expired token")
	ErrForbidden          = errors.New("forbidden: token lacks required permissions")
)

// AuthError represents an authentication error with helpful guidance
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// NewAuthError creates a user-friendly authentication error
func NewAuthError() *AuthError {
	return &AuthError{
		Message: `not authenticated with GitHub

Provide a personal access token:
  ghops <command> --token <your-token>
  export GITHUB_TOKEN=<your-token>

Or run without flags to be prompted interactively.`,
	}
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// RateLimitError represents remote throttling. RetryAfter carries the
// interval the remote asked us to wait, when it provided one.
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := ErrRateLimited.Error()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.RetryAfter > 0 {
		msg += fmt.Sprintf(" (retry after %s)", e.RetryAfter)
	}
	return msg
}

// Is makes RateLimitError match ErrRateLimited in errors.Is chains
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// NewRateLimitError creates a new rate limit error
func NewRateLimitError(retryAfter time.Duration, message string) *RateLimitError {
	return &RateLimitError{RetryAfter: retryAfter, Message: message}
}

// NetworkError represents a transport-level failure (connection refused,
// DNS failure, timeout). Safe to retry for idempotent operations only.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new network error
func NewNetworkError(op string, err error) *NetworkError {
	return &NetworkError{Op: op, Err: err}
}

// APIError represents a GitHub API error
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("GitHub API error (status %d): %s: %v", e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("GitHub API error (status %d): %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError creates a new API error
func NewAPIError(statusCode int, message string, err error) *APIError {
	return &APIError{StatusCode: statusCode, Message: message, Err: err}
}

// IsRateLimited checks if the error is a rate limit error
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return errors.Is(err, ErrRateLimited)
}

// RetryAfter extracts the remote-supplied retry interval from a rate limit
// error. Returns false when the error is not a rate limit error or the
// remote did not indicate an interval.
func RetryAfter(err error) (time.Duration, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) && rlErr.RetryAfter > 0 {
		return rlErr.RetryAfter, true
	}
	return 0, false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized checks if the error is an authentication failure
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401
	}
	return errors.Is(err, ErrUnauthorized)
}

// IsRetryable reports whether an idempotent operation may be transparently
// retried after this error. Only transport failures qualify; rate limiting
// is surfaced to the caller so it can honor the retry interval.
func IsRetryable(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
