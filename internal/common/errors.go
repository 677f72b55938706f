// Package common defines shared constants and sentinel errors used across
// the taskboard server layers. Callers should use errors.Is to match them.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal  = errors.New("internal error")
	ErrForbidden = errors.New("forbidden")

	// Validation errors. Wrap with fmt.Errorf("%w: ...", ErrValidation)
	// to attach detail while staying matchable with errors.Is.
	ErrValidation = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
