// Package common defines shared constants and sentinel errors used across
// userhub layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Credential errors. Unknown username and wrong password both map here.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")

	// User directory errors.
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidIdentifier  = errors.New("invalid user identifier")
	ErrUploadFailed       = errors.New("upload failed")
	ErrPersistenceFailure = errors.New("persistence failure")

	// Boundary errors.
	ErrRateLimited      = errors.New("rate limited")
	ErrValidationFailed = errors.New("validation failed")
)
