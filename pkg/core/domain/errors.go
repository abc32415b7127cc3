package domain

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateDomain is returned when a domain name is already taken.
	ErrDuplicateDomain = errors.New("domain already exists")

	// ErrValidation is returned when a request payload is unusable.
	ErrValidation = errors.New("validation failed")

	// ErrStorageDisabled is returned by file operations when no bucket is configured.
	ErrStorageDisabled = errors.New("object storage is not configured")
)

var (
	// ErrInvalidCredentials is returned when a login does not match the configured pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a bearer token fails verification.
	ErrInvalidToken = errors.New("invalid token")
)
