package settings

import (
	"errors"
)

var (
	// ErrNotFound is returned when a setting or its default does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoPermission is returned when the caller may not access a setting.
	ErrNoPermission = errors.New("no permission")

	// ErrValidation is returned when a setting value fails validation.
	ErrValidation = errors.New("validation failed")

	// ErrBadRequest is returned for malformed edit payloads.
	ErrBadRequest = errors.New("bad request")

	// ErrNilDependency is returned by New if a required collaborator is missing.
	ErrNilDependency = errors.New("settings store dependency is nil")
)
