package auth

import (
	"errors"
	"fmt"

	"github.com/inkpost/inkpost/internal/settings"
)

var (
	// ErrUserAccountDisabled is returned when attempting to authenticate a disabled user account.
	ErrUserAccountDisabled = errors.New("user account is disabled")

	// ErrInvalidAPIKey is returned when the API key does not match.
	ErrInvalidAPIKey = errors.New("invalid api key")

	// ErrUserNotFound is returned when a user cannot be found in the database.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists is returned when creating a user whose name is taken.
	ErrUserExists = errors.New("user with this name already exists")

	// ErrRoleNotFound is returned for an unknown role name.
	ErrRoleNotFound = errors.New("role not found")

	// ErrPermissionDenied is returned by CanPerform when the caller lacks the permission.
	ErrPermissionDenied = fmt.Errorf("permission denied, %w", settings.ErrNoPermission)
)
