package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/inkpost/inkpost/internal/settings"
)

// Service provides authentication and authorization functionality.
type Service struct {
	db *gorm.DB
}

// NewService creates a new auth service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// HasPermission checks if an active user's role holds the permission.
func (s *Service) HasPermission(ctx context.Context, userID uint64, permission string) (bool, error) {
	var count int64

	err := s.db.WithContext(ctx).Table("permissions").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN users ON users.role_id = role_permissions.role_id").
		Where("users.id = ? AND users.active = ? AND permissions.name = ?", userID, true, permission).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check role permission: %w", err)
	}

	return count > 0, nil
}

// GetUserPermissions retrieves the permission names of a user's role.
func (s *Service) GetUserPermissions(ctx context.Context, userID uint64) ([]string, error) {
	var permissions []string

	err := s.db.WithContext(ctx).Table("permissions").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN users ON users.role_id = role_permissions.role_id").
		Where("users.id = ?", userID).
		Order("permissions.name").
		Distinct().
		Pluck("permissions.name", &permissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user permissions: %w", err)
	}

	return permissions, nil
}

// CanPerform implements settings.Permissions.
// Internal callers may do anything, anonymous callers nothing, users what
// their role allows.
func (s *Service) CanPerform(ctx context.Context, caller *settings.Context, action settings.Action, key string) error {
	if caller.IsInternal() {
		return nil
	}

	if caller == nil || caller.UserID == 0 {
		return fmt.Errorf("%w: %s needs a user", ErrPermissionDenied, action)
	}

	has, err := s.HasPermission(ctx, caller.UserID, string(action))
	if err != nil {
		return err
	}

	if !has {
		log.Debug().Uint64("user_id", caller.UserID).Str("permission", string(action)).Str("key", key).
			Msg("user lacks required permission")

		return fmt.Errorf("%w: %s", ErrPermissionDenied, action)
	}

	return nil
}
