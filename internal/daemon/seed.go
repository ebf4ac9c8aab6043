package daemon

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/inkpost/inkpost/internal/auth"
	"github.com/inkpost/inkpost/internal/config"
	"github.com/inkpost/inkpost/internal/db/models"
)

// seed creates roles and permissions and, on an empty user table, the
// configured administrator.
func seed(ctx context.Context, cfg *config.Config, db *gorm.DB, authService *auth.Service) error {
	if err := auth.Seed(ctx, db); err != nil {
		return err
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}

	if count > 0 {
		return nil
	}

	user, key, err := authService.CreateUser(ctx, cfg.Admin.Name, cfg.Admin.Email, auth.RoleAdministrator, cfg.Admin.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create administrator: %w", err)
	}

	event := log.Warn().Uint64("user_id", user.ID).Str("name", user.Name)
	if cfg.Admin.APIKey == "" {
		// shown once, only the hash is stored
		event = event.Str("api_key", key)
	}

	event.Msg("administrator created")

	return nil
}
