package auth

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inkpost/inkpost/internal/db/models"
)

// Seed creates missing permissions and system roles and grants the role
// permissions. It is safe to run on every start.
func Seed(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		permIDs := make(map[string]uint, len(Definitions))

		for _, d := range Definitions {
			perm := models.Permission{Name: d.Name}

			err := tx.Where(models.Permission{Name: d.Name}).
				Attrs(models.Permission{Resource: d.Resource, Action: d.Action, Description: d.Description}).
				FirstOrCreate(&perm).Error
			if err != nil {
				return fmt.Errorf("failed to seed permission %s: %w", d.Name, err)
			}

			permIDs[d.Name] = perm.ID
		}

		for _, r := range Roles {
			role := models.Role{Name: r.Name}

			err := tx.Where(models.Role{Name: r.Name}).
				Attrs(models.Role{Description: r.Description, IsSystem: true}).
				FirstOrCreate(&role).Error
			if err != nil {
				return fmt.Errorf("failed to seed role %s: %w", r.Name, err)
			}

			for _, name := range r.Permissions {
				grant := models.RolePermission{RoleID: role.ID, PermissionID: permIDs[name]}

				if err = tx.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(&grant).Error; err != nil {
					return fmt.Errorf("failed to grant %s to %s: %w", name, r.Name, err)
				}
			}
		}

		return nil
	})
}
