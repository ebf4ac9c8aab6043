package models

import "time"

// Role groups permissions, e.g. "Administrator", "Editor" or "Author".
type Role struct {
	// ID is the unique identifier for the role.
	ID uint `gorm:"primaryKey"`
	// Name is the unique name of the role.
	Name string `gorm:"unique;size:100;not null"`
	// Description explains who the role is meant for.
	Description string `gorm:"size:255"`
	// IsSystem marks seeded roles which are recreated on start.
	IsSystem bool `gorm:"default:false"`
	// CreatedAt is the timestamp when the role was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the role was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Role model.
func (Role) TableName() string {
	return "roles"
}
