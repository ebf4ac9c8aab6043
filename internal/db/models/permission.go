package models

import "time"

// Permission is a named right in resource.action form, e.g. "setting.edit".
// Permissions are granted to users through their role.
type Permission struct {
	// ID is the unique identifier for the permission.
	ID uint `gorm:"primaryKey"`
	// Name is the unique permission identifier, e.g. "theme.browse".
	Name string `gorm:"unique;size:100;not null"`
	// Resource is the object type the permission applies to ("setting" or "theme").
	Resource string `gorm:"size:100;not null"`
	// Action is the allowed operation ("browse", "read" or "edit").
	Action string `gorm:"size:50;not null"`
	// Description is shown to administrators.
	Description string `gorm:"size:255"`
	// CreatedAt is the timestamp when the permission was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the permission was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Permission model.
func (Permission) TableName() string {
	return "permissions"
}
