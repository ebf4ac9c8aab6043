// Package models contains database model definitions.
package models

import "time"

// Setting is a single persisted blog setting.
// Value is always stored as a string; structured values are JSON encoded.
type Setting struct {
	// ID is the unique identifier for the setting.
	ID uint64 `gorm:"primaryKey"`
	// UUID is the public identifier of the setting.
	UUID string `gorm:"size:36;not null"`
	// Key is the unique setting name, e.g. "title" or "activeTheme".
	Key string `gorm:"column:key;uniqueIndex;size:150;not null"`
	// Value is the raw setting value.
	Value string `gorm:"type:text"`
	// Type is the setting category (core, blog, theme, app or plugin).
	Type string `gorm:"size:150;not null;default:core"`
	// CreatedAt is the timestamp when the setting was created (managed by GORM).
	CreatedAt time.Time
	// CreatedBy is the ID of the user who created the setting.
	CreatedBy uint64 `gorm:"not null"`
	// UpdatedAt is the timestamp when the setting was last updated (managed by GORM).
	UpdatedAt time.Time
	// UpdatedBy is the ID of the user who last updated the setting.
	UpdatedBy uint64
}

// TableName specifies the database table name for the Setting model.
func (Setting) TableName() string {
	return "settings"
}
