package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// User is an account allowed to call the admin API.
// Users authenticate with an API key and receive permissions through their role.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey"`
	// Active indicates whether the user may authenticate.
	Active bool
	// Name is the unique display name of the user.
	Name string `gorm:"unique;size:100;not null"`
	// Email is the user's email address.
	Email string `gorm:"size:255"`
	// APIKeyHash is the Argon2id hash of the user's API key.
	APIKeyHash string `gorm:"size:255"`
	// RoleID is the ID of the role assigned to this user.
	RoleID uint `gorm:"column:role_id;not null"`
	// Role is the associated role (enforced with a foreign key constraint).
	Role Role `gorm:"foreignKey:RoleID;references:ID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}

// HashAPIKey hashes a plaintext API key using the Argon2id algorithm.
func HashAPIKey(key string) string {
	hashed, err := argon2id.CreateHash(key, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash api key: %v", err)
	}

	return hashed
}

// VerifyAPIKey reports whether key matches the user's stored hash.
func (u *User) VerifyAPIKey(key string) bool {
	if u.APIKeyHash == "" {
		return false
	}

	match, err := argon2id.ComparePasswordAndHash(key, u.APIKeyHash)
	if err != nil {
		log.Error().Msgf("failed to verify api key: %v", err)
		return false
	}

	return match
}
