// Package setting provides database access for blog settings.
package setting

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkpost/inkpost/internal/db/models"
	"github.com/inkpost/inkpost/internal/settings"
)

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = fmt.Errorf("setting %w", settings.ErrNotFound)
	// ErrSettingKeyEmpty is returned when a setting key is empty.
	ErrSettingKeyEmpty = errors.New("setting key cannot be empty")
	// ErrSettingAlreadyExists is returned when attempting to create a setting that already exists.
	ErrSettingAlreadyExists = errors.New("setting already exists")
	// ErrSettingTypeInvalid is returned for an unknown setting type.
	ErrSettingTypeInvalid = errors.New("setting type is invalid")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a setting by its key.
func Get(db *gorm.DB, key string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	var setting models.Setting
	// struct conditions quote the column, key is reserved in MySQL
	result := db.Where(&models.Setting{Key: key}).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, result.Error
	}

	return &setting, nil
}

// GetAll retrieves all settings in insertion order.
func GetAll(db *gorm.DB) ([]models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var all []models.Setting
	result := db.Order("id").Find(&all)
	if result.Error != nil {
		return nil, result.Error
	}

	return all, nil
}

// Create stores a new setting. A missing UUID is generated.
func Create(db *gorm.DB, setting *models.Setting) error {
	if db == nil {
		return ErrDBNil
	}
	if setting.Key == "" {
		return ErrSettingKeyEmpty
	}
	if !settings.Type(setting.Type).Valid() {
		return fmt.Errorf("%w: %q", ErrSettingTypeInvalid, setting.Type)
	}

	_, err := Get(db, setting.Key)
	if err == nil {
		return ErrSettingAlreadyExists
	}
	if !errors.Is(err, ErrSettingNotFound) {
		return err
	}

	if setting.UUID == "" {
		setting.UUID = uuid.NewString()
	}

	return db.Create(setting).Error
}

// UpdateByKey sets the value of an existing setting and records the actor.
func UpdateByKey(db *gorm.DB, key, value string, actor uint64) (*models.Setting, error) {
	setting, err := Get(db, key)
	if err != nil {
		return nil, err
	}

	setting.Value = value
	setting.UpdatedBy = actor

	if err = db.Save(setting).Error; err != nil {
		return nil, err
	}

	return setting, nil
}

// ToRow converts a model to the row exchanged with the settings store.
func ToRow(m *models.Setting) settings.Row {
	return settings.Row{
		Key:       m.Key,
		Value:     m.Value,
		Type:      settings.Type(m.Type),
		CreatedAt: m.CreatedAt,
		CreatedBy: m.CreatedBy,
		UpdatedAt: m.UpdatedAt,
		UpdatedBy: m.UpdatedBy,
	}
}
