package setting

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/inkpost/inkpost/internal/db/models"
	"github.com/inkpost/inkpost/internal/settings"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	// every pooled connection would get its own empty in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.Setting{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedSettings inserts test data into the database.
func seedSettings(t *testing.T, db *gorm.DB, seed []models.Setting) {
	t.Helper()

	for i := range seed {
		err := Create(db, &seed[i])
		require.NoError(t, err, "failed to seed test data")
	}
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		key           string
		seedData      []models.Setting
		expectedError error
		expectedValue string
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			key:           "title",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty key",
			dbParam:       db,
			key:           "",
			expectedError: ErrSettingKeyEmpty,
		},
		{
			name:          "setting not found",
			dbParam:       db,
			key:           "nonexistent",
			expectedError: ErrSettingNotFound,
		},
		{
			name:    "successful get",
			dbParam: db,
			key:     "title",
			seedData: []models.Setting{
				{Key: "title", Value: "My Blog", Type: "blog"},
			},
			expectedValue: "My Blog",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM settings")
			}

			if tc.seedData != nil {
				seedSettings(t, tc.dbParam, tc.seedData)
			}

			setting, err := Get(tc.dbParam, tc.key)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, setting)
			} else {
				require.NoError(t, err)
				require.NotNil(t, setting)
				assert.Equal(t, tc.key, setting.Key)
				assert.Equal(t, tc.expectedValue, setting.Value)
				assert.Len(t, setting.UUID, 36)
			}
		})
	}
}

func TestErrSettingNotFoundIsStoreNotFound(t *testing.T) {
	assert.ErrorIs(t, ErrSettingNotFound, settings.ErrNotFound)
	assert.ErrorIs(t, ErrNoDefault, settings.ErrNotFound)
}

func TestGetAll(t *testing.T) {
	db := setupTestDB(t)

	_, err := GetAll(nil)
	require.ErrorIs(t, err, ErrDBNil)

	all, err := GetAll(db)
	require.NoError(t, err)
	assert.Empty(t, all)

	seedSettings(t, db, []models.Setting{
		{Key: "title", Value: "My Blog", Type: "blog"},
		{Key: "activeTheme", Value: "casper", Type: "theme"},
		{Key: "databaseVersion", Value: "003", Type: "core"},
	})

	all, err = GetAll(db)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "title", all[0].Key)
	assert.Equal(t, "activeTheme", all[1].Key)
	assert.Equal(t, "databaseVersion", all[2].Key)
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		setting       models.Setting
		seedData      []models.Setting
		expectedError error
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			setting:       models.Setting{Key: "title", Type: "blog"},
			expectedError: ErrDBNil,
		},
		{
			name:          "empty key",
			dbParam:       db,
			setting:       models.Setting{Type: "blog"},
			expectedError: ErrSettingKeyEmpty,
		},
		{
			name:          "invalid type",
			dbParam:       db,
			setting:       models.Setting{Key: "title", Type: "nope"},
			expectedError: ErrSettingTypeInvalid,
		},
		{
			name:    "successful create",
			dbParam: db,
			setting: models.Setting{Key: "title", Value: "My Blog", Type: "blog"},
		},
		{
			name:          "duplicate key",
			dbParam:       db,
			setting:       models.Setting{Key: "title", Value: "Another", Type: "blog"},
			seedData:      []models.Setting{{Key: "title", Value: "My Blog", Type: "blog"}},
			expectedError: ErrSettingAlreadyExists,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM settings")
			}

			if tc.seedData != nil {
				seedSettings(t, tc.dbParam, tc.seedData)
			}

			setting := tc.setting
			err := Create(tc.dbParam, &setting)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
			} else {
				require.NoError(t, err)
				assert.NotZero(t, setting.ID)
				assert.NotEmpty(t, setting.UUID)
				assert.False(t, setting.CreatedAt.IsZero())
			}
		})
	}
}

func TestUpdateByKey(t *testing.T) {
	db := setupTestDB(t)
	seedSettings(t, db, []models.Setting{{Key: "title", Value: "My Blog", Type: "blog", CreatedBy: 1}})

	_, err := UpdateByKey(db, "missing", "x", 2)
	require.ErrorIs(t, err, ErrSettingNotFound)

	updated, err := UpdateByKey(db, "title", "Renamed", 2)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Value)
	assert.Equal(t, uint64(2), updated.UpdatedBy)
	assert.Equal(t, uint64(1), updated.CreatedBy)

	stored, err := Get(db, "title")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Value)
}
