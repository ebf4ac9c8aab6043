package auth

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inkpost/inkpost/internal/db/models"
	"github.com/inkpost/inkpost/internal/uniuri"
)

// Authenticate verifies the API key of a user.
func (s *Service) Authenticate(ctx context.Context, userID uint64, apiKey string) (*models.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.Active {
		return nil, ErrUserAccountDisabled
	}

	if !user.VerifyAPIKey(apiKey) {
		return nil, ErrInvalidAPIKey
	}

	return user, nil
}

// GetUserByID loads a user with its role.
func (s *Service) GetUserByID(ctx context.Context, userID uint64) (*models.User, error) {
	var user models.User

	err := s.db.WithContext(ctx).Preload("Role").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// CreateUser creates an active user with the named role. An empty apiKey is
// replaced by a random one; the plaintext key is returned once.
func (s *Service) CreateUser(ctx context.Context, name, email, roleName, apiKey string) (*models.User, string, error) {
	var role models.Role

	err := s.db.WithContext(ctx).Where("name = ?", roleName).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("%w: %s", ErrRoleNotFound, roleName)
	}

	if err != nil {
		return nil, "", fmt.Errorf("failed to query role: %w", err)
	}

	var count int64
	if err = s.db.WithContext(ctx).Model(&models.User{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}

	if count > 0 {
		return nil, "", ErrUserExists
	}

	if apiKey == "" {
		apiKey = uniuri.NewKey()
	}

	user := &models.User{
		Active:     true,
		Name:       name,
		Email:      email,
		APIKeyHash: models.HashAPIKey(apiKey),
		RoleID:     role.ID,
	}

	if err = s.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error; err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	user.Role = role

	return user, apiKey, nil
}

// RotateAPIKey replaces the API key of a user and returns the new plaintext key.
func (s *Service) RotateAPIKey(ctx context.Context, userID uint64) (string, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}

	apiKey := uniuri.NewKey()

	err = s.db.WithContext(ctx).Model(user).Update("api_key_hash", models.HashAPIKey(apiKey)).Error
	if err != nil {
		return "", fmt.Errorf("failed to update api key: %w", err)
	}

	return apiKey, nil
}

// SetActive enables or disables a user.
func (s *Service) SetActive(ctx context.Context, userID uint64, active bool) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("active", active)
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
