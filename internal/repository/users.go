package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/models"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return s.conn(ctx).Create(user).Error
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.conn(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.conn(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// UserExists reports whether the email or username is already taken
func (s *Store) UserExists(ctx context.Context, email, username string) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(&models.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	return count > 0, err
}
