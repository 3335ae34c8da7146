package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/scholarhub/scholarhub-backend/internal/dto"
	"github.com/scholarhub/scholarhub-backend/internal/models"
	"gorm.io/gorm"
)

var ErrInvalidRole = errors.New("role must be user, moderator or admin")

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// List returns all users, optionally filtered by role. Filtering happens in
// the query rather than over the fetched list.
func (s *UserService) List(roleFilter string) ([]models.User, error) {
	query := s.db.Order("created_at DESC")
	if roleFilter != "" && roleFilter != "all" {
		if !models.ValidRole(roleFilter) {
			return nil, ErrInvalidRole
		}
		query = query.Where("role = ?", roleFilter)
	}

	var users []models.User
	err := query.Find(&users).Error
	return users, err
}

func (s *UserService) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// UpsertByEmail records the profile on login/registration flows: creates the
// profile with the default role, or refreshes name, photo and last login on
// an existing one. Role is never changed here.
func (s *UserService) UpsertByEmail(email string, req *dto.UpsertUserRequest) (*models.User, error) {
	if email == "" {
		return nil, errors.New("email is required")
	}

	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		user = models.User{
			ID:        uuid.New(),
			Email:     email,
			Name:      req.Name,
			PhotoURL:  req.PhotoURL,
			Role:      models.RoleUser,
			LastLogin: time.Now(),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user profile: %w", err)
		}
		return &user, nil
	}

	updates := map[string]interface{}{"last_login": time.Now()}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.PhotoURL != "" {
		updates["photo_url"] = req.PhotoURL
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangeRole sets a user's role, admin operation.
func (s *UserService) ChangeRole(id uuid.UUID, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(user).Update("role", role).Error; err != nil {
		return nil, err
	}
	user.Role = role
	return user, nil
}

// Delete removes a user and their refresh tokens.
func (s *UserService) Delete(id uuid.UUID) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}
