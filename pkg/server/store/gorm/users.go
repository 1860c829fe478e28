package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/personahq/persona/pkg/model"
	"github.com/personahq/persona/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	db *gorm.DB
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

// Get fetches a user by ID
func (s *UsersStore) Get(id uint) (*model.User, error) {
	var user model.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername fetches a user by login name
func (s *UsersStore) GetByUsername(username string) (*model.User, error) {
	var user model.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts a user plus their role row and API-key credential
func (s *UsersStore) Create(user *model.User, role model.Role, apiKey string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if err := tx.Create(&model.UserRole{UserID: user.ID, Role: role}).Error; err != nil {
			return err
		}
		return tx.Create(&model.Credential{UserID: user.ID, APIKey: []byte(apiKey)}).Error
	})
}

// SetActive toggles a user's active flag
func (s *UsersStore) SetActive(id uint, active bool) error {
	tx := s.db.Model(&model.User{}).Where("id = ?", id).Update("is_active", active)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

// List returns users for admin screens
func (s *UsersStore) List(filter store.UserFilter) ([]model.User, error) {
	query := s.db.Model(&model.User{})

	if filter.Role != nil {
		query = query.
			Joins("JOIN user_roles ON user_roles.user_id = users.id").
			Where("user_roles.role = ?", *filter.Role)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"username ILIKE ? OR email ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	query = query.Order("users.id")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var users []model.User
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Count counts all users
func (s *UsersStore) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetRole returns the user's role row. A missing row reads as a plain user.
func (s *UsersStore) GetRole(userID uint) (*model.UserRole, error) {
	var role model.UserRole
	if err := s.db.Where("user_id = ?", userID).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.UserRole{UserID: userID, Role: model.RoleUser}, nil
		}
		return nil, err
	}
	return &role, nil
}

// SetRole updates the user's role, creating the row when absent
func (s *UsersStore) SetRole(userID uint, role model.Role) error {
	tx := s.db.Model(&model.UserRole{}).Where("user_id = ?", userID).Update("role", role)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return s.db.Create(&model.UserRole{UserID: userID, Role: role}).Error
	}
	return nil
}

// APIKey returns the stored API key for a user
func (s *UsersStore) APIKey(userID uint) ([]byte, error) {
	var credential model.Credential
	if err := s.db.Where("user_id = ?", userID).First(&credential).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrUserNotFound
		}
		return nil, err
	}
	return credential.APIKey, nil
}

// RotateAPIKey replaces the user's API key
func (s *UsersStore) RotateAPIKey(userID uint, apiKey string) error {
	tx := s.db.Model(&model.Credential{}).Where("user_id = ?", userID).Update("api_key", []byte(apiKey))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrUserNotFound
	}
	return nil
}
