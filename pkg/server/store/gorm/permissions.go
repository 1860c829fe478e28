package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/personahq/persona/pkg/model"
	"github.com/personahq/persona/pkg/server/store"
)

// Ensure PermissionsStore implements store.PermissionsStore
var _ store.PermissionsStore = (*PermissionsStore)(nil)

// PermissionsStore implements store.PermissionsStore using GORM
type PermissionsStore struct {
	db *gorm.DB
}

// NewPermissionsStore creates a new PermissionsStore
func NewPermissionsStore(db *gorm.DB) *PermissionsStore {
	return &PermissionsStore{db: db}
}

// ListByIdentity returns all field-permission rows for an identity
func (s *PermissionsStore) ListByIdentity(identityID uint) ([]model.FieldPermission, error) {
	var perms []model.FieldPermission
	err := s.db.Where("identity_id = ?", identityID).Order("field_name").Find(&perms).Error
	if err != nil {
		return nil, err
	}
	return perms, nil
}

// Upsert creates or updates the row for (identity, field_name)
func (s *PermissionsStore) Upsert(perm *model.FieldPermission) (bool, error) {
	var existing model.FieldPermission
	err := s.db.
		Where("identity_id = ? AND field_name = ?", perm.IdentityID, perm.FieldName).
		First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.db.Create(perm).Error; err != nil {
			if isUniqueViolation(err) {
				// A concurrent writer won the race; fall through to update.
				return false, s.update(perm)
			}
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	perm.ID = existing.ID
	perm.CreatedAt = existing.CreatedAt
	return false, s.update(perm)
}

func (s *PermissionsStore) update(perm *model.FieldPermission) error {
	return s.db.Model(&model.FieldPermission{}).
		Where("identity_id = ? AND field_name = ?", perm.IdentityID, perm.FieldName).
		Updates(map[string]interface{}{
			"permission_level": perm.PermissionLevel,
			"allowed_roles":    perm.AllowedRoles,
			"allowed_users":    perm.AllowedUsers,
			"conditions":       perm.Conditions,
		}).Error
}

// Delete removes a field-permission row
func (s *PermissionsStore) Delete(id uint) error {
	tx := s.db.Where("id = ?", id).Delete(&model.FieldPermission{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrPermissionNotFound
	}
	return nil
}

// Get fetches a row by ID
func (s *PermissionsStore) Get(id uint) (*model.FieldPermission, error) {
	var perm model.FieldPermission
	if err := s.db.Where("id = ?", id).First(&perm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrPermissionNotFound
		}
		return nil, err
	}
	return &perm, nil
}
