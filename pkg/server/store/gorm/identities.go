package gorm

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/personahq/persona/pkg/model"
	"github.com/personahq/persona/pkg/server/store"
)

// Ensure IdentitiesStore implements store.IdentitiesStore
var _ store.IdentitiesStore = (*IdentitiesStore)(nil)

// identityOrdering is the canonical listing order.
const identityOrdering = "is_primary desc, context, created_at"

// IdentitiesStore implements store.IdentitiesStore using GORM
type IdentitiesStore struct {
	db *gorm.DB
}

// NewIdentitiesStore creates a new IdentitiesStore
func NewIdentitiesStore(db *gorm.DB) *IdentitiesStore {
	return &IdentitiesStore{db: db}
}

// ListByUser returns a user's identities ordered by (is_primary desc, context, created_at)
func (s *IdentitiesStore) ListByUser(userID uint, activeOnly bool) ([]model.Identity, error) {
	query := s.db.Where("user_id = ?", userID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var identities []model.Identity
	if err := query.Order(identityOrdering).Find(&identities).Error; err != nil {
		return nil, err
	}
	return identities, nil
}

// ListPublicByUser returns a user's active public identities
func (s *IdentitiesStore) ListPublicByUser(userID uint) ([]model.Identity, error) {
	var identities []model.Identity
	err := s.db.
		Where("user_id = ? AND is_active = ? AND visibility = ?", userID, true, model.VisibilityPublic).
		Order(identityOrdering).
		Find(&identities).Error
	if err != nil {
		return nil, err
	}
	return identities, nil
}

// Get fetches an identity by ID
func (s *IdentitiesStore) Get(id uint) (*model.Identity, error) {
	var identity model.Identity
	if err := s.db.Where("id = ?", id).First(&identity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrIdentityNotFound
		}
		return nil, err
	}
	return &identity, nil
}

// GetOwned fetches an identity by ID scoped to its owner
func (s *IdentitiesStore) GetOwned(id, userID uint) (*model.Identity, error) {
	var identity model.Identity
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&identity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrIdentityNotFound
		}
		return nil, err
	}
	return &identity, nil
}

// Create inserts a new identity
func (s *IdentitiesStore) Create(identity *model.Identity) error {
	if err := s.db.Create(identity).Error; err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicateIdentity
		}
		return err
	}
	return nil
}

// Update persists changes to an identity
func (s *IdentitiesStore) Update(identity *model.Identity) error {
	if err := s.db.Save(identity).Error; err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicateIdentity
		}
		return err
	}
	return nil
}

// Delete removes an identity owned by the user. Field permissions and access
// logs go with it via FK cascade.
func (s *IdentitiesStore) Delete(id, userID uint) error {
	tx := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Identity{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrIdentityNotFound
	}
	return nil
}

// SetPrimary makes the given identity the user's only primary one. Clearing
// the old flag and setting the new one commit as a single transaction, so no
// reader observes zero or two primaries.
func (s *IdentitiesStore) SetPrimary(userID, identityID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var identity model.Identity
		if err := tx.Where("id = ? AND user_id = ?", identityID, userID).First(&identity).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrIdentityNotFound
			}
			return err
		}

		if err := tx.Model(&model.Identity{}).
			Where("user_id = ? AND id <> ?", userID, identityID).
			Update("is_primary", false).Error; err != nil {
			return err
		}

		return tx.Model(&model.Identity{}).
			Where("id = ?", identityID).
			Update("is_primary", true).Error
	})
}

// FindExact returns the active identity for (user, context, locale)
func (s *IdentitiesStore) FindExact(userID uint, context model.Context, locale string) (*model.Identity, error) {
	var identity model.Identity
	err := s.db.
		Where("user_id = ? AND context = ? AND locale = ? AND is_active = ?", userID, context, locale, true).
		First(&identity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrIdentityNotFound
		}
		return nil, err
	}
	return &identity, nil
}

// FindByContext returns all active identities for (user, context), primary
// first, then oldest first
func (s *IdentitiesStore) FindByContext(userID uint, context model.Context) ([]model.Identity, error) {
	var identities []model.Identity
	err := s.db.
		Where("user_id = ? AND context = ? AND is_active = ?", userID, context, true).
		Order("is_primary desc, created_at").
		Find(&identities).Error
	if err != nil {
		return nil, err
	}
	return identities, nil
}

// FindPrimary returns the user's active primary identity
func (s *IdentitiesStore) FindPrimary(userID uint) (*model.Identity, error) {
	var identity model.Identity
	err := s.db.
		Where("user_id = ? AND is_primary = ? AND is_active = ?", userID, true, true).
		First(&identity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrIdentityNotFound
		}
		return nil, err
	}
	return &identity, nil
}

// CountByUser counts all identities a user holds, active or not
func (s *IdentitiesStore) CountByUser(userID uint) (int64, error) {
	var count int64
	if err := s.db.Model(&model.Identity{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListAll returns identities across users for admin screens
func (s *IdentitiesStore) ListAll(filter store.IdentityFilter) ([]model.Identity, error) {
	query := s.db.Model(&model.Identity{})

	if filter.Context != nil {
		query = query.Where("context = ?", *filter.Context)
	}
	if filter.Verified != nil {
		query = query.Where("is_verified = ?", *filter.Verified)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"given_name ILIKE ? OR family_name ILIKE ? OR display_name ILIKE ? OR nickname ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	query = query.Order("created_at desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var identities []model.Identity
	if err := query.Find(&identities).Error; err != nil {
		return nil, err
	}
	return identities, nil
}

// Stats returns total and unverified identity counts
func (s *IdentitiesStore) Stats() (int64, int64, error) {
	var total, unverified int64
	if err := s.db.Model(&model.Identity{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := s.db.Model(&model.Identity{}).Where("is_verified = ?", false).Count(&unverified).Error; err != nil {
		return 0, 0, err
	}
	return total, unverified, nil
}

// Verify marks an identity verified by an admin
func (s *IdentitiesStore) Verify(identityID, verifiedBy uint, notes string) error {
	now := time.Now()
	tx := s.db.Model(&model.Identity{}).
		Where("id = ?", identityID).
		Updates(map[string]interface{}{
			"is_verified":       true,
			"verification_date": now,
			"verified_by":       verifiedBy,
			"admin_notes":       notes,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrIdentityNotFound
	}
	return nil
}
