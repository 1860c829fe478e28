package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/personahq/persona/pkg/model"
	"github.com/personahq/persona/pkg/server/store"
)

// Ensure PrioritiesStore implements store.PrioritiesStore
var _ store.PrioritiesStore = (*PrioritiesStore)(nil)

// PrioritiesStore implements store.PrioritiesStore using GORM
type PrioritiesStore struct {
	db *gorm.DB
}

// NewPrioritiesStore creates a new PrioritiesStore
func NewPrioritiesStore(db *gorm.DB) *PrioritiesStore {
	return &PrioritiesStore{db: db}
}

// ListByUser returns a user's priority rows ordered by priority asc
func (s *PrioritiesStore) ListByUser(userID uint) ([]model.ContextPriority, error) {
	var priorities []model.ContextPriority
	err := s.db.Where("user_id = ?", userID).Order("priority").Find(&priorities).Error
	if err != nil {
		return nil, err
	}
	return priorities, nil
}

// GetPriority returns the priority for (user, context), defaulting when absent
func (s *PrioritiesStore) GetPriority(userID uint, context model.Context) (int, error) {
	var priority model.ContextPriority
	err := s.db.Where("user_id = ? AND context = ?", userID, context).First(&priority).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.DefaultPriority, nil
		}
		return 0, err
	}
	return priority.Priority, nil
}

// Set creates a priority row
func (s *PrioritiesStore) Set(priority *model.ContextPriority) error {
	if err := s.db.Create(priority).Error; err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicatePriority
		}
		return err
	}
	return nil
}

// Delete removes the row for (user, context). Deleting a missing row is a
// no-op.
func (s *PrioritiesStore) Delete(userID uint, context model.Context) error {
	return s.db.
		Where("user_id = ? AND context = ?", userID, context).
		Delete(&model.ContextPriority{}).Error
}
