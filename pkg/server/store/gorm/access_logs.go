package gorm

import (
	"gorm.io/gorm"

	"github.com/personahq/persona/pkg/model"
	"github.com/personahq/persona/pkg/server/store"
)

// Ensure AccessLogsStore implements store.AccessLogsStore
var _ store.AccessLogsStore = (*AccessLogsStore)(nil)

// AccessLogsStore implements store.AccessLogsStore using GORM. It is read
// only: rows are written by pkg/audit.
type AccessLogsStore struct {
	db *gorm.DB
}

// NewAccessLogsStore creates a new AccessLogsStore
func NewAccessLogsStore(db *gorm.DB) *AccessLogsStore {
	return &AccessLogsStore{db: db}
}

// ListByIdentity returns log entries for an identity, newest first
func (s *AccessLogsStore) ListByIdentity(identityID uint, limit, offset int) ([]model.AccessLog, error) {
	query := s.db.Where("identity_id = ?", identityID).Order("timestamp desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var logs []model.AccessLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
