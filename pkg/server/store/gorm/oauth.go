package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/personahq/persona/pkg/model"
	"github.com/personahq/persona/pkg/server/store"
)

// Ensure OAuthStore implements store.OAuthStore
var _ store.OAuthStore = (*OAuthStore)(nil)

// OAuthStore implements store.OAuthStore using GORM
type OAuthStore struct {
	db *gorm.DB
}

// NewOAuthStore creates a new OAuthStore
func NewOAuthStore(db *gorm.DB) *OAuthStore {
	return &OAuthStore{db: db}
}

// GetClient fetches a registered client
func (s *OAuthStore) GetClient(clientID string) (*model.OAuthClient, error) {
	var client model.OAuthClient
	if err := s.db.Where("client_id = ?", clientID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

// CreateClient registers a relying party
func (s *OAuthStore) CreateClient(client *model.OAuthClient) error {
	return s.db.Create(client).Error
}

// CreateGrant stores a one-time authorization code
func (s *OAuthStore) CreateGrant(grant *model.OAuthGrant) error {
	return s.db.Create(grant).Error
}

// ConsumeGrant fetches and deletes a grant in one statement, so concurrent
// exchanges of the same code can succeed at most once.
func (s *OAuthStore) ConsumeGrant(code string) (*model.OAuthGrant, error) {
	var grant model.OAuthGrant
	err := s.db.Raw(`
		DELETE FROM oauth_grants
		WHERE code = ?
		RETURNING code, client_id, user_id, context, scope, expires_at, created_at
	`, code).Scan(&grant).Error
	if err != nil {
		return nil, err
	}
	if grant.Code == "" {
		return nil, store.ErrGrantNotFound
	}
	return &grant, nil
}
