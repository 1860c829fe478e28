package store

import "github.com/personahq/persona/pkg/model"

// OAuthStore abstracts relying-party registrations and authorization grants.
type OAuthStore interface {
	// GetClient fetches a registered client. Returns ErrClientNotFound.
	GetClient(clientID string) (*model.OAuthClient, error)

	// CreateClient registers a relying party.
	CreateClient(client *model.OAuthClient) error

	// CreateGrant stores a one-time authorization code.
	CreateGrant(grant *model.OAuthGrant) error

	// ConsumeGrant atomically fetches and deletes a grant by code, so a code
	// can be exchanged at most once. Returns ErrGrantNotFound on reuse.
	ConsumeGrant(code string) (*model.OAuthGrant, error)
}
