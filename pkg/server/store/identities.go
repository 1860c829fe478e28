package store

import "github.com/personahq/persona/pkg/model"

// IdentityFilter narrows admin identity listings.
type IdentityFilter struct {
	Search   string
	Context  *model.Context
	Verified *bool
	Limit    int
	Offset   int
}

// IdentitiesStore abstracts identity record storage.
type IdentitiesStore interface {
	// ListByUser returns a user's identities ordered by
	// (is_primary desc, context, created_at).
	ListByUser(userID uint, activeOnly bool) ([]model.Identity, error)

	// ListPublicByUser returns a user's active public identities.
	ListPublicByUser(userID uint) ([]model.Identity, error)

	// Get fetches an identity by ID. Returns ErrIdentityNotFound.
	Get(id uint) (*model.Identity, error)

	// GetOwned fetches an identity by ID scoped to its owner.
	GetOwned(id, userID uint) (*model.Identity, error)

	// Create inserts a new identity. Returns ErrDuplicateIdentity when the
	// (user, context, locale) key is taken.
	Create(identity *model.Identity) error

	// Update persists changes to an identity.
	Update(identity *model.Identity) error

	// Delete removes an identity and cascades to its field permissions and
	// access logs.
	Delete(id, userID uint) error

	// SetPrimary atomically makes the given identity the user's only primary
	// one. Returns ErrIdentityNotFound when the identity is not owned by the
	// user.
	SetPrimary(userID, identityID uint) error

	// FindExact returns the active identity for (user, context, locale).
	FindExact(userID uint, context model.Context, locale string) (*model.Identity, error)

	// FindByContext returns all active identities for (user, context),
	// primary first, then oldest created_at first.
	FindByContext(userID uint, context model.Context) ([]model.Identity, error)

	// FindPrimary returns the user's active primary identity.
	FindPrimary(userID uint) (*model.Identity, error)

	// CountByUser counts all identities a user holds, active or not.
	CountByUser(userID uint) (int64, error)

	// ListAll returns identities across users for admin screens.
	ListAll(filter IdentityFilter) ([]model.Identity, error)

	// Stats returns total and unverified identity counts.
	Stats() (total int64, unverified int64, err error)

	// Verify marks an identity verified by an admin.
	Verify(identityID, verifiedBy uint, notes string) error
}
