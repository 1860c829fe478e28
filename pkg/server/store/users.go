package store

import "github.com/personahq/persona/pkg/model"

// UserFilter narrows admin user listings.
type UserFilter struct {
	Search string
	Role   *model.Role
	Limit  int
	Offset int
}

// UsersStore abstracts account, role and credential storage.
type UsersStore interface {
	// Get fetches a user by ID. Returns ErrUserNotFound.
	Get(id uint) (*model.User, error)

	// GetByUsername fetches a user by login name. Returns ErrUserNotFound.
	GetByUsername(username string) (*model.User, error)

	// Create inserts a user plus their role row and API-key credential.
	Create(user *model.User, role model.Role, apiKey string) error

	// SetActive toggles a user's active flag.
	SetActive(id uint, active bool) error

	// List returns users for admin screens.
	List(filter UserFilter) ([]model.User, error)

	// Count counts all users.
	Count() (int64, error)

	// GetRole returns the user's role row. A missing row is reported as a
	// default-valued row with Role == model.RoleUser.
	GetRole(userID uint) (*model.UserRole, error)

	// SetRole updates the user's role.
	SetRole(userID uint, role model.Role) error

	// APIKey returns the stored API key for a user.
	APIKey(userID uint) ([]byte, error)

	// RotateAPIKey replaces the user's API key.
	RotateAPIKey(userID uint, apiKey string) error
}
