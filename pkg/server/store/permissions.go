package store

import "github.com/personahq/persona/pkg/model"

// PermissionsStore abstracts field-permission storage.
type PermissionsStore interface {
	// ListByIdentity returns all field-permission rows for an identity.
	ListByIdentity(identityID uint) ([]model.FieldPermission, error)

	// Upsert creates or updates the row for (identity, field_name).
	// Returns the stored row and whether it was newly created.
	Upsert(perm *model.FieldPermission) (created bool, err error)

	// Delete removes a field-permission row. Returns ErrPermissionNotFound.
	Delete(id uint) error

	// Get fetches a row by ID. Returns ErrPermissionNotFound.
	Get(id uint) (*model.FieldPermission, error)
}
