package store

import "github.com/personahq/persona/pkg/model"

// PrioritiesStore abstracts the per-user context priority table.
type PrioritiesStore interface {
	// ListByUser returns a user's priority rows ordered by priority asc.
	ListByUser(userID uint) ([]model.ContextPriority, error)

	// GetPriority returns the priority for (user, context), or
	// model.DefaultPriority when no row exists.
	GetPriority(userID uint, context model.Context) (int, error)

	// Set creates a priority row. Returns ErrDuplicatePriority when the
	// (user, context) key is taken.
	Set(priority *model.ContextPriority) error

	// Delete removes the row for (user, context).
	Delete(userID uint, context model.Context) error
}
