package store

import "github.com/personahq/persona/pkg/model"

// AccessLogsStore is the read side of the audit trail. Writes go through
// pkg/audit; there is deliberately no update or delete operation.
type AccessLogsStore interface {
	// ListByIdentity returns log entries for an identity, newest first.
	ListByIdentity(identityID uint, limit, offset int) ([]model.AccessLog, error)
}
