// Package store provides storage abstractions for the persona server.
//
// This package defines interfaces for database operations, allowing the
// server endpoints and the resolver to be decoupled from the specific
// database implementation. This enables easier testing with mocks and
// potential support for different storage backends.
//
// # Available Stores
//
//   - IdentitiesStore: identity records, primary-flag management, auto-provisioning
//   - PermissionsStore: field-permission rows per identity
//   - PrioritiesStore: per-user context priority table
//   - UsersStore: accounts, roles, credentials
//   - OAuthStore: relying-party clients and one-time grants
//   - AccessLogsStore: read side of the audit trail (writes go through pkg/audit)
//   - HealthStore: liveness checks
//
// # Usage
//
//	identities := gorm.NewIdentitiesStore(db)
//	identity, err := identities.FindExact(userID, model.ContextLegal, "en-US")
//	if err != nil {
//	    if errors.Is(err, store.ErrIdentityNotFound) {
//	        // Handle not found
//	    }
//	}
package store
