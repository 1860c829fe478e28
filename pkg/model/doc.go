// Package model defines the database models for persona.
//
// This package contains GORM models that map to the persona database schema.
//
// # Core Models
//
//   - User: account principals that own identities
//   - Credential: API keys for accounts
//   - Identity: context-scoped identity records, one per (user, context, locale)
//   - FieldPermission: per-field disclosure overrides on an identity
//   - ContextPriority: per-user context preference ranking
//   - AccessLog: append-only disclosure audit trail
//   - UserRole: per-user role and capability flags
//   - OAuthClient, OAuthGrant: relying-party registrations and one-time
//     authorization codes for the context-selection flow
//
// # Database Schema
//
// The database uses PostgreSQL with the following key tables:
//
//   - users: account principals
//   - credentials: API keys
//   - identities: identity records
//   - field_permissions: field-level overrides
//   - context_priorities: context preference ranking
//   - access_logs: disclosure audit trail
//   - user_roles: roles and capability flags
//   - oauth_clients, oauth_grants: OAuth flow state
package model
