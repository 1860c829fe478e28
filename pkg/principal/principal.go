package principal

import (
	"context"
	"net"
	"strings"

	"github.com/personahq/persona/pkg/model"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Principal.
	Key ContextKey = "principal"
)

// Principal is the authenticated caller of a request. It combines token
// claims with request-specific metadata used by the disclosure filter and
// the audit trail.
type Principal struct {
	// Token claims
	UserID      uint
	Login       string
	Role        model.Role
	IsSuperuser bool
	Scopes      []string

	// Capability flags from the user's role row
	CanManageUsers       bool
	CanViewAllIdentities bool

	// PersonaContext is the context name bound to an OAuth-issued token.
	// Empty for direct-login tokens.
	PersonaContext string

	// Request context
	RemoteIP  net.IP
	UserAgent string
}

// IsAdmin derives admin status from the role and superuser flag alone.
func (p *Principal) IsAdmin() bool {
	return p.Role == model.RoleAdmin || p.IsSuperuser
}

// CanAccessAdminPanel reports whether the caller may use admin operations.
func (p *Principal) CanAccessAdminPanel() bool {
	return p.IsAdmin() || p.CanManageUsers
}

// Owns reports whether the caller owns the given identity.
func (p *Principal) Owns(identity *model.Identity) bool {
	return identity != nil && p.UserID == identity.UserID
}

// HasScope reports whether the token carries the given scope.
func (p *Principal) HasScope(scope string) bool {
	for _, s := range p.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// ParseScopes splits a space-separated scope string.
func ParseScopes(scope string) []string {
	return strings.Fields(scope)
}

// Get retrieves the Principal from context.
func Get(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(Key).(*Principal)
	return p, ok
}

// Set stores the Principal in context.
func Set(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, Key, p)
}
