// Package middleware provides HTTP middleware for the persona API server.
package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/personahq/persona/pkg/config"
	"github.com/personahq/persona/pkg/model"
	"github.com/personahq/persona/pkg/principal"
	"github.com/personahq/persona/pkg/token"
)

// Authenticator is middleware that validates bearer tokens and attaches the
// authenticated principal to the request context.
type Authenticator struct {
	Signer *token.Signer
	Config *config.PersonaConfig
}

// NewAuthenticator creates a new bearer-token authenticator middleware
func NewAuthenticator(signer *token.Signer, cfg *config.PersonaConfig) *Authenticator {
	return &Authenticator{Signer: signer, Config: cfg}
}

// Middleware returns an HTTP middleware that validates bearer tokens
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Authorization missing"))
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Malformed authorization header"))
			return
		}

		claims, err := a.Signer.Parse(tokenString)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Invalid authorization token"))
			return
		}

		role, err := model.RoleString(claims.Role)
		if err != nil {
			role = model.RoleUser
		}

		p := &principal.Principal{
			UserID:               claims.UserID,
			Login:                claims.Login,
			Role:                 role,
			IsSuperuser:          claims.IsSuperuser,
			Scopes:               principal.ParseScopes(claims.Scope),
			CanManageUsers:       claims.CanManageUsers,
			CanViewAllIdentities: claims.CanViewAllIdentities,
			PersonaContext:       claims.PersonaContext,
			RemoteIP:             RemoteIP(r, a.Config),
			UserAgent:            r.UserAgent(),
		}

		next.ServeHTTP(w, r.WithContext(principal.Set(r.Context(), p)))
	})
}

// RemoteIP determines the client address for a request. X-Forwarded-For is
// honored only when the direct peer is a trusted proxy, otherwise a spoofed
// header would poison the audit trail.
func RemoteIP(r *http.Request, cfg *config.PersonaConfig) net.IP {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	peer := net.ParseIP(host)

	if peer == nil || cfg == nil || !cfg.IsTrustedProxy(peer.String()) {
		return peer
	}

	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded == "" {
		return peer
	}

	// The leftmost entry is the originating client.
	first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
	if ip := net.ParseIP(first); ip != nil {
		return ip
	}
	return peer
}
