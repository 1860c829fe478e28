package endpoints

import (
	"net/http"

	"github.com/personahq/persona/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoints(srv)
	RegisterAuthenticateEndpoints(srv)
	RegisterOAuthEndpoints(srv)

	// Owner API: everything under /api/v1 requires a bearer token
	api := srv.Router.PathPrefix("/api/v1").Subrouter()
	api.Use(srv.Auth.Middleware)
	RegisterWhoamiEndpoint(srv, api)
	RegisterIdentitiesEndpoints(srv, api)
	RegisterContextualEndpoints(srv, api)
	RegisterPermissionsEndpoints(srv, api)
	RegisterPrioritiesEndpoints(srv, api)

	// Admin API fails closed: authenticated non-admins get a 403
	admin := srv.Router.PathPrefix("/admin").Subrouter()
	admin.Use(srv.Auth.Middleware, requireAdmin)
	RegisterAdminEndpoints(srv, admin)
}

// requireAdmin rejects principals without admin-panel access.
func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := requirePrincipal(w, r)
		if !ok {
			return
		}
		if !p.CanAccessAdminPanel() {
			respondWithError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
