package endpoints

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/personahq/persona/pkg/config"
	"github.com/personahq/persona/pkg/model"
	"github.com/personahq/persona/pkg/principal"
	"github.com/personahq/persona/pkg/token"
)

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// uintVar parses a numeric path variable.
func uintVar(r *http.Request, name string) (uint, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// pagination parses limit/offset query params, clamping limit to the
// configured maximum.
func pagination(r *http.Request, cfg *config.PersonaConfig) (limit, offset int) {
	limit = 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if cfg != nil && cfg.APIListLimitMax > 0 && limit > cfg.APIListLimitMax {
		limit = cfg.APIListLimitMax
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			offset = n
		}
	}
	return limit, offset
}

// requirePrincipal pulls the authenticated principal off the request,
// writing a 401 when the middleware did not run.
func requirePrincipal(w http.ResponseWriter, r *http.Request) (*principal.Principal, bool) {
	p, ok := principal.Get(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}
	return p, true
}

// requireScope enforces OAuth scopes on tokens that carry them. Tokens
// without any scope claim (direct logins) pass.
func requireScope(w http.ResponseWriter, p *principal.Principal, scope string) bool {
	if len(p.Scopes) == 0 || p.HasScope(scope) {
		return true
	}
	respondWithError(w, http.StatusForbidden, "insufficient scope: "+scope+" required")
	return false
}

// claimsFor builds token claims from a user account and its role row.
func claimsFor(user *model.User, role *model.UserRole, scope string) token.Claims {
	return token.Claims{
		UserID:               user.ID,
		Login:                user.Username,
		Role:                 role.Role.String(),
		IsSuperuser:          user.IsSuperuser,
		CanManageUsers:       role.CanManageUsers,
		CanViewAllIdentities: role.CanViewAllIdentities,
		Scope:                scope,
	}
}

// clientIPString renders the principal's remote IP for audit records.
func clientIPString(p *principal.Principal) string {
	if p == nil || p.RemoteIP == nil {
		return ""
	}
	return p.RemoteIP.String()
}
