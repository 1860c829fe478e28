package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/personahq/persona/pkg/server"
)

// WhoamiResponse represents the response from the /api/v1/whoami endpoint
type WhoamiResponse struct {
	UserID               uint     `json:"user_id"`
	Username             string   `json:"username"`
	Role                 string   `json:"role"`
	IsSuperuser          bool     `json:"is_superuser"`
	CanManageUsers       bool     `json:"can_manage_users"`
	CanViewAllIdentities bool     `json:"can_view_all_identities"`
	Scopes               []string `json:"scopes,omitempty"`
	ClientIP             string   `json:"client_ip,omitempty"`
}

// RegisterWhoamiEndpoint registers the whoami endpoint
func RegisterWhoamiEndpoint(srv *server.Server, api *mux.Router) {
	api.HandleFunc("/whoami", func(w http.ResponseWriter, r *http.Request) {
		p, ok := requirePrincipal(w, r)
		if !ok {
			return
		}

		respondWithJSON(w, http.StatusOK, WhoamiResponse{
			UserID:               p.UserID,
			Username:             p.Login,
			Role:                 p.Role.String(),
			IsSuperuser:          p.IsSuperuser,
			CanManageUsers:       p.CanManageUsers,
			CanViewAllIdentities: p.CanViewAllIdentities,
			Scopes:               p.Scopes,
			ClientIP:             clientIPString(p),
		})
	}).Methods("GET")
}
