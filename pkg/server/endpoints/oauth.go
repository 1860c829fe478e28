package endpoints

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/personahq/persona/pkg/audit"
	"github.com/personahq/persona/pkg/disclosure"
	"github.com/personahq/persona/pkg/model"
	"github.com/personahq/persona/pkg/resolver"
	"github.com/personahq/persona/pkg/server"
	"github.com/personahq/persona/pkg/server/store"
)

// grantTTL bounds how long an authorization code stays exchangeable.
const grantTTL = 10 * time.Minute

// AuthorizeRequest is the payload for POST /oauth/authorize
type AuthorizeRequest struct {
	ClientID        string `json:"client_id"`
	SelectedContext string `json:"selected_context"`
	Scope           string `json:"scope"`
	Allow           bool   `json:"allow"`
}

// AccessTokenResponse is the payload from POST /oauth/token
type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope,omitempty"`
}

// RegisterOAuthEndpoints registers the OAuth2-style authorization flow
func RegisterOAuthEndpoints(srv *server.Server) {
	identities := srv.IdentitiesStore
	users := srv.UsersStore
	oauth := srv.OAuthStore
	cfg := srv.Config

	authed := srv.Router.PathPrefix("/oauth").Subrouter()
	authed.Use(srv.Auth.Middleware)

	// GET /oauth/authorize - show the consent payload: the client asking
	// and the caller's active identities grouped by context
	authed.HandleFunc("/authorize", func(w http.ResponseWriter, r *http.Request) {
		p, ok := requirePrincipal(w, r)
		if !ok {
			return
		}

		clientID := r.URL.Query().Get("client_id")
		client, err := oauth.GetClient(clientID)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "unknown client")
			return
		}

		list, err := identities.ListByUser(p.UserID, true)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to list identities")
			return
		}

		// First contact: provision a display identity so there is
		// something to consent to.
		if len(list) == 0 && cfg.AutoProvision {
			result, err := srv.Resolver.Resolve(p.UserID, model.ContextDisplay, cfg.DefaultLocale, resolver.Options{
				Fallback: true,
				Owner:    true,
			})
			if err != nil {
				respondWithError(w, http.StatusNotFound, "no identity found")
				return
			}
			if result.Provisioned {
				audit.Log(audit.ProvisionEvent{
					UserID:   p.UserID,
					Login:    p.Login,
					Locale:   cfg.DefaultLocale,
					ClientIP: clientIPString(p),
				})
			}
			list = []model.Identity{*result.Identity}
		}

		grouped := make(map[string][]map[string]interface{})
		for i := range list {
			key := list[i].Context.String()
			grouped[key] = append(grouped[key], map[string]interface{}{
				"id":         list[i].ID,
				"full_name":  list[i].FullName(),
				"locale":     list[i].Locale,
				"is_primary": list[i].IsPrimary,
			})
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"client":     map[string]string{"client_id": client.ClientID, "name": client.Name},
			"scope":      r.URL.Query().Get("scope"),
			"identities": grouped,
		})
	}).Methods("GET")

	// POST /oauth/authorize - consent decision; allow yields a one-time code
	authed.HandleFunc("/authorize", func(w http.ResponseWriter, r *http.Request) {
		p, ok := requirePrincipal(w, r)
		if !ok {
			return
		}

		var req AuthorizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		if !req.Allow {
			respondWithError(w, http.StatusForbidden, "access_denied")
			return
		}

		client, err := oauth.GetClient(req.ClientID)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "unknown client")
			return
		}

		contextName := req.SelectedContext
		if contextName == "" {
			contextName = model.ContextDisplay.String()
		}
		selected, err := model.ContextString(contextName)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "unknown context: "+contextName)
			return
		}

		scope := req.Scope
		if scope == "" {
			scope = "read"
		}

		grant := &model.OAuthGrant{
			Code:      uuid.NewString(),
			ClientID:  client.ClientID,
			UserID:    p.UserID,
			Context:   selected,
			Scope:     scope,
			ExpiresAt: time.Now().Add(grantTTL),
		}
		if err := oauth.CreateGrant(grant); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to create grant")
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"code":         grant.Code,
			"redirect_uri": client.RedirectURI,
			"expires_in":   int(grantTTL.Seconds()),
		})
	}).Methods("POST")

	// POST /oauth/token - exchange a code for an access token. Client
	// credentials are required; the code works at most once.
	srv.Router.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if grantType := r.PostFormValue("grant_type"); grantType != "authorization_code" {
			respondWithError(w, http.StatusBadRequest, "unsupported_grant_type")
			return
		}

		clientID := r.PostFormValue("client_id")
		clientSecret := r.PostFormValue("client_secret")
		code := r.PostFormValue("code")

		client, err := oauth.GetClient(clientID)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "invalid_client")
			return
		}
		if subtle.ConstantTimeCompare([]byte(client.Secret), []byte(clientSecret)) != 1 {
			respondWithError(w, http.StatusUnauthorized, "invalid_client")
			return
		}

		grant, err := oauth.ConsumeGrant(code)
		if err != nil {
			if errors.Is(err, store.ErrGrantNotFound) {
				respondWithError(w, http.StatusBadRequest, "invalid_grant")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "server_error")
			return
		}
		if grant.ClientID != client.ClientID || grant.Expired() {
			respondWithError(w, http.StatusBadRequest, "invalid_grant")
			return
		}

		user, err := users.Get(grant.UserID)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid_grant")
			return
		}
		role, err := users.GetRole(user.ID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "server_error")
			return
		}

		claims := claimsFor(user, role, grant.Scope)
		claims.PersonaContext = grant.Context.String()

		accessToken, err := srv.Signer.Issue(claims)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "server_error")
			return
		}

		respondWithJSON(w, http.StatusOK, AccessTokenResponse{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			ExpiresIn:   cfg.TokenTTL,
			Scope:       grant.Scope,
		})
	}).Methods("POST")

	// GET /oauth/userinfo - the relying party's view of the user, scoped
	// to the context consented to during authorization
	authed.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		p, ok := requirePrincipal(w, r)
		if !ok {
			return
		}

		contextName := p.PersonaContext
		if contextName == "" {
			contextName = model.ContextDisplay.String()
		}
		selected, err := model.ContextString(contextName)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "unknown context: "+contextName)
			return
		}

		result, err := srv.Resolver.Resolve(p.UserID, selected, cfg.DefaultLocale, resolver.Options{
			Fallback: true,
			Owner:    cfg.AutoProvision,
		})
		if err != nil {
			if errors.Is(err, store.ErrIdentityNotFound) {
				respondWithError(w, http.StatusNotFound, "no identity found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "server_error")
			return
		}

		user, err := users.Get(p.UserID)
		if err != nil {
			respondWithError(w, http.StatusNotFound, "user not found")
			return
		}

		// The token's user is the identity owner, so this disclosure
		// runs unfiltered.
		data := discloseIdentity(srv, result.Identity, p)

		data["username"] = user.Username
		data["email"] = user.Email
		data["context_used"] = selected.String()
		data["is_active"] = user.IsActive
		data["date_joined"] = user.CreatedAt.Format(time.RFC3339)

		audit.Log(audit.DisclosureEvent{
			IdentityID: result.Identity.ID,
			OwnerID:    result.Identity.UserID,
			AccessedBy: p.UserID,
			Login:      p.Login,
			Context:    selected,
			Fields:     disclosure.Fields(data),
			ClientIP:   clientIPString(p),
			UserAgent:  p.UserAgent,
		})

		respondWithJSON(w, http.StatusOK, data)
	}).Methods("GET")
}
