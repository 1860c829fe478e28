package endpoints

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/personahq/persona/pkg/audit"
	"github.com/personahq/persona/pkg/disclosure"
	"github.com/personahq/persona/pkg/model"
	"github.com/personahq/persona/pkg/principal"
	"github.com/personahq/persona/pkg/resolver"
	"github.com/personahq/persona/pkg/server"
	"github.com/personahq/persona/pkg/server/store"
)

// RegisterContextualEndpoints registers the resolver-backed read endpoints
func RegisterContextualEndpoints(srv *server.Server, api *mux.Router) {
	identities := srv.IdentitiesStore
	users := srv.UsersStore
	cfg := srv.Config

	// GET /users/{user_id}/identity - resolve one identity for the
	// requested context and locale, run it through the disclosure filter
	api.HandleFunc("/users/{user_id}/identity", func(w http.ResponseWriter, r *http.Request) {
		p, ok := requirePrincipal(w, r)
		if !ok {
			return
		}
		if !requireScope(w, p, "read") {
			return
		}
		userID, ok := uintVar(r, "user_id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		if _, err := users.Get(userID); err != nil {
			respondWithError(w, http.StatusNotFound, "user not found")
			return
		}

		contextName := r.Header.Get("Accept-Context")
		if contextName == "" {
			contextName = model.ContextDisplay.String()
		}
		requested, err := model.ContextString(contextName)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "unknown context: "+contextName)
			return
		}

		locale := acceptLocale(r, cfg.DefaultLocale)

		owner := p.UserID == userID
		result, err := srv.Resolver.Resolve(userID, requested, locale, resolver.Options{
			Fallback: true,
			Owner:    owner && cfg.AutoProvision,
		})
		if err != nil {
			if errors.Is(err, store.ErrIdentityNotFound) {
				respondWithError(w, http.StatusNotFound, "no identity found")
				return
			}
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		if result.Provisioned {
			audit.Log(audit.ProvisionEvent{
				UserID:   userID,
				Login:    p.Login,
				Locale:   locale,
				ClientIP: clientIPString(p),
			})
		}

		data := discloseIdentity(srv, result.Identity, p)

		if !owner {
			audit.Log(audit.DisclosureEvent{
				IdentityID: result.Identity.ID,
				OwnerID:    result.Identity.UserID,
				AccessedBy: p.UserID,
				Login:      p.Login,
				Context:    requested,
				Fields:     disclosure.Fields(data),
				ClientIP:   clientIPString(p),
				UserAgent:  p.UserAgent,
			})
		}

		respondWithJSON(w, http.StatusOK, data)
	}).Methods("GET")

	// GET /users/{user_id}/identities - own: all active; other users:
	// public active, each run through the disclosure filter
	api.HandleFunc("/users/{user_id}/identities", func(w http.ResponseWriter, r *http.Request) {
		p, ok := requirePrincipal(w, r)
		if !ok {
			return
		}
		if !requireScope(w, p, "read") {
			return
		}
		userID, ok := uintVar(r, "user_id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		if _, err := users.Get(userID); err != nil {
			respondWithError(w, http.StatusNotFound, "user not found")
			return
		}

		var list []model.Identity
		var err error
		if p.UserID == userID {
			list, err = identities.ListByUser(userID, true)
		} else {
			list, err = identities.ListPublicByUser(userID)
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to list identities")
			return
		}

		disclosed := make([]map[string]interface{}, 0, len(list))
		for i := range list {
			data := discloseIdentity(srv, &list[i], p)
			disclosed = append(disclosed, data)

			if p.UserID != userID {
				audit.Log(audit.DisclosureEvent{
					IdentityID: list[i].ID,
					OwnerID:    list[i].UserID,
					AccessedBy: p.UserID,
					Login:      p.Login,
					Context:    list[i].Context,
					Fields:     disclosure.Fields(data),
					ClientIP:   clientIPString(p),
					UserAgent:  p.UserAgent,
				})
			}
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"identities": disclosed,
			"count":      len(disclosed),
		})
	}).Methods("GET")
}

// discloseIdentity loads the identity's permission rows and applies the
// disclosure pipeline. Missing rows never widen, so a load failure simply
// discloses without narrowing for the owner and minimally for others.
func discloseIdentity(srv *server.Server, identity *model.Identity, p *principal.Principal) map[string]interface{} {
	perms, err := srv.PermissionsStore.ListByIdentity(identity.ID)
	if err != nil {
		perms = nil
	}
	return disclosure.Disclose(identity, p, perms)
}

// acceptLocale extracts a ll-CC tag from the Accept-Language header,
// falling back to the configured default.
func acceptLocale(r *http.Request, fallback string) string {
	raw := r.Header.Get("Accept-Language")
	if raw == "" {
		return fallback
	}
	first := strings.TrimSpace(strings.Split(raw, ",")[0])
	if idx := strings.Index(first, ";"); idx >= 0 {
		first = first[:idx]
	}
	if len(first) > 5 {
		first = first[:5]
	}
	if model.ValidateLocale(first) != nil {
		return fallback
	}
	return first
}
