package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/personahq/persona/pkg/audit"
	"github.com/personahq/persona/pkg/model"
	"github.com/personahq/persona/pkg/server"
	"github.com/personahq/persona/pkg/server/store"
)

// RegisterIdentitiesEndpoints registers the owner identity CRUD endpoints
func RegisterIdentitiesEndpoints(srv *server.Server, api *mux.Router) {
	identities := srv.IdentitiesStore
	accessLogs := srv.AccessLogsStore
	cfg := srv.Config

	// GET /identities - list the caller's identities
	api.HandleFunc("/identities", func(w http.ResponseWriter, r *http.Request) {
		p, ok := requirePrincipal(w, r)
		if !ok {
			return
		}
		if !requireScope(w, p, "read") {
			return
		}

		list, err := identities.ListByUser(p.UserID, false)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to list identities")
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"identities": list,
			"count":      len(list),
		})
	}).Methods("GET")

	// POST /identities - create a new identity for the caller
	api.HandleFunc("/identities", func(w http.ResponseWriter, r *http.Request) {
		p, ok := requirePrincipal(w, r)
		if !ok {
			return
		}
		if !requireScope(w, p, "write") {
			return
		}

		// The context field must be spelled out; a missing value would
		// otherwise decode to the zero context.
		var body struct {
			model.Identity
			Context *model.Context `json:"context"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		if body.Context == nil {
			respondWithError(w, http.StatusBadRequest, "context is required")
			return
		}

		identity := body.Identity
		identity.Context = *body.Context
		identity.ID = 0
		identity.UserID = p.UserID
		identity.IsActive = true
		identity.IsVerified = false
		identity.VerificationDate = nil
		identity.VerifiedBy = nil
		identity.AdminNotes = ""

		if identity.Locale == "" {
			identity.Locale = cfg.DefaultLocale
		}
		if !identity.Context.IsAContext() {
			respondWithError(w, http.StatusBadRequest, "unknown context")
			return
		}
		if err := model.ValidateLocale(identity.Locale); err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if identity.GivenName == "" || identity.FamilyName == "" {
			respondWithError(w, http.StatusBadRequest, "given_name and family_name are required")
			return
		}

		if err := identities.Create(&identity); err != nil {
			if errors.Is(err, store.ErrDuplicateIdentity) {
				respondWithError(w, http.StatusConflict, "identity already exists for this context and locale")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to create identity")
			return
		}
		respondWithJSON(w, http.StatusCreated, identity)
	}).Methods("POST")

	// GET /identities/{id}
	api.HandleFunc("/identities/{id}", func(w http.ResponseWriter, r *http.Request) {
		p, ok := requirePrincipal(w, r)
		if !ok {
			return
		}
		id, ok := uintVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "invalid identity id")
			return
		}

		identity, err := identities.GetOwned(id, p.UserID)
		if err != nil {
			respondWithError(w, http.StatusNotFound, "identity not found")
			return
		}
		respondWithJSON(w, http.StatusOK, identity)
	}).Methods("GET")

	// PUT /identities/{id} - update profile fields. Context, locale and
	// verification state are immutable through this endpoint.
	api.HandleFunc("/identities/{id}", func(w http.ResponseWriter, r *http.Request) {
		p, ok := requirePrincipal(w, r)
		if !ok {
			return
		}
		if !requireScope(w, p, "write") {
			return
		}
		id, ok := uintVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "invalid identity id")
			return
		}

		existing, err := identities.GetOwned(id, p.UserID)
		if err != nil {
			respondWithError(w, http.StatusNotFound, "identity not found")
			return
		}

		updated := *existing
		if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}

		updated.ID = existing.ID
		updated.UserID = existing.UserID
		updated.Context = existing.Context
		updated.Locale = existing.Locale
		updated.IsPrimary = existing.IsPrimary
		updated.CreatedAt = existing.CreatedAt
		updated.AdminNotes = existing.AdminNotes
		updated.IsVerified = existing.IsVerified
		updated.VerificationDate = existing.VerificationDate
		updated.VerifiedBy = existing.VerifiedBy

		if updated.GivenName == "" || updated.FamilyName == "" {
			respondWithError(w, http.StatusBadRequest, "given_name and family_name are required")
			return
		}

		if err := identities.Update(&updated); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to update identity")
			return
		}
		respondWithJSON(w, http.StatusOK, updated)
	}).Methods("PUT")

	// DELETE /identities/{id}
	api.HandleFunc("/identities/{id}", func(w http.ResponseWriter, r *http.Request) {
		p, ok := requirePrincipal(w, r)
		if !ok {
			return
		}
		if !requireScope(w, p, "write") {
			return
		}
		id, ok := uintVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "invalid identity id")
			return
		}

		if err := identities.Delete(id, p.UserID); err != nil {
			if errors.Is(err, store.ErrIdentityNotFound) {
				respondWithError(w, http.StatusNotFound, "identity not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to delete identity")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}).Methods("DELETE")

	// POST /identities/{id}/set_primary - atomic primary switch
	api.HandleFunc("/identities/{id}/set_primary", func(w http.ResponseWriter, r *http.Request) {
		p, ok := requirePrincipal(w, r)
		if !ok {
			return
		}
		if !requireScope(w, p, "write") {
			return
		}
		id, ok := uintVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "invalid identity id")
			return
		}

		if err := identities.SetPrimary(p.UserID, id); err != nil {
			audit.Log(audit.PrimaryChangeEvent{
				UserID:       p.UserID,
				Login:        p.Login,
				IdentityID:   id,
				ClientIP:     clientIPString(p),
				Success:      false,
				ErrorMessage: err.Error(),
			})
			if errors.Is(err, store.ErrIdentityNotFound) {
				respondWithError(w, http.StatusNotFound, "identity not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to set primary identity")
			return
		}

		audit.Log(audit.PrimaryChangeEvent{
			UserID:     p.UserID,
			Login:      p.Login,
			IdentityID: id,
			ClientIP:   clientIPString(p),
			Success:    true,
		})
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Primary identity updated",
		})
	}).Methods("POST")

	// GET /identities/{id}/access-log - the owner's view of who saw what
	api.HandleFunc("/identities/{id}/access-log", func(w http.ResponseWriter, r *http.Request) {
		p, ok := requirePrincipal(w, r)
		if !ok {
			return
		}
		id, ok := uintVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "invalid identity id")
			return
		}

		if _, err := identities.GetOwned(id, p.UserID); err != nil {
			respondWithError(w, http.StatusNotFound, "identity not found")
			return
		}

		limit, offset := pagination(r, cfg)
		logs, err := accessLogs.ListByIdentity(id, limit, offset)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to list access log")
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"access_log": logs,
			"count":      len(logs),
		})
	}).Methods("GET")
}
