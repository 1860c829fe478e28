package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/personahq/persona/pkg/model"
	"github.com/personahq/persona/pkg/server"
	"github.com/personahq/persona/pkg/server/store"
)

// RegisterPermissionsEndpoints registers the owner field-permission endpoints
func RegisterPermissionsEndpoints(srv *server.Server, api *mux.Router) {
	identities := srv.IdentitiesStore
	permissions := srv.PermissionsStore

	// ownedIdentity checks the path identity belongs to the caller.
	ownedIdentity := func(w http.ResponseWriter, r *http.Request, userID uint) (uint, bool) {
		id, ok := uintVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "invalid identity id")
			return 0, false
		}
		if _, err := identities.GetOwned(id, userID); err != nil {
			respondWithError(w, http.StatusNotFound, "identity not found")
			return 0, false
		}
		return id, true
	}

	// GET /identities/{id}/permissions
	api.HandleFunc("/identities/{id}/permissions", func(w http.ResponseWriter, r *http.Request) {
		p, ok := requirePrincipal(w, r)
		if !ok {
			return
		}
		id, ok := ownedIdentity(w, r, p.UserID)
		if !ok {
			return
		}

		perms, err := permissions.ListByIdentity(id)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to list permissions")
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"permissions": perms,
			"count":       len(perms),
		})
	}).Methods("GET")

	// POST /identities/{id}/permissions - upsert on (identity, field_name)
	api.HandleFunc("/identities/{id}/permissions", func(w http.ResponseWriter, r *http.Request) {
		p, ok := requirePrincipal(w, r)
		if !ok {
			return
		}
		if !requireScope(w, p, "write") {
			return
		}
		id, ok := ownedIdentity(w, r, p.UserID)
		if !ok {
			return
		}

		var perm model.FieldPermission
		if err := json.NewDecoder(r.Body).Decode(&perm); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		if perm.FieldName == "" {
			respondWithError(w, http.StatusBadRequest, "field_name is required")
			return
		}
		perm.ID = 0
		perm.IdentityID = id

		created, err := permissions.Upsert(&perm)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to save permission")
			return
		}

		code := http.StatusOK
		if created {
			code = http.StatusCreated
		}
		respondWithJSON(w, code, perm)
	}).Methods("POST")

	// DELETE /identities/{id}/permissions/{perm_id}
	api.HandleFunc("/identities/{id}/permissions/{perm_id}", func(w http.ResponseWriter, r *http.Request) {
		p, ok := requirePrincipal(w, r)
		if !ok {
			return
		}
		if !requireScope(w, p, "write") {
			return
		}
		id, ok := ownedIdentity(w, r, p.UserID)
		if !ok {
			return
		}
		permID, ok := uintVar(r, "perm_id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "invalid permission id")
			return
		}

		perm, err := permissions.Get(permID)
		if err != nil || perm.IdentityID != id {
			respondWithError(w, http.StatusNotFound, "field permission not found")
			return
		}

		if err := permissions.Delete(permID); err != nil {
			if errors.Is(err, store.ErrPermissionNotFound) {
				respondWithError(w, http.StatusNotFound, "field permission not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to delete permission")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}).Methods("DELETE")
}
