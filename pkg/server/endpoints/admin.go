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

// AdminStatsResponse represents the response from /admin/stats
type AdminStatsResponse struct {
	TotalUsers           int64 `json:"total_users"`
	TotalIdentities      int64 `json:"total_identities"`
	UnverifiedIdentities int64 `json:"unverified_identities"`
}

// CreateUserRequest is the payload for POST /admin/users
type CreateUserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// RegisterAdminEndpoints registers the admin-only endpoints. The admin
// subrouter already enforces authentication and admin-panel access.
func RegisterAdminEndpoints(srv *server.Server, admin *mux.Router) {
	identities := srv.IdentitiesStore
	users := srv.UsersStore
	cfg := srv.Config

	// GET /admin/stats
	admin.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		userCount, err := users.Count()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to count users")
			return
		}
		total, unverified, err := identities.Stats()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to count identities")
			return
		}
		respondWithJSON(w, http.StatusOK, AdminStatsResponse{
			TotalUsers:           userCount,
			TotalIdentities:      total,
			UnverifiedIdentities: unverified,
		})
	}).Methods("GET")

	// GET /admin/users
	admin.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		filter := store.UserFilter{Search: r.URL.Query().Get("search")}
		filter.Limit, filter.Offset = pagination(r, cfg)

		if raw := r.URL.Query().Get("role"); raw != "" {
			role, err := model.RoleString(raw)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "unknown role: "+raw)
				return
			}
			filter.Role = &role
		}

		list, err := users.List(filter)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to list users")
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"users": list,
			"count": len(list),
		})
	}).Methods("GET")

	// POST /admin/users - create an account plus role row and API key.
	// The key appears in the response exactly once.
	admin.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		if req.Username == "" {
			respondWithError(w, http.StatusBadRequest, "username is required")
			return
		}

		role := model.RoleUser
		if req.Role != "" {
			parsed, err := model.RoleString(req.Role)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "unknown role: "+req.Role)
				return
			}
			role = parsed
		}

		apiKey, err := model.GenerateAPIKey()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to generate API key")
			return
		}

		user := &model.User{
			Username:  req.Username,
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			IsActive:  true,
		}
		if err := users.Create(user, role, apiKey); err != nil {
			respondWithError(w, http.StatusConflict, "failed to create user")
			return
		}

		respondWithJSON(w, http.StatusCreated, map[string]interface{}{
			"user":    user,
			"role":    role.String(),
			"api_key": apiKey,
		})
	}).Methods("POST")

	// GET /admin/users/{id}
	admin.HandleFunc("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := uintVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		user, err := users.Get(id)
		if err != nil {
			respondWithError(w, http.StatusNotFound, "user not found")
			return
		}
		role, err := users.GetRole(id)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to load role")
			return
		}
		userIdentities, err := identities.ListByUser(id, false)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to list identities")
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"user":       user,
			"role":       role,
			"identities": userIdentities,
		})
	}).Methods("GET")

	// POST /admin/users/{id}/toggle-status
	admin.HandleFunc("/users/{id}/toggle-status", func(w http.ResponseWriter, r *http.Request) {
		id, ok := uintVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		user, err := users.Get(id)
		if err != nil {
			respondWithError(w, http.StatusNotFound, "user not found")
			return
		}

		if err := users.SetActive(id, !user.IsActive); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to update user")
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success":   true,
			"is_active": !user.IsActive,
		})
	}).Methods("POST")

	// GET /admin/identities
	admin.HandleFunc("/identities", func(w http.ResponseWriter, r *http.Request) {
		filter := store.IdentityFilter{Search: r.URL.Query().Get("search")}
		filter.Limit, filter.Offset = pagination(r, cfg)

		if raw := r.URL.Query().Get("context"); raw != "" {
			context, err := model.ContextString(raw)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "unknown context: "+raw)
				return
			}
			filter.Context = &context
		}
		switch r.URL.Query().Get("verified") {
		case "":
		case "true", "verified":
			v := true
			filter.Verified = &v
		case "false", "unverified":
			v := false
			filter.Verified = &v
		default:
			respondWithError(w, http.StatusBadRequest, "invalid verified filter")
			return
		}

		list, err := identities.ListAll(filter)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to list identities")
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"identities": list,
			"count":      len(list),
		})
	}).Methods("GET")

	// GET /admin/identities/{id}
	admin.HandleFunc("/identities/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := uintVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "invalid identity id")
			return
		}

		identity, err := identities.Get(id)
		if err != nil {
			respondWithError(w, http.StatusNotFound, "identity not found")
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"identity":          identity,
			"full_name":         identity.FullName(),
			"is_verified":       identity.IsVerified,
			"admin_notes":       identity.AdminNotes,
			"verification_date": identity.VerificationDate,
			"verified_by":       identity.VerifiedBy,
		})
	}).Methods("GET")

	// POST /admin/identities/{id}/verify
	admin.HandleFunc("/identities/{id}/verify", func(w http.ResponseWriter, r *http.Request) {
		p, ok := requirePrincipal(w, r)
		if !ok {
			return
		}
		id, ok := uintVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "invalid identity id")
			return
		}

		var req struct {
			Notes string `json:"admin_notes"`
		}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&req)
		}

		if err := identities.Verify(id, p.UserID, req.Notes); err != nil {
			audit.Log(audit.VerificationEvent{
				AdminID:      p.UserID,
				Login:        p.Login,
				IdentityID:   id,
				ClientIP:     clientIPString(p),
				Success:      false,
				ErrorMessage: "identity not found",
			})
			if errors.Is(err, store.ErrIdentityNotFound) {
				respondWithError(w, http.StatusNotFound, "identity not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to verify identity")
			return
		}

		audit.Log(audit.VerificationEvent{
			AdminID:    p.UserID,
			Login:      p.Login,
			IdentityID: id,
			ClientIP:   clientIPString(p),
			Success:    true,
		})
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Identity verified",
		})
	}).Methods("POST")
}
