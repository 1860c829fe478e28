package endpoints

import (
	"crypto/subtle"
	"net/http"

	"github.com/personahq/persona/pkg/audit"
	"github.com/personahq/persona/pkg/model"
	"github.com/personahq/persona/pkg/server"
	"github.com/personahq/persona/pkg/server/middleware"
)

// TokenResponse represents an issued access token
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"`
}

// RegisterAuthenticateEndpoints registers the Basic-auth login and API-key
// rotation endpoints
func RegisterAuthenticateEndpoints(srv *server.Server) {
	users := srv.UsersStore
	router := srv.Router

	clientIP := func(r *http.Request) string {
		if ip := middleware.RemoteIP(r, srv.Config); ip != nil {
			return ip.String()
		}
		return ""
	}

	// authenticate validates Basic credentials against the stored API key.
	// Every failure path looks identical to the caller.
	authenticate := func(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
		username, apiKey, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="Persona"`)
			http.Error(w, "Authorization required", http.StatusUnauthorized)
			return nil, false
		}

		fail := func(reason string) {
			audit.Log(audit.AuthenticateEvent{
				Login:        username,
				ClientIP:     clientIP(r),
				Success:      false,
				ErrorMessage: reason,
			})
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		}

		user, err := users.GetByUsername(username)
		if err != nil {
			fail("unknown user")
			return nil, false
		}
		if !user.IsActive {
			fail("account disabled")
			return nil, false
		}

		stored, err := users.APIKey(user.ID)
		if err != nil {
			fail("no credential")
			return nil, false
		}
		if subtle.ConstantTimeCompare(stored, []byte(apiKey)) != 1 {
			fail("invalid credentials")
			return nil, false
		}

		return user, true
	}

	// GET /authn/login - Basic auth with username + API key, returns a JWT
	router.HandleFunc(
		"/authn/login",
		func(w http.ResponseWriter, r *http.Request) {
			user, ok := authenticate(w, r)
			if !ok {
				return
			}

			role, err := users.GetRole(user.ID)
			if err != nil {
				http.Error(w, "Failed to load role", http.StatusInternalServerError)
				return
			}

			tokenString, err := srv.Signer.Issue(claimsFor(user, role, "read write"))
			if err != nil {
				http.Error(w, "Failed to issue token", http.StatusInternalServerError)
				return
			}

			audit.Log(audit.AuthenticateEvent{
				Login:    user.Username,
				ClientIP: clientIP(r),
				Success:  true,
			})

			respondWithJSON(w, http.StatusOK, TokenResponse{
				Token:     tokenString,
				TokenType: "Bearer",
				ExpiresIn: srv.Config.TokenTTL,
			})
		},
	).Methods("GET")

	// PUT /authn/api_key - rotate own API key, authenticated with the
	// current key. Returns the new key as plain text, shown exactly once.
	router.HandleFunc(
		"/authn/api_key",
		func(w http.ResponseWriter, r *http.Request) {
			user, ok := authenticate(w, r)
			if !ok {
				return
			}

			newKey, err := model.GenerateAPIKey()
			if err != nil {
				http.Error(w, "Failed to generate API key", http.StatusInternalServerError)
				return
			}

			if err := users.RotateAPIKey(user.ID, newKey); err != nil {
				audit.Log(audit.APIKeyRotationEvent{
					Login:        user.Username,
					ClientIP:     clientIP(r),
					Success:      false,
					ErrorMessage: "rotation failed",
				})
				http.Error(w, "Failed to rotate API key", http.StatusInternalServerError)
				return
			}

			audit.Log(audit.APIKeyRotationEvent{
				Login:    user.Username,
				ClientIP: clientIP(r),
				Success:  true,
			})

			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte(newKey))
		},
	).Methods("PUT")
}
