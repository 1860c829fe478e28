package endpoints

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/personahq/persona/pkg/audit"
	"github.com/personahq/persona/pkg/config"
	"github.com/personahq/persona/pkg/model"
	"github.com/personahq/persona/pkg/resolver"
	"github.com/personahq/persona/pkg/server"
	"github.com/personahq/persona/pkg/server/middleware"
	"github.com/personahq/persona/pkg/token"
)

var testSigningKey = []byte("endpoint-test-signing-key-012345")

// testStores bundles one mock per store interface.
type testStores struct {
	identities  *MockIdentitiesStore
	users       *MockUsersStore
	permissions *MockPermissionsStore
	priorities  *MockPrioritiesStore
	oauth       *MockOAuthStore
	accessLogs  *MockAccessLogsStore
	health      *MockHealthStore
}

// newTestServer builds a server over mock stores with all routes registered.
func newTestServer(t *testing.T) (*server.Server, *testStores) {
	t.Helper()
	audit.SetEnabled(false)
	t.Cleanup(func() { audit.SetEnabled(true) })

	stores := &testStores{
		identities:  &MockIdentitiesStore{},
		users:       &MockUsersStore{},
		permissions: &MockPermissionsStore{},
		priorities:  &MockPrioritiesStore{},
		oauth:       &MockOAuthStore{},
		accessLogs:  &MockAccessLogsStore{},
		health:      &MockHealthStore{},
	}

	cfg := &config.PersonaConfig{
		DefaultLocale:   "en-US",
		TokenTTL:        3600,
		AutoProvision:   true,
		AuditEnabled:    true,
		APIListLimitMax: 1000,
	}
	signer := token.NewSigner(testSigningKey, time.Minute)

	srv := &server.Server{
		Router: mux.NewRouter().UseEncodedPath(),
		Config: cfg,
		Signer: signer,
		Auth:   middleware.NewAuthenticator(signer, cfg),

		IdentitiesStore:  stores.identities,
		UsersStore:       stores.users,
		PermissionsStore: stores.permissions,
		PrioritiesStore:  stores.priorities,
		OAuthStore:       stores.oauth,
		AccessLogsStore:  stores.accessLogs,
		HealthStore:      stores.health,

		Resolver: resolver.New(stores.identities, stores.priorities, stores.users),
	}
	RegisterAll(srv)
	return srv, stores
}

// bearerToken issues a test token for the given user and role.
func bearerToken(t *testing.T, srv *server.Server, userID uint, login string, role model.Role) string {
	t.Helper()
	tokenString, err := srv.Signer.Issue(token.Claims{
		UserID: userID,
		Login:  login,
		Role:   role.String(),
		Scope:  "read write",
	})
	require.NoError(t, err)
	return tokenString
}

// doJSON performs a request against the router and returns the recorder.
func doJSON(srv *server.Server, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "203.0.113.50:41000"
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	srv.Router.ServeHTTP(rr, req)
	return rr
}

// decodeBody unmarshals a JSON response body into a map.
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	return payload
}
