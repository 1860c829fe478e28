package endpoints

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/personahq/persona/pkg/model"
	"github.com/personahq/persona/pkg/server"
	"github.com/personahq/persona/pkg/server/store"
	"github.com/personahq/persona/pkg/token"
)

func adminToken(t *testing.T, srv *server.Server) string {
	t.Helper()
	tokenString, err := srv.Signer.Issue(token.Claims{
		UserID: 1,
		Login:  "root",
		Role:   model.RoleAdmin.String(),
	})
	require.NoError(t, err)
	return tokenString
}

func TestAdminFailsClosedForViewer(t *testing.T) {
	srv, _ := newTestServer(t)
	bearer := bearerToken(t, srv, 9, "bob", model.RoleViewer)

	for _, path := range []string{"/admin/stats", "/admin/users", "/admin/identities"} {
		rr := doJSON(srv, "GET", path, bearer, nil)
		assert.Equal(t, http.StatusForbidden, rr.Code, path)
	}
}

func TestAdminFailsClosedForPlainUser(t *testing.T) {
	srv, _ := newTestServer(t)
	bearer := bearerToken(t, srv, 9, "bob", model.RoleUser)

	rr := doJSON(srv, "POST", "/admin/users/9/toggle-status", bearer, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAdminRequiresAuth(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doJSON(srv, "GET", "/admin/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAdminAllowsUserManagerCapability(t *testing.T) {
	srv, stores := newTestServer(t)
	tokenString, err := srv.Signer.Issue(token.Claims{
		UserID:         2,
		Login:          "helpdesk",
		Role:           model.RoleManager.String(),
		CanManageUsers: true,
	})
	require.NoError(t, err)

	stores.users.On("Count").Return(int64(10), nil)
	stores.identities.On("Stats").Return(int64(25), int64(4), nil)

	rr := doJSON(srv, "GET", "/admin/stats", tokenString, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAdminStats(t *testing.T) {
	srv, stores := newTestServer(t)

	stores.users.On("Count").Return(int64(10), nil)
	stores.identities.On("Stats").Return(int64(25), int64(4), nil)

	rr := doJSON(srv, "GET", "/admin/stats", adminToken(t, srv), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	assert.Equal(t, float64(10), body["total_users"])
	assert.Equal(t, float64(25), body["total_identities"])
	assert.Equal(t, float64(4), body["unverified_identities"])
}

func TestAdminListUsersWithRoleFilter(t *testing.T) {
	srv, stores := newTestServer(t)

	manager := model.RoleManager
	stores.users.On("List", mock.MatchedBy(func(filter store.UserFilter) bool {
		return filter.Search == "ali" && filter.Role != nil && *filter.Role == manager
	})).Return([]model.User{{ID: 7, Username: "alice"}}, nil)

	rr := doJSON(srv, "GET", "/admin/users?search=ali&role=manager", adminToken(t, srv), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(1), decodeBody(t, rr)["count"])
}

func TestAdminCreateUserReturnsAPIKeyOnce(t *testing.T) {
	srv, stores := newTestServer(t)

	stores.users.On("Create", mock.MatchedBy(func(user *model.User) bool {
		return user.Username == "carol" && user.IsActive
	}), model.RoleManager, mock.AnythingOfType("string")).Return(nil)

	rr := doJSON(srv, "POST", "/admin/users", adminToken(t, srv), map[string]interface{}{
		"username": "carol",
		"email":    "carol@example.com",
		"role":     "manager",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	body := decodeBody(t, rr)
	assert.NotEmpty(t, body["api_key"])
	assert.Equal(t, "manager", body["role"])
}

func TestAdminCreateUserRequiresUsername(t *testing.T) {
	srv, stores := newTestServer(t)

	rr := doJSON(srv, "POST", "/admin/users", adminToken(t, srv), map[string]interface{}{
		"email": "carol@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	stores.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminToggleUserStatus(t *testing.T) {
	srv, stores := newTestServer(t)

	stores.users.On("Get", uint(7)).Return(&model.User{ID: 7, Username: "alice", IsActive: true}, nil)
	stores.users.On("SetActive", uint(7), false).Return(nil)

	rr := doJSON(srv, "POST", "/admin/users/7/toggle-status", adminToken(t, srv), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, false, decodeBody(t, rr)["is_active"])
}

func TestAdminListIdentitiesVerifiedFilter(t *testing.T) {
	srv, stores := newTestServer(t)

	stores.identities.On("ListAll", mock.MatchedBy(func(filter store.IdentityFilter) bool {
		return filter.Verified != nil && !*filter.Verified
	})).Return([]model.Identity{{ID: 3, UserID: 7, Context: model.ContextLegal}}, nil)

	rr := doJSON(srv, "GET", "/admin/identities?verified=unverified", adminToken(t, srv), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(1), decodeBody(t, rr)["count"])
}

func TestAdminVerifyIdentity(t *testing.T) {
	srv, stores := newTestServer(t)

	stores.identities.On("Verify", uint(3), uint(1), "passport checked").Return(nil)

	rr := doJSON(srv, "POST", "/admin/identities/3/verify", adminToken(t, srv), map[string]interface{}{
		"admin_notes": "passport checked",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, decodeBody(t, rr)["success"])
}

func TestAdminVerifyIdentityNotFound(t *testing.T) {
	srv, stores := newTestServer(t)

	stores.identities.On("Verify", uint(404), uint(1), "").Return(store.ErrIdentityNotFound)

	rr := doJSON(srv, "POST", "/admin/identities/404/verify", adminToken(t, srv), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
