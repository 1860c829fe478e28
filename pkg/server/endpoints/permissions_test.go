package endpoints

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/personahq/persona/pkg/model"
	"github.com/personahq/persona/pkg/server/store"
)

func TestListPermissions(t *testing.T) {
	srv, stores := newTestServer(t)
	bearer := bearerToken(t, srv, 7, "alice", model.RoleUser)

	stores.identities.On("GetOwned", uint(1), uint(7)).Return(&model.Identity{ID: 1, UserID: 7}, nil)
	stores.permissions.On("ListByIdentity", uint(1)).Return([]model.FieldPermission{
		{ID: 5, IdentityID: 1, FieldName: "phone", PermissionLevel: model.PermissionLevelNone},
	}, nil)

	rr := doJSON(srv, "GET", "/api/v1/identities/1/permissions", bearer, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(1), decodeBody(t, rr)["count"])
}

func TestUpsertPermissionCreates(t *testing.T) {
	srv, stores := newTestServer(t)
	bearer := bearerToken(t, srv, 7, "alice", model.RoleUser)

	stores.identities.On("GetOwned", uint(1), uint(7)).Return(&model.Identity{ID: 1, UserID: 7}, nil)
	stores.permissions.On("Upsert", mock.MatchedBy(func(perm *model.FieldPermission) bool {
		return perm.IdentityID == 1 && perm.FieldName == "phone"
	})).Return(true, nil)

	rr := doJSON(srv, "POST", "/api/v1/identities/1/permissions", bearer, map[string]interface{}{
		"field_name":       "phone",
		"permission_level": "none",
	})
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestUpsertPermissionUpdates(t *testing.T) {
	srv, stores := newTestServer(t)
	bearer := bearerToken(t, srv, 7, "alice", model.RoleUser)

	stores.identities.On("GetOwned", uint(1), uint(7)).Return(&model.Identity{ID: 1, UserID: 7}, nil)
	stores.permissions.On("Upsert", mock.Anything).Return(false, nil)

	rr := doJSON(srv, "POST", "/api/v1/identities/1/permissions", bearer, map[string]interface{}{
		"field_name":       "phone",
		"permission_level": "read",
		"allowed_users":    []uint{9},
	})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestUpsertPermissionRequiresFieldName(t *testing.T) {
	srv, stores := newTestServer(t)
	bearer := bearerToken(t, srv, 7, "alice", model.RoleUser)

	stores.identities.On("GetOwned", uint(1), uint(7)).Return(&model.Identity{ID: 1, UserID: 7}, nil)

	rr := doJSON(srv, "POST", "/api/v1/identities/1/permissions", bearer, map[string]interface{}{
		"permission_level": "read",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	stores.permissions.AssertNotCalled(t, "Upsert", mock.Anything)
}

func TestPermissionsForeignIdentity(t *testing.T) {
	srv, stores := newTestServer(t)
	bearer := bearerToken(t, srv, 9, "bob", model.RoleUser)

	stores.identities.On("GetOwned", uint(1), uint(9)).Return(nil, store.ErrIdentityNotFound)

	rr := doJSON(srv, "GET", "/api/v1/identities/1/permissions", bearer, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeletePermission(t *testing.T) {
	srv, stores := newTestServer(t)
	bearer := bearerToken(t, srv, 7, "alice", model.RoleUser)

	stores.identities.On("GetOwned", uint(1), uint(7)).Return(&model.Identity{ID: 1, UserID: 7}, nil)
	stores.permissions.On("Get", uint(5)).Return(&model.FieldPermission{ID: 5, IdentityID: 1}, nil)
	stores.permissions.On("Delete", uint(5)).Return(nil)

	rr := doJSON(srv, "DELETE", "/api/v1/identities/1/permissions/5", bearer, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestDeletePermissionWrongIdentity(t *testing.T) {
	srv, stores := newTestServer(t)
	bearer := bearerToken(t, srv, 7, "alice", model.RoleUser)

	stores.identities.On("GetOwned", uint(1), uint(7)).Return(&model.Identity{ID: 1, UserID: 7}, nil)
	stores.permissions.On("Get", uint(5)).Return(&model.FieldPermission{ID: 5, IdentityID: 99}, nil)

	rr := doJSON(srv, "DELETE", "/api/v1/identities/1/permissions/5", bearer, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	stores.permissions.AssertNotCalled(t, "Delete", mock.Anything)
}
