package resolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/personahq/persona/pkg/model"
	"github.com/personahq/persona/pkg/server/store"
)

func newResolver() (*Resolver, *MockIdentitiesStore, *MockPrioritiesStore, *MockUsersStore) {
	identities := &MockIdentitiesStore{}
	priorities := &MockPrioritiesStore{}
	users := &MockUsersStore{}
	return New(identities, priorities, users), identities, priorities, users
}

func TestResolveExactMatch(t *testing.T) {
	r, identities, _, _ := newResolver()

	want := &model.Identity{ID: 1, UserID: 10, Context: model.ContextLegal, Locale: "en-US"}
	identities.On("FindExact", uint(10), model.ContextLegal, "en-US").Return(want, nil)

	result, err := r.Resolve(10, model.ContextLegal, "en-US", DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, want, result.Identity)
	assert.False(t, result.Provisioned)
	identities.AssertExpectations(t)
}

func TestResolveLocaleRelaxedFallback(t *testing.T) {
	r, identities, _, _ := newResolver()

	want := model.Identity{ID: 2, UserID: 10, Context: model.ContextLegal, Locale: "fr-FR"}
	identities.On("FindExact", uint(10), model.ContextLegal, "en-US").Return(nil, store.ErrIdentityNotFound)
	identities.On("FindByContext", uint(10), model.ContextLegal).Return([]model.Identity{want}, nil)

	result, err := r.Resolve(10, model.ContextLegal, "en-US", DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, want.ID, result.Identity.ID)
	identities.AssertExpectations(t)
}

func TestResolveLocaleRelaxedFallbackPrefersPrimary(t *testing.T) {
	r, identities, _, _ := newResolver()

	primary := model.Identity{
		ID: 1, UserID: 10, Context: model.ContextSocial, Locale: "en-US",
		IsPrimary: true, CreatedAt: time.Now().Add(-time.Hour),
	}
	newer := model.Identity{
		ID: 2, UserID: 10, Context: model.ContextSocial, Locale: "fr-FR",
		CreatedAt: time.Now(),
	}

	identities.On("FindExact", uint(10), model.ContextSocial, "de-DE").Return(nil, store.ErrIdentityNotFound)
	// The store orders candidates primary first, then oldest first.
	identities.On("FindByContext", uint(10), model.ContextSocial).Return([]model.Identity{primary, newer}, nil)

	result, err := r.Resolve(10, model.ContextSocial, "de-DE", DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, uint(1), result.Identity.ID, "the primary identity should beat a newer non-primary one")
}

func TestResolvePrimaryFallback(t *testing.T) {
	r, identities, _, _ := newResolver()

	primary := &model.Identity{ID: 3, UserID: 10, Context: model.ContextDisplay, IsPrimary: true}
	identities.On("FindExact", uint(10), model.ContextLegal, "en-US").Return(nil, store.ErrIdentityNotFound)
	identities.On("FindByContext", uint(10), model.ContextLegal).Return([]model.Identity{}, nil)
	identities.On("FindPrimary", uint(10)).Return(primary, nil)

	result, err := r.Resolve(10, model.ContextLegal, "en-US", DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, primary, result.Identity)
	identities.AssertExpectations(t)
}

func TestResolvePriorityFallback(t *testing.T) {
	r, identities, priorities, _ := newResolver()

	older := model.Identity{ID: 4, UserID: 10, Context: model.ContextSocial, CreatedAt: time.Now().Add(-time.Hour)}
	newer := model.Identity{ID: 5, UserID: 10, Context: model.ContextProfessional, CreatedAt: time.Now()}

	identities.On("FindExact", uint(10), model.ContextLegal, "en-US").Return(nil, store.ErrIdentityNotFound)
	identities.On("FindByContext", uint(10), model.ContextLegal).Return([]model.Identity{}, nil)
	identities.On("FindPrimary", uint(10)).Return(nil, store.ErrIdentityNotFound)
	identities.On("ListByUser", uint(10), true).Return([]model.Identity{older, newer}, nil)
	priorities.On("GetPriority", uint(10), model.ContextSocial).Return(5, nil)
	priorities.On("GetPriority", uint(10), model.ContextProfessional).Return(1, nil)

	result, err := r.Resolve(10, model.ContextLegal, "en-US", DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, uint(5), result.Identity.ID, "lowest priority value should win")
}

func TestResolvePriorityTieBreaksOnCreatedAt(t *testing.T) {
	r, identities, priorities, _ := newResolver()

	older := model.Identity{ID: 4, UserID: 10, Context: model.ContextSocial, CreatedAt: time.Now().Add(-time.Hour)}
	newer := model.Identity{ID: 5, UserID: 10, Context: model.ContextProfessional, CreatedAt: time.Now()}

	identities.On("FindExact", uint(10), model.ContextLegal, "en-US").Return(nil, store.ErrIdentityNotFound)
	identities.On("FindByContext", uint(10), model.ContextLegal).Return([]model.Identity{}, nil)
	identities.On("FindPrimary", uint(10)).Return(nil, store.ErrIdentityNotFound)
	identities.On("ListByUser", uint(10), true).Return([]model.Identity{older, newer}, nil)
	priorities.On("GetPriority", uint(10), model.ContextSocial).Return(model.DefaultPriority, nil)
	priorities.On("GetPriority", uint(10), model.ContextProfessional).Return(model.DefaultPriority, nil)

	result, err := r.Resolve(10, model.ContextLegal, "en-US", DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, uint(5), result.Identity.ID, "most recent created_at should break the tie")
}

func TestResolveNotFound(t *testing.T) {
	r, identities, _, _ := newResolver()

	identities.On("FindExact", uint(10), model.ContextLegal, "en-US").Return(nil, store.ErrIdentityNotFound)
	identities.On("FindByContext", uint(10), model.ContextLegal).Return([]model.Identity{}, nil)
	identities.On("FindPrimary", uint(10)).Return(nil, store.ErrIdentityNotFound)
	identities.On("ListByUser", uint(10), true).Return([]model.Identity{}, nil)

	_, err := r.Resolve(10, model.ContextLegal, "en-US", DefaultOptions)
	assert.ErrorIs(t, err, store.ErrIdentityNotFound)
}

func TestResolveNoFallback(t *testing.T) {
	r, identities, _, _ := newResolver()

	identities.On("FindExact", uint(10), model.ContextLegal, "en-US").Return(nil, store.ErrIdentityNotFound)

	_, err := r.Resolve(10, model.ContextLegal, "en-US", Options{Fallback: false})
	assert.ErrorIs(t, err, store.ErrIdentityNotFound)
	identities.AssertNotCalled(t, "FindByContext", uint(10), model.ContextLegal)
}

func TestResolveRejectsMalformedLocale(t *testing.T) {
	r, _, _, _ := newResolver()

	_, err := r.Resolve(10, model.ContextLegal, "en_US", DefaultOptions)
	assert.Error(t, err)
}

func TestResolveRejectsUnknownContext(t *testing.T) {
	r, _, _, _ := newResolver()

	_, err := r.Resolve(10, model.Context(42), "en-US", DefaultOptions)
	assert.Error(t, err)
}

func TestResolveAutoProvision(t *testing.T) {
	r, identities, _, users := newResolver()

	account := &model.User{ID: 10, Username: "alice", FirstName: "Alice", LastName: "Adams", Email: "alice@example.com"}

	identities.On("CountByUser", uint(10)).Return(int64(0), nil)
	users.On("Get", uint(10)).Return(account, nil)
	identities.On("Create", mock.MatchedBy(func(i *model.Identity) bool {
		return i.UserID == 10 &&
			i.Context == model.ContextDisplay &&
			i.IsPrimary && i.IsActive &&
			i.GivenName == "Alice" && i.FamilyName == "Adams"
	})).Return(nil)
	identities.On("FindExact", uint(10), model.ContextDisplay, "en-US").
		Return(&model.Identity{ID: 9, UserID: 10, Context: model.ContextDisplay}, nil)

	result, err := r.Resolve(10, model.ContextDisplay, "en-US", Options{Fallback: true, Owner: true})
	require.NoError(t, err)
	assert.True(t, result.Provisioned)
	assert.Equal(t, uint(9), result.Identity.ID)
	identities.AssertExpectations(t)
}

func TestResolveAutoProvisionOnlyOnce(t *testing.T) {
	r, identities, _, users := newResolver()

	existing := &model.Identity{ID: 9, UserID: 10, Context: model.ContextDisplay}
	identities.On("CountByUser", uint(10)).Return(int64(1), nil)
	identities.On("FindExact", uint(10), model.ContextDisplay, "en-US").Return(existing, nil)

	result, err := r.Resolve(10, model.ContextDisplay, "en-US", Options{Fallback: true, Owner: true})
	require.NoError(t, err)
	assert.False(t, result.Provisioned)
	identities.AssertNotCalled(t, "Create", mock.Anything)
	users.AssertNotCalled(t, "Get", mock.Anything)
}

func TestResolveAutoProvisionAbsorbsDuplicateRace(t *testing.T) {
	r, identities, _, users := newResolver()

	account := &model.User{ID: 10, Username: "alice"}
	existing := &model.Identity{ID: 9, UserID: 10, Context: model.ContextDisplay}

	identities.On("CountByUser", uint(10)).Return(int64(0), nil)
	users.On("Get", uint(10)).Return(account, nil)
	// A concurrent provision won the unique-key race.
	identities.On("Create", mock.Anything).Return(store.ErrDuplicateIdentity)
	identities.On("FindExact", uint(10), model.ContextDisplay, "en-US").Return(existing, nil)

	result, err := r.Resolve(10, model.ContextDisplay, "en-US", Options{Fallback: true, Owner: true})
	require.NoError(t, err)
	assert.Equal(t, existing, result.Identity)
}
