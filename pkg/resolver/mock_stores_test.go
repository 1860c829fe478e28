package resolver

import (
	"github.com/stretchr/testify/mock"

	"github.com/personahq/persona/pkg/model"
	"github.com/personahq/persona/pkg/server/store"
)

// MockIdentitiesStore implements store.IdentitiesStore using testify/mock
type MockIdentitiesStore struct {
	mock.Mock
}

func (m *MockIdentitiesStore) ListByUser(userID uint, activeOnly bool) ([]model.Identity, error) {
	args := m.Called(userID, activeOnly)
	return args.Get(0).([]model.Identity), args.Error(1)
}

func (m *MockIdentitiesStore) ListPublicByUser(userID uint) ([]model.Identity, error) {
	args := m.Called(userID)
	return args.Get(0).([]model.Identity), args.Error(1)
}

func (m *MockIdentitiesStore) Get(id uint) (*model.Identity, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Identity), args.Error(1)
}

func (m *MockIdentitiesStore) GetOwned(id, userID uint) (*model.Identity, error) {
	args := m.Called(id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Identity), args.Error(1)
}

func (m *MockIdentitiesStore) Create(identity *model.Identity) error {
	args := m.Called(identity)
	return args.Error(0)
}

func (m *MockIdentitiesStore) Update(identity *model.Identity) error {
	args := m.Called(identity)
	return args.Error(0)
}

func (m *MockIdentitiesStore) Delete(id, userID uint) error {
	args := m.Called(id, userID)
	return args.Error(0)
}

func (m *MockIdentitiesStore) SetPrimary(userID, identityID uint) error {
	args := m.Called(userID, identityID)
	return args.Error(0)
}

func (m *MockIdentitiesStore) FindExact(userID uint, context model.Context, locale string) (*model.Identity, error) {
	args := m.Called(userID, context, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Identity), args.Error(1)
}

func (m *MockIdentitiesStore) FindByContext(userID uint, context model.Context) ([]model.Identity, error) {
	args := m.Called(userID, context)
	return args.Get(0).([]model.Identity), args.Error(1)
}

func (m *MockIdentitiesStore) FindPrimary(userID uint) (*model.Identity, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Identity), args.Error(1)
}

func (m *MockIdentitiesStore) CountByUser(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIdentitiesStore) ListAll(filter store.IdentityFilter) ([]model.Identity, error) {
	args := m.Called(filter)
	return args.Get(0).([]model.Identity), args.Error(1)
}

func (m *MockIdentitiesStore) Stats() (int64, int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockIdentitiesStore) Verify(identityID, verifiedBy uint, notes string) error {
	args := m.Called(identityID, verifiedBy, notes)
	return args.Error(0)
}

// MockPrioritiesStore implements store.PrioritiesStore using testify/mock
type MockPrioritiesStore struct {
	mock.Mock
}

func (m *MockPrioritiesStore) ListByUser(userID uint) ([]model.ContextPriority, error) {
	args := m.Called(userID)
	return args.Get(0).([]model.ContextPriority), args.Error(1)
}

func (m *MockPrioritiesStore) GetPriority(userID uint, context model.Context) (int, error) {
	args := m.Called(userID, context)
	return args.Int(0), args.Error(1)
}

func (m *MockPrioritiesStore) Set(priority *model.ContextPriority) error {
	args := m.Called(priority)
	return args.Error(0)
}

func (m *MockPrioritiesStore) Delete(userID uint, context model.Context) error {
	args := m.Called(userID, context)
	return args.Error(0)
}

// MockUsersStore implements store.UsersStore using testify/mock
type MockUsersStore struct {
	mock.Mock
}

func (m *MockUsersStore) Get(id uint) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) GetByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) Create(user *model.User, role model.Role, apiKey string) error {
	args := m.Called(user, role, apiKey)
	return args.Error(0)
}

func (m *MockUsersStore) SetActive(id uint, active bool) error {
	args := m.Called(id, active)
	return args.Error(0)
}

func (m *MockUsersStore) List(filter store.UserFilter) ([]model.User, error) {
	args := m.Called(filter)
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUsersStore) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUsersStore) GetRole(userID uint) (*model.UserRole, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserRole), args.Error(1)
}

func (m *MockUsersStore) SetRole(userID uint, role model.Role) error {
	args := m.Called(userID, role)
	return args.Error(0)
}

func (m *MockUsersStore) APIKey(userID uint) ([]byte, error) {
	args := m.Called(userID)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockUsersStore) RotateAPIKey(userID uint, apiKey string) error {
	args := m.Called(userID, apiKey)
	return args.Error(0)
}
