package gorm

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/personahq/persona/pkg/model"
	"github.com/personahq/persona/pkg/server/store"
)

type IdentitiesSuite struct {
	suite.Suite
	DB         *gorm.DB
	mock       sqlmock.Sqlmock
	identities *IdentitiesStore
}

func (s *IdentitiesSuite) SetupTest() {
	var (
		db  *sql.DB
		err error
	)

	db, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	s.DB, err = gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(s.T(), err)

	s.identities = NewIdentitiesStore(s.DB)
}

func (s *IdentitiesSuite) AfterTest(_, _ string) {
	require.NoError(s.T(), s.mock.ExpectationsWereMet())
}

func TestIdentitiesStore(t *testing.T) {
	suite.Run(t, new(IdentitiesSuite))
}

func (s *IdentitiesSuite) TestGet() {
	rows := sqlmock.NewRows([]string{"id", "user_id", "context", "locale", "given_name"}).
		AddRow(3, 7, "legal", "en-US", "Alice")
	s.mock.ExpectQuery(`SELECT (.+) FROM "identities"`).WithArgs(3).WillReturnRows(rows)

	identity, err := s.identities.Get(3)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), model.ContextLegal, identity.Context)
	assert.Equal(s.T(), "Alice", identity.GivenName)
}

func (s *IdentitiesSuite) TestGetNotFound() {
	s.mock.ExpectQuery(`SELECT (.+) FROM "identities"`).
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.identities.Get(404)
	assert.ErrorIs(s.T(), err, store.ErrIdentityNotFound)
}

func (s *IdentitiesSuite) TestGetOwnedWrongOwner() {
	s.mock.ExpectQuery(`SELECT (.+) FROM "identities"`).
		WithArgs(3, 8).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.identities.GetOwned(3, 8)
	assert.ErrorIs(s.T(), err, store.ErrIdentityNotFound)
}

func (s *IdentitiesSuite) TestFindExact() {
	rows := sqlmock.NewRows([]string{"id", "user_id", "context", "locale"}).
		AddRow(3, 7, "professional", "en-US")
	s.mock.ExpectQuery(`SELECT (.+) FROM "identities"`).
		WithArgs(7, "professional", "en-US", true).
		WillReturnRows(rows)

	identity, err := s.identities.FindExact(7, model.ContextProfessional, "en-US")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), uint(3), identity.ID)
}

func (s *IdentitiesSuite) TestFindExactNotFound() {
	s.mock.ExpectQuery(`SELECT (.+) FROM "identities"`).
		WithArgs(7, "professional", "fr-FR", true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.identities.FindExact(7, model.ContextProfessional, "fr-FR")
	assert.ErrorIs(s.T(), err, store.ErrIdentityNotFound)
}

func (s *IdentitiesSuite) TestFindByContextOrdersPrimaryFirst() {
	rows := sqlmock.NewRows([]string{"id", "user_id", "context", "is_primary"}).
		AddRow(1, 7, "social", true).
		AddRow(2, 7, "social", false)
	s.mock.ExpectQuery(`SELECT (.+) FROM "identities" WHERE (.+) ORDER BY is_primary desc, created_at`).
		WithArgs(7, "social", true).
		WillReturnRows(rows)

	identities, err := s.identities.FindByContext(7, model.ContextSocial)
	require.NoError(s.T(), err)
	require.Len(s.T(), identities, 2)
	assert.True(s.T(), identities[0].IsPrimary)
}

func (s *IdentitiesSuite) TestListByUserActiveOnly() {
	rows := sqlmock.NewRows([]string{"id", "user_id", "context", "is_primary"}).
		AddRow(1, 7, "legal", true).
		AddRow(2, 7, "social", false)
	s.mock.ExpectQuery(`SELECT (.+) FROM "identities"`).
		WithArgs(7, true).
		WillReturnRows(rows)

	identities, err := s.identities.ListByUser(7, true)
	require.NoError(s.T(), err)
	require.Len(s.T(), identities, 2)
	assert.True(s.T(), identities[0].IsPrimary)
}

func (s *IdentitiesSuite) TestDelete() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(`DELETE FROM "identities"`).
		WithArgs(3, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	assert.NoError(s.T(), s.identities.Delete(3, 7))
}

func (s *IdentitiesSuite) TestDeleteNotFound() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(`DELETE FROM "identities"`).
		WithArgs(3, 8).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	err := s.identities.Delete(3, 8)
	assert.ErrorIs(s.T(), err, store.ErrIdentityNotFound)
}

func (s *IdentitiesSuite) TestSetPrimary() {
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`SELECT (.+) FROM "identities"`).
		WithArgs(3, 7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(3, 7))
	s.mock.ExpectExec(`UPDATE "identities" SET`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	s.mock.ExpectExec(`UPDATE "identities" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	assert.NoError(s.T(), s.identities.SetPrimary(7, 3))
}

func (s *IdentitiesSuite) TestSetPrimaryNotFound() {
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`SELECT (.+) FROM "identities"`).
		WithArgs(3, 8).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	s.mock.ExpectRollback()

	err := s.identities.SetPrimary(8, 3)
	assert.ErrorIs(s.T(), err, store.ErrIdentityNotFound)
}

func (s *IdentitiesSuite) TestCountByUser() {
	s.mock.ExpectQuery(`SELECT count(.+) FROM "identities"`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := s.identities.CountByUser(7)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(3), count)
}

func (s *IdentitiesSuite) TestVerify() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(`UPDATE "identities" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	assert.NoError(s.T(), s.identities.Verify(3, 1, "Passport checked"))
}

func (s *IdentitiesSuite) TestVerifyNotFound() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(`UPDATE "identities" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	err := s.identities.Verify(404, 1, "")
	assert.ErrorIs(s.T(), err, store.ErrIdentityNotFound)
}
