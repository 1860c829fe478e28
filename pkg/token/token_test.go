package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestIssueParseRoundtrip(t *testing.T) {
	signer := NewSigner(testKey, time.Minute)

	tokenString, err := signer.Issue(Claims{
		UserID:               42,
		Login:                "mallory",
		Role:                 "manager",
		CanViewAllIdentities: true,
		Scope:                "read write",
	})
	require.NoError(t, err)

	claims, err := signer.Parse(tokenString)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "mallory", claims.Login)
	assert.Equal(t, "manager", claims.Role)
	assert.True(t, claims.CanViewAllIdentities)
	assert.False(t, claims.IsSuperuser)
	assert.Equal(t, "read write", claims.Scope)
	assert.Equal(t, Issuer, claims.Issuer)
	assert.Equal(t, "42", claims.Subject)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	signer := NewSigner(testKey, time.Minute)
	// NewSigner clamps non-positive TTLs, so backdate by hand.
	signer.ttl = -2 * time.Minute

	tokenString, err := signer.Issue(Claims{UserID: 42})
	require.NoError(t, err)

	_, err = signer.Parse(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsWrongKey(t *testing.T) {
	signer := NewSigner(testKey, time.Minute)
	other := NewSigner([]byte("another-signing-key-entirely!!!!"), time.Minute)

	tokenString, err := signer.Issue(Claims{UserID: 42})
	require.NoError(t, err)

	_, err = other.Parse(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	signer := NewSigner(testKey, time.Minute)

	_, err := signer.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPersonaContextClaim(t *testing.T) {
	signer := NewSigner(testKey, time.Minute)

	tokenString, err := signer.Issue(Claims{UserID: 42, PersonaContext: "professional"})
	require.NoError(t, err)

	claims, err := signer.Parse(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "professional", claims.PersonaContext)
}

func TestNewSignerDefaultTTL(t *testing.T) {
	signer := NewSigner(testKey, 0)
	assert.Equal(t, DefaultTTL, signer.ttl)
}
