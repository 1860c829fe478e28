// Package token issues and parses the service's signed access tokens.
// Tokens are HS256 JWTs carrying the user's id, role capabilities, scopes
// and, for OAuth-issued tokens, the context the user selected mid-flow.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL bounds token lifetime when the config does not override it.
const DefaultTTL = time.Hour

// Issuer is the iss claim on every token this service signs.
const Issuer = "persona"

// ErrInvalidToken covers expired, malformed and wrongly-signed tokens.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the payload of a persona access token.
type Claims struct {
	jwt.RegisteredClaims

	UserID               uint   `json:"uid"`
	Login                string `json:"login"`
	Role                 string `json:"role"`
	IsSuperuser          bool   `json:"superuser,omitempty"`
	CanManageUsers       bool   `json:"can_manage_users,omitempty"`
	CanViewAllIdentities bool   `json:"can_view_all_identities,omitempty"`
	Scope                string `json:"scope,omitempty"`

	// PersonaContext is set on OAuth-issued tokens: the context name the
	// user selected during authorization. Empty on direct login tokens.
	PersonaContext string `json:"persona_context,omitempty"`
}

// Signer issues and verifies access tokens with a shared HMAC key.
type Signer struct {
	key []byte
	ttl time.Duration
}

// NewSigner creates a Signer. A non-positive ttl falls back to DefaultTTL.
func NewSigner(key []byte, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Signer{key: key, ttl: ttl}
}

// Issue signs the claims, stamping issuer, subject, issued-at and expiry.
func (s *Signer) Issue(claims Claims) (string, error) {
	now := time.Now()
	claims.Issuer = Issuer
	claims.Subject = fmt.Sprintf("%d", claims.UserID)
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// Parse verifies the signature and standard claims and returns the payload.
func (s *Signer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.key, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithIssuer(Issuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
