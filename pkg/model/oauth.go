package model

import "time"

// OAuthClient is a registered relying party.
type OAuthClient struct {
	ClientID    string    `gorm:"column:client_id;primaryKey" json:"client_id"`
	Secret      string    `gorm:"column:secret;not null" json:"-"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	RedirectURI string    `gorm:"column:redirect_uri;not null" json:"redirect_uri"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (OAuthClient) TableName() string {
	return "oauth_clients"
}

// OAuthGrant is a one-time authorization code binding a user's context
// selection to a client. Consumed exactly once at the token endpoint.
type OAuthGrant struct {
	Code      string    `gorm:"column:code;primaryKey"`
	ClientID  string    `gorm:"column:client_id;not null"`
	UserID    uint      `gorm:"column:user_id;not null"`
	Context   Context   `gorm:"column:context;not null"`
	Scope     string    `gorm:"column:scope;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (OAuthGrant) TableName() string {
	return "oauth_grants"
}

// Expired reports whether the grant is past its expiry.
func (g OAuthGrant) Expired() bool {
	return time.Now().After(g.ExpiresAt)
}
