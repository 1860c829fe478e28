package model

import (
	"crypto/rand"
	"encoding/base64"
)

// Credential holds the API key a user authenticates with.
type Credential struct {
	UserID uint   `gorm:"column:user_id;primaryKey"`
	APIKey []byte `gorm:"column:api_key;not null"`
}

func (Credential) TableName() string {
	return "credentials"
}

// GenerateAPIKey returns a new random API key.
func GenerateAPIKey() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
