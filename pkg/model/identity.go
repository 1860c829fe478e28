package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// localeRegex matches ll-CC language-region tags, e.g. "en-US".
var localeRegex = regexp.MustCompile(`^[a-z]{2}-[A-Z]{2}$`)

// DefaultLocale is used when a request carries no usable locale.
const DefaultLocale = "en-US"

// ValidateLocale rejects locale strings that do not match the ll-CC pattern.
func ValidateLocale(locale string) error {
	if !localeRegex.MatchString(locale) {
		return fmt.Errorf("invalid locale format: %q", locale)
	}
	return nil
}

// Identity is one context-scoped identity record. A user holds at most one
// identity per (context, locale) pair.
type Identity struct {
	ID      uint    `gorm:"column:id;primaryKey" json:"id"`
	UserID  uint    `gorm:"column:user_id;not null;index" json:"-"`
	Context Context `gorm:"column:context;not null" json:"context"`
	Locale  string  `gorm:"column:locale;not null;default:en-US" json:"locale"`

	// Structured name parts
	GivenName     string `gorm:"column:given_name;not null" json:"given_name"`
	FamilyName    string `gorm:"column:family_name;not null" json:"family_name"`
	MiddleName    string `gorm:"column:middle_name" json:"middle_name,omitempty"`
	PreferredName string `gorm:"column:preferred_name" json:"preferred_name,omitempty"`
	DisplayName   string `gorm:"column:display_name" json:"display_name,omitempty"`

	// Extended attributes
	Pronouns string `gorm:"column:pronouns" json:"pronouns,omitempty"`
	Title    string `gorm:"column:title" json:"title,omitempty"`
	Suffix   string `gorm:"column:suffix" json:"suffix,omitempty"`
	Nickname string `gorm:"column:nickname" json:"nickname,omitempty"`

	// Contact and profile
	AvatarURL string `gorm:"column:avatar_url" json:"avatar_url,omitempty"`
	Bio       string `gorm:"column:bio" json:"bio,omitempty"`
	Website   string `gorm:"column:website" json:"website,omitempty"`
	Email     string `gorm:"column:email" json:"email,omitempty"`
	Phone     string `gorm:"column:phone" json:"phone,omitempty"`

	// Schemaless extensibility point
	CustomAttributes JSONMap `gorm:"column:custom_attributes;type:jsonb" json:"custom_attributes,omitempty"`

	Visibility Visibility `gorm:"column:visibility;not null;default:private" json:"visibility"`
	IsPrimary  bool       `gorm:"column:is_primary;default:false" json:"is_primary"`
	IsActive   bool       `gorm:"column:is_active;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Admin verification state
	AdminNotes       string     `gorm:"column:admin_notes" json:"-"`
	IsVerified       bool       `gorm:"column:is_verified;default:false" json:"is_verified"`
	VerificationDate *time.Time `gorm:"column:verification_date" json:"-"`
	VerifiedBy       *uint      `gorm:"column:verified_by" json:"-"`
}

func (Identity) TableName() string {
	return "identities"
}

// FullName composes a single display string from the structured name parts.
// A non-empty display_name wins outright. Otherwise the parts are assembled
// context-sensitively: social/display prefer the preferred name, legal
// surfaces the middle name.
func (i *Identity) FullName() string {
	if i.DisplayName != "" {
		return i.DisplayName
	}

	var parts []string
	if i.Title != "" {
		parts = append(parts, i.Title)
	}

	if i.PreferredName != "" && (i.Context == ContextSocial || i.Context == ContextDisplay) {
		parts = append(parts, i.PreferredName)
	} else {
		parts = append(parts, i.GivenName)
	}

	if i.MiddleName != "" && i.Context == ContextLegal {
		parts = append(parts, i.MiddleName)
	}

	parts = append(parts, i.FamilyName)

	if i.Suffix != "" {
		parts = append(parts, i.Suffix)
	}

	return strings.Join(parts, " ")
}
