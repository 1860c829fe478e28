package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullNameDisplayNameWins(t *testing.T) {
	identity := &Identity{
		Context:       ContextLegal,
		DisplayName:   "The Artist",
		Title:         "Dr.",
		GivenName:     "Robert",
		MiddleName:    "James",
		FamilyName:    "Smith",
		Suffix:        "Jr.",
		PreferredName: "Bob",
	}

	assert.Equal(t, "The Artist", identity.FullName())
}

func TestFullNameComposition(t *testing.T) {
	tests := []struct {
		name     string
		identity Identity
		want     string
	}{
		{
			name: "legal includes middle name",
			identity: Identity{
				Context:    ContextLegal,
				GivenName:  "Robert",
				MiddleName: "James",
				FamilyName: "Smith",
			},
			want: "Robert James Smith",
		},
		{
			name: "social prefers preferred name and drops middle name",
			identity: Identity{
				Context:       ContextSocial,
				GivenName:     "Robert",
				MiddleName:    "James",
				PreferredName: "Bob",
				FamilyName:    "Smith",
			},
			want: "Bob Smith",
		},
		{
			name: "display prefers preferred name",
			identity: Identity{
				Context:       ContextDisplay,
				GivenName:     "Robert",
				PreferredName: "Bob",
				FamilyName:    "Smith",
			},
			want: "Bob Smith",
		},
		{
			name: "professional ignores preferred name",
			identity: Identity{
				Context:       ContextProfessional,
				GivenName:     "Robert",
				PreferredName: "Bob",
				FamilyName:    "Smith",
			},
			want: "Robert Smith",
		},
		{
			name: "title and suffix wrap the name",
			identity: Identity{
				Context:    ContextLegal,
				Title:      "Dr.",
				GivenName:  "Robert",
				FamilyName: "Smith",
				Suffix:     "Jr.",
			},
			want: "Dr. Robert Smith Jr.",
		},
		{
			name: "middle name ignored outside legal context",
			identity: Identity{
				Context:    ContextProfessional,
				GivenName:  "Robert",
				MiddleName: "James",
				FamilyName: "Smith",
			},
			want: "Robert Smith",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.identity.FullName())
		})
	}
}

func TestValidateLocale(t *testing.T) {
	assert.NoError(t, ValidateLocale("en-US"))
	assert.NoError(t, ValidateLocale("fr-FR"))

	for _, bad := range []string{"en_US", "EN-US", "en-us", "english", "e-US", "en-USA", ""} {
		assert.Error(t, ValidateLocale(bad), "locale %q should be rejected", bad)
	}
}

func TestContextEnumBoundaries(t *testing.T) {
	ctx, err := ContextString("professional")
	assert.NoError(t, err)
	assert.Equal(t, ContextProfessional, ctx)

	_, err = ContextString("whimsical")
	assert.Error(t, err)

	vis, err := VisibilityString("organization")
	assert.NoError(t, err)
	assert.Equal(t, VisibilityOrganization, vis)

	_, err = VisibilityString("everyone")
	assert.Error(t, err)
}

func TestUserRoleIsAdmin(t *testing.T) {
	assert.True(t, UserRole{Role: RoleAdmin}.IsAdmin(false))
	assert.True(t, UserRole{Role: RoleViewer}.IsAdmin(true))
	assert.False(t, UserRole{Role: RoleManager}.IsAdmin(false))

	assert.True(t, UserRole{Role: RoleUser, CanManageUsers: true}.CanAccessAdminPanel(false))
	assert.False(t, UserRole{Role: RoleUser}.CanAccessAdminPanel(false))
}
