package disclosure

import (
	"sort"

	"github.com/personahq/persona/pkg/model"
	"github.com/personahq/persona/pkg/principal"
)

// Disclose filters an identity down to the fields p may see.
//
// Pipeline, in order:
//  1. context template: each context contributes a fixed base field set,
//     included when non-empty
//  2. ownership short-circuit: owners always see their full context view
//  3. visibility gate: public passes; private, friends and organization deny
//     (no relationship or membership entity is modeled). Principals with the
//     can_view_all_identities flag pass the gate but not step 4.
//  4. field-permission narrowing: a matching row can only remove fields
//
// Every result keeps the minimal identifiers: id, context, locale, full_name
// and visibility.
func Disclose(identity *model.Identity, p *principal.Principal, perms []model.FieldPermission) map[string]any {
	data := baseFields(identity)

	if p != nil && p.Owns(identity) {
		return data
	}

	if !passesVisibility(identity, p) {
		return minimal(identity)
	}

	for i := range perms {
		perm := &perms[i]
		if perm.IdentityID != identity.ID {
			continue
		}
		if _, ok := data[perm.FieldName]; !ok {
			continue
		}
		if isIdentifier(perm.FieldName) {
			continue
		}
		if !permits(perm, p) {
			delete(data, perm.FieldName)
		}
	}

	return data
}

// Fields returns the sorted key set of a disclosure, the exact shape the
// audit trail records.
func Fields(data map[string]any) model.StringList {
	fields := make(model.StringList, 0, len(data))
	for key := range data {
		fields = append(fields, key)
	}
	sort.Strings(fields)
	return fields
}

func passesVisibility(identity *model.Identity, p *principal.Principal) bool {
	if p != nil && p.CanViewAllIdentities {
		return true
	}
	// Friends and organization visibility have no backing relationship
	// entity and deny rather than silently granting access.
	return identity.Visibility == model.VisibilityPublic
}

// permits applies one permission row to the requesting principal. Empty
// allowed_users and allowed_roles mean anyone who passed the visibility gate.
func permits(perm *model.FieldPermission, p *principal.Principal) bool {
	if perm.PermissionLevel == model.PermissionLevelNone {
		return false
	}
	if len(perm.AllowedUsers) == 0 && len(perm.AllowedRoles) == 0 {
		return true
	}
	if p == nil {
		return false
	}
	if perm.AllowedUsers.Contains(p.UserID) {
		return true
	}
	return perm.AllowedRoles.Contains(p.Role.String())
}

// isIdentifier reports whether a field is part of the minimal identifier set
// that permission rows cannot remove.
func isIdentifier(field string) bool {
	switch field {
	case "id", "context", "locale", "full_name", "visibility":
		return true
	}
	return false
}

func minimal(identity *model.Identity) map[string]any {
	return map[string]any{
		"id":         identity.ID,
		"context":    identity.Context,
		"locale":     identity.Locale,
		"full_name":  identity.FullName(),
		"visibility": identity.Visibility,
	}
}

// baseFields builds the context template: the minimal identifiers plus the
// context's base field set, non-empty values only.
func baseFields(identity *model.Identity) map[string]any {
	data := minimal(identity)

	switch identity.Context {
	case model.ContextLegal:
		setIf(data, "given_name", identity.GivenName)
		setIf(data, "family_name", identity.FamilyName)
		setIf(data, "middle_name", identity.MiddleName)
		setIf(data, "title", identity.Title)
		setIf(data, "suffix", identity.Suffix)
	case model.ContextSocial:
		preferred := identity.PreferredName
		if preferred == "" {
			preferred = identity.GivenName
		}
		setIf(data, "preferred_name", preferred)
		setIf(data, "nickname", identity.Nickname)
		setIf(data, "pronouns", identity.Pronouns)
		setIf(data, "avatar_url", identity.AvatarURL)
		setIf(data, "bio", identity.Bio)
	case model.ContextProfessional:
		setIf(data, "given_name", identity.GivenName)
		setIf(data, "family_name", identity.FamilyName)
		setIf(data, "title", identity.Title)
		setIf(data, "email", identity.Email)
		setIf(data, "website", identity.Website)
		setIf(data, "bio", identity.Bio)
	case model.ContextDisplay:
		display := identity.DisplayName
		if display == "" {
			display = identity.FullName()
		}
		setIf(data, "display_name", display)
		setIf(data, "pronouns", identity.Pronouns)
		setIf(data, "avatar_url", identity.AvatarURL)
	case model.ContextUsername:
		setIf(data, "nickname", identity.Nickname)
	}

	if len(identity.CustomAttributes) > 0 {
		data["custom_attributes"] = identity.CustomAttributes
	}

	return data
}

func setIf(data map[string]any, key, value string) {
	if value != "" {
		data[key] = value
	}
}
