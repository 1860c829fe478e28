package model

import "time"

// UserRole holds the role and capability flags for one user account.
type UserRole struct {
	ID                   uint      `gorm:"column:id;primaryKey" json:"id"`
	UserID               uint      `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	Role                 Role      `gorm:"column:role;not null;default:user" json:"role"`
	Organization         string    `gorm:"column:organization" json:"organization,omitempty"`
	IsOrganizationAdmin  bool      `gorm:"column:is_organization_admin;default:false" json:"is_organization_admin"`
	CanManageUsers       bool      `gorm:"column:can_manage_users;default:false" json:"can_manage_users"`
	CanViewAllIdentities bool      `gorm:"column:can_view_all_identities;default:false" json:"can_view_all_identities"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

// IsAdmin derives admin status purely from the role row and the account's
// superuser flag. There is no ambient global admin state.
func (r UserRole) IsAdmin(superuser bool) bool {
	return r.Role == RoleAdmin || superuser
}

// CanAccessAdminPanel reports whether the user may call admin operations.
func (r UserRole) CanAccessAdminPanel(superuser bool) bool {
	return r.IsAdmin(superuser) || r.CanManageUsers
}
