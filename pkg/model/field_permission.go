package model

import "time"

// FieldPermission narrows which principals may see one field of an identity.
// Rows only ever restrict the disclosure pipeline, never widen it.
type FieldPermission struct {
	ID              uint            `gorm:"column:id;primaryKey" json:"id"`
	IdentityID      uint            `gorm:"column:identity_id;not null;index" json:"identity_id"`
	FieldName       string          `gorm:"column:field_name;not null" json:"field_name"`
	PermissionLevel PermissionLevel `gorm:"column:permission_level;not null;default:read" json:"permission_level"`

	// Empty lists mean "anyone passing the visibility gate".
	AllowedRoles StringList `gorm:"column:allowed_roles;type:jsonb" json:"allowed_roles"`
	AllowedUsers IDList     `gorm:"column:allowed_users;type:jsonb" json:"allowed_users"`

	// Reserved for future rule types.
	Conditions JSONMap `gorm:"column:conditions;type:jsonb" json:"conditions,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (FieldPermission) TableName() string {
	return "field_permissions"
}
