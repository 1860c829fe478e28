package model

import "time"

// AccessLog is one immutable disclosure audit record. No update or delete
// operation is exposed anywhere in the codebase.
type AccessLog struct {
	ID             uint       `gorm:"column:id;primaryKey" json:"id"`
	IdentityID     uint       `gorm:"column:identity_id;not null;index" json:"identity_id"`
	AccessedBy     uint       `gorm:"column:accessed_by;not null" json:"accessed_by"`
	AccessedFields StringList `gorm:"column:accessed_fields;type:jsonb" json:"accessed_fields"`
	AccessContext  string     `gorm:"column:access_context;not null" json:"access_context"`
	IPAddress      string     `gorm:"column:ip_address" json:"ip_address"`
	UserAgent      string     `gorm:"column:user_agent" json:"user_agent"`
	Timestamp      time.Time  `gorm:"column:timestamp;autoCreateTime" json:"timestamp"`
}

func (AccessLog) TableName() string {
	return "access_logs"
}
