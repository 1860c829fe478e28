package model

// DefaultPriority is assumed for contexts without a ContextPriority row.
// Lower values win.
const DefaultPriority = 1000

// ContextPriority ranks a user's contexts for resolver fallback.
type ContextPriority struct {
	ID       uint    `gorm:"column:id;primaryKey" json:"id"`
	UserID   uint    `gorm:"column:user_id;not null;index" json:"-"`
	Context  Context `gorm:"column:context;not null" json:"context"`
	Priority int     `gorm:"column:priority;not null;default:0" json:"priority"`
}

func (ContextPriority) TableName() string {
	return "context_priorities"
}
