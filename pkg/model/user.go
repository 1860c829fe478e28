package model

import "time"

// User represents an account principal that owns identities.
type User struct {
	ID          uint      `gorm:"column:id;primaryKey" json:"id"`
	Username    string    `gorm:"column:username;uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"column:email" json:"email"`
	FirstName   string    `gorm:"column:first_name" json:"first_name"`
	LastName    string    `gorm:"column:last_name" json:"last_name"`
	IsActive    bool      `gorm:"column:is_active;default:true" json:"is_active"`
	IsSuperuser bool      `gorm:"column:is_superuser;default:false" json:"is_superuser"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"date_joined"`
}

func (User) TableName() string {
	return "users"
}
