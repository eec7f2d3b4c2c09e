package models

import "gorm.io/gorm"

// Role enum values
const (
	RoleAdmin  = "ADMIN"
	RoleUser   = "USER"
	RoleViewer = "VIEWER"
)

// User represents a registered listener or admin
type User struct {
	gorm.Model
	Name      string `json:"name"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `json:"-"`
	Role      string `gorm:"type:varchar(20);default:'USER'" json:"role"`
	IsActive  bool   `gorm:"default:true" json:"isActive"`
	IsDeleted bool   `gorm:"default:false" json:"-"`
}

func (User) TableName() string {
	return "users"
}
