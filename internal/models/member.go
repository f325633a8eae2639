package models

import (
	"time"

	"gorm.io/gorm"
)

// Member roles
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Member represents a registered account. The email doubles as the login ID.
type Member struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:10;not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;size:50;not null" json:"email"`
	Password  string         `gorm:"size:100;not null" json:"-"`
	Role      string         `gorm:"size:10;default:USER" json:"role"` // USER, ADMIN
	CreatedAt time.Time      `gorm:"column:created_date_time" json:"created_date_time"`
	UpdatedAt time.Time      `gorm:"column:updated_date_time" json:"updated_date_time"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_date_time;index" json:"-"`
}

func (Member) TableName() string { return "member" }
