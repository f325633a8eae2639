package models

import (
	"time"

	"gorm.io/gorm"
)

// Timeline is a dated event belonging to a project. It is removed together
// with its project.
type Timeline struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProjectID   uint           `gorm:"column:project_id;index;not null" json:"project_id"`
	Title       string         `gorm:"size:50;not null" json:"title"`
	Description string         `gorm:"size:100;not null" json:"description"`
	EventDate   time.Time      `gorm:"column:event_date;type:date;not null" json:"-"`
	CreatedAt   time.Time      `gorm:"column:created_date_time" json:"created_date_time"`
	UpdatedAt   time.Time      `gorm:"column:updated_date_time" json:"updated_date_time"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_date_time;index" json:"-"`
}

func (Timeline) TableName() string { return "timeline" }
