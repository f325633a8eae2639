package models

import (
	"time"

	"gorm.io/gorm"
)

// Project statuses
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

// Project is a member-owned project. Hashtags attach through the
// project_hashtag junction table; timelines hang off it 1:N.
type Project struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	MemberID      uint           `gorm:"column:member_id;index;not null" json:"member_id"`
	Title         string         `gorm:"size:25;not null" json:"title"`
	Introduction  string         `gorm:"type:text;not null" json:"introduction"`
	ProjectStatus string         `gorm:"column:project_status;size:15;not null" json:"project_status"` // PENDING, IN_PROGRESS, COMPLETED
	CreatedAt     time.Time      `gorm:"column:created_date_time" json:"created_date_time"`
	UpdatedAt     time.Time      `gorm:"column:updated_date_time" json:"updated_date_time"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_date_time;index" json:"-"`
}

func (Project) TableName() string { return "project" }

// Hashtag is a reusable tag. Rows are shared across projects and matched by
// exact, case-sensitive name; they carry no deletion column so an unlink
// never destroys a tag another project still uses.
type Hashtag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"column:hashtag_name;size:10;not null" json:"hashtag_name"`
}

func (Hashtag) TableName() string { return "hashtag" }

// ProjectHashtag is the project<->hashtag junction. It soft-deletes
// independently so a tag can be unlinked from one project while the hashtag
// row itself survives.
type ProjectHashtag struct {
	ProjectID uint           `gorm:"column:project_id;primaryKey" json:"project_id"`
	HashtagID uint           `gorm:"column:hashtag_id;primaryKey" json:"hashtag_id"`
	CreatedAt time.Time      `gorm:"column:created_date_time" json:"created_date_time"`
	UpdatedAt time.Time      `gorm:"column:updated_date_time" json:"updated_date_time"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_date_time;index" json:"-"`
}

func (ProjectHashtag) TableName() string { return "project_hashtag" }
