package models

import (
	"time"

	"gorm.io/gorm"
)

// Notice types
const (
	NoticeNormal = "NORMAL"
	NoticeEvent  = "EVENT"
)

// Notice is a board post. The notice type marks event notices apart from
// normal announcements.
type Notice struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	MemberID   uint           `gorm:"column:member_id;index;not null" json:"member_id"`
	Title      string         `gorm:"size:25;not null" json:"title"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	NoticeType string         `gorm:"column:noticetype;size:15;not null" json:"noticetype"` // NORMAL, EVENT
	PostDate   time.Time      `gorm:"column:post_date;type:date;not null" json:"-"`
	CreatedAt  time.Time      `gorm:"column:created_date_time" json:"created_date_time"`
	UpdatedAt  time.Time      `gorm:"column:updated_date_time" json:"updated_date_time"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_date_time;index" json:"-"`
}

func (Notice) TableName() string { return "notice" }
