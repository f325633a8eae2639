package models

import "time"

// RefreshToken persists the refresh token issued at sign-in. One live token
// per member is expected; prior rows are deleted on refresh and sign-out.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MemberID  uint      `gorm:"column:member_id;index;not null" json:"member_id"`
	Token     string    `gorm:"uniqueIndex;size:512;not null" json:"-"`
	ExpiresAt time.Time `gorm:"column:expiry_date_time;index;not null" json:"expiry_date_time"`
	CreatedAt time.Time `gorm:"column:created_date_time" json:"created_date_time"`
}

func (RefreshToken) TableName() string { return "refresh_token" }
