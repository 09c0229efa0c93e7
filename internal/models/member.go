package models

import (
	"time"

	"gorm.io/gorm"
)

// Member is a gym client. The subscription is re-anchored (start date and
// duration replaced) on a renewal or upgrade; expiry or cancellation clears
// the active flag.
type Member struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	FullName          string         `gorm:"size:120;not null" json:"full_name"`
	DurationMonths    int            `gorm:"not null" json:"duration_months"` // 1, 3, 6 or 12
	SubscriptionStart time.Time      `gorm:"not null" json:"subscription_start"`
	ExpiresAt         time.Time      `gorm:"not null;index" json:"expires_at"`
	CoachID           uint           `gorm:"index" json:"coach_id"` // 0 = unassigned
	IsActive          bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	Coach *Coach `gorm:"foreignKey:CoachID" json:"-"`
}

func (Member) TableName() string { return "members" }
