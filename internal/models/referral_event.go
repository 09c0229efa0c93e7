package models

import "time"

// ReferralEvent is one referral/upsell fact attributed to a coach: a phone
// or walk-in service referral, or a membership upgrade the coach sold.
// These are the inputs to the monthly performance evaluation.
type ReferralEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CoachID   uint      `gorm:"not null;index:idx_referrals_coach_month,priority:1" json:"coach_id"`
	MemberID  uint      `gorm:"not null" json:"member_id"`
	Category  string    `gorm:"size:30;not null;index" json:"category"`
	Month     string    `gorm:"size:7;not null;index:idx_referrals_coach_month,priority:2" json:"month"`
	CreatedAt time.Time `json:"created_at"`

	Coach  *Coach  `gorm:"foreignKey:CoachID" json:"-"`
	Member *Member `gorm:"foreignKey:MemberID" json:"-"`
}

func (ReferralEvent) TableName() string { return "referral_events" }
