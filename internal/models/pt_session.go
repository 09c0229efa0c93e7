package models

import "time"

// PTSession is a personal-training package sold to a member. CoachID is the
// authoritative link; CoachName survives from rows imported before the FK
// existed and is used only as a fallback until the backfill resolves it.
type PTSession struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	MemberID         uint      `gorm:"not null;index" json:"member_id"`
	CoachID          *uint     `gorm:"index" json:"coach_id"`
	CoachName        string    `gorm:"size:120" json:"coach_name"`
	PurchasedCount   int       `gorm:"not null;default:0" json:"purchased_count"`
	RemainingCount   int       `gorm:"not null;default:0" json:"remaining_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Member *Member `gorm:"foreignKey:MemberID" json:"-"`
	Coach  *Coach  `gorm:"foreignKey:CoachID" json:"-"`
}

func (PTSession) TableName() string { return "pt_sessions" }
