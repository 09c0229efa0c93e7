package models

import "time"

// CommissionEntry is one immutable fact in the commission ledger: a coach
// earned an amount in a category for a month, optionally tied to a member.
//
// MemberID is 0 for entries that are not client-scoped (top-performer,
// referral commissions). The composite unique index is the store-level
// once-per-month guard: concurrent sync or finalize runs can both pass an
// application-level existence check, but only one insert wins here.
type CommissionEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CoachID     uint      `gorm:"not null;uniqueIndex:idx_entries_once,priority:1;index" json:"coach_id"`
	MemberID    uint      `gorm:"not null;default:0;uniqueIndex:idx_entries_once,priority:2" json:"member_id"`
	Month       string    `gorm:"size:7;not null;uniqueIndex:idx_entries_once,priority:3;index" json:"month"` // YYYY-MM
	Category    string    `gorm:"size:30;not null;uniqueIndex:idx_entries_once,priority:4;index" json:"category"`
	AmountCents int64     `gorm:"not null" json:"amount_cents"`
	Tier        string    `gorm:"size:20" json:"tier"` // set for tier-derived categories
	Status      string    `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	Detail      string    `gorm:"type:text" json:"detail"` // JSON audit payload, never read back as data
	Note        string    `gorm:"size:255" json:"note"`
	CreatedAt   time.Time `json:"created_at"`

	Coach  *Coach  `gorm:"foreignKey:CoachID" json:"-"`
	Member *Member `gorm:"foreignKey:MemberID" json:"-"`
}

func (CommissionEntry) TableName() string { return "commission_entries" }
