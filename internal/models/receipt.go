package models

import "time"

// Receipt is a payment record issued by the external billing system and
// consumed read-only here. PT package receipts carry the session reference
// in the PTSessionID column; Detail remains only as a parse fallback for
// rows issued before the column existed.
type Receipt struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	MemberID    uint      `gorm:"not null;index" json:"member_id"`
	Category    string    `gorm:"size:30;not null;index" json:"category"`
	AmountCents int64     `gorm:"not null" json:"amount_cents"`
	PTSessionID *uint     `gorm:"index" json:"pt_session_id"`
	Detail      string    `gorm:"type:text" json:"detail"` // legacy JSON blob
	IssuedAt    time.Time `gorm:"not null;index" json:"issued_at"`
	CreatedAt   time.Time `json:"created_at"`

	Member *Member `gorm:"foreignKey:MemberID" json:"-"`
}

func (Receipt) TableName() string { return "receipts" }
