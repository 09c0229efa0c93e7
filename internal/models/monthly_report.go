package models

import "time"

// MonthlyReport is the persisted per-coach-per-month snapshot. It is derived
// from ledger entries and referral facts, mutable until the month is
// finalized, then locked.
//
// GrandTotalCents covers recurring bonuses, referral/upsell commissions and
// the performance bonus. Base salary and PT commission are deliberately
// excluded here; the live income endpoint includes them.
type MonthlyReport struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	CoachID uint   `gorm:"not null;uniqueIndex:idx_reports_coach_month,priority:1" json:"coach_id"`
	Month   string `gorm:"size:7;not null;uniqueIndex:idx_reports_coach_month,priority:2;index" json:"month"`

	// Recurring bonus, broken down by tier.
	RecurringChallengerCents int64 `gorm:"not null;default:0" json:"recurring_challenger_cents"`
	RecurringFighterCents    int64 `gorm:"not null;default:0" json:"recurring_fighter_cents"`
	RecurringChampionCents   int64 `gorm:"not null;default:0" json:"recurring_champion_cents"`
	RecurringEliteCents      int64 `gorm:"not null;default:0" json:"recurring_elite_cents"`
	RecurringTotalCents      int64 `gorm:"not null;default:0" json:"recurring_total_cents"`

	// Referral/upsell commissions.
	ServiceReferralCount int   `gorm:"not null;default:0" json:"service_referral_count"`
	UpgradeCount         int   `gorm:"not null;default:0" json:"upgrade_count"`
	ReferralTotalCents   int64 `gorm:"not null;default:0" json:"referral_total_cents"`

	// Performance classification and bonus.
	TargetMet             bool   `gorm:"not null;default:false" json:"target_met"`
	TargetDoubled         bool   `gorm:"not null;default:false" json:"target_doubled"`
	AchieverLevel         string `gorm:"size:10;not null;default:'NONE'" json:"achiever_level"`
	ActiveClients         int    `gorm:"not null;default:0" json:"active_clients"`
	PerformanceBonusCents int64  `gorm:"not null;default:0" json:"performance_bonus_cents"`

	GrandTotalCents int64      `gorm:"not null;default:0" json:"grand_total_cents"`
	IsTopPerformer  bool       `gorm:"not null;default:false" json:"is_top_performer"`
	State           string     `gorm:"size:20;not null;default:'OPEN';index" json:"state"`
	FinalizedAt     *time.Time `json:"finalized_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Coach *Coach `gorm:"foreignKey:CoachID" json:"-"`
}

func (MonthlyReport) TableName() string { return "monthly_reports" }
