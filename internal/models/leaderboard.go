package models

import "time"

// LeaderboardSnapshot is a materialized ranking of all active coaches for a
// month. Snapshots are recomputed by the scheduled job (and on demand when
// stale); readers always see a consistent, versioned ranking instead of
// paying the full recompute per request.
type LeaderboardSnapshot struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Version    string    `gorm:"size:36;uniqueIndex;not null" json:"version"` // uuid
	Month      string    `gorm:"size:7;not null;index" json:"month"`
	ComputedAt time.Time `gorm:"not null" json:"computed_at"`

	Entries []LeaderboardEntry `gorm:"foreignKey:SnapshotID" json:"entries"`
}

func (LeaderboardSnapshot) TableName() string { return "leaderboard_snapshots" }

// LeaderboardEntry is one coach's row in a snapshot. TotalCents is the
// ranking total: onboarding + recurring + referral commissions + PT at the
// baseline rate only.
type LeaderboardEntry struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	SnapshotID uint   `gorm:"not null;index" json:"-"`
	CoachID    uint   `gorm:"not null" json:"coach_id"`
	CoachName  string `gorm:"size:120" json:"coach_name"`
	Rank       int    `gorm:"column:standing;not null" json:"rank"` // "rank" is reserved in MySQL 8
	TotalCents int64  `gorm:"not null" json:"total_cents"`
	IsTop      bool   `gorm:"not null;default:false" json:"is_top"`
}

func (LeaderboardEntry) TableName() string { return "leaderboard_entries" }
