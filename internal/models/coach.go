package models

import (
	"time"

	"coachpay/internal/domain"

	"gorm.io/gorm"
)

// Coach is a staff member. Only rows with the COACH position carry clients
// and appear on the monthly leaderboard.
type Coach struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	FullName        string         `gorm:"size:120;not null;index" json:"full_name"`
	Email           string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Position        string         `gorm:"size:20;not null;index" json:"position"` // COACH | ADMIN
	BaseSalaryCents int64          `gorm:"not null;default:0" json:"base_salary_cents"`
	IsActive        bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Coach) TableName() string { return "coaches" }

func (c *Coach) IsCoach() bool { return c.Position == domain.PositionCoach }
