package repository

import (
	"coachpay/internal/domain"
	"coachpay/internal/models"

	"gorm.io/gorm"
)

type CoachRepository struct {
	db *gorm.DB
}

func NewCoachRepository(db *gorm.DB) *CoachRepository {
	return &CoachRepository{db: db}
}

func (r *CoachRepository) GetByID(id uint) (*models.Coach, error) {
	var c models.Coach
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListActiveCoaches returns active coaching staff ordered by id. The stable
// ascending-id order is what breaks leaderboard ties: the first coach
// encountered keeps the lower rank.
func (r *CoachRepository) ListActiveCoaches() ([]models.Coach, error) {
	var list []models.Coach
	err := r.db.Where("position = ? AND is_active = ?", domain.PositionCoach, true).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

// GetByFullName returns the unique active coach with the given name, or an
// error when none or more than one matches. Used only by the PT session
// backfill; ambiguous names stay unresolved.
func (r *CoachRepository) GetByFullName(name string) (*models.Coach, error) {
	var list []models.Coach
	err := r.db.Where("full_name = ? AND position = ?", name, domain.PositionCoach).
		Limit(2).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	if len(list) != 1 {
		return nil, gorm.ErrRecordNotFound
	}
	return &list[0], nil
}
