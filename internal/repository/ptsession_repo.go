package repository

import (
	"coachpay/internal/models"

	"gorm.io/gorm"
)

type PTSessionRepository struct {
	db *gorm.DB
}

func NewPTSessionRepository(db *gorm.DB) *PTSessionRepository {
	return &PTSessionRepository{db: db}
}

func (r *PTSessionRepository) GetByID(id uint) (*models.PTSession, error) {
	var s models.PTSession
	if err := r.db.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// ListUnresolved returns sessions imported with a coach name but no FK.
func (r *PTSessionRepository) ListUnresolved() ([]models.PTSession, error) {
	var list []models.PTSession
	err := r.db.Where("coach_id IS NULL AND coach_name <> ''").
		Order("id ASC").
		Find(&list).Error
	return list, err
}

// SetCoach backfills the coach FK on a name-only session.
func (r *PTSessionRepository) SetCoach(sessionID, coachID uint) error {
	return r.db.Model(&models.PTSession{}).
		Where("id = ?", sessionID).
		Update("coach_id", coachID).Error
}
