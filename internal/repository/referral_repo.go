package repository

import (
	"coachpay/internal/domain"
	"coachpay/internal/models"

	"gorm.io/gorm"
)

type ReferralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

func (r *ReferralRepository) Create(ev *models.ReferralEvent) error {
	return r.db.Create(ev).Error
}

// CountForMonth returns the coach's service-referral count (phone + walk-in)
// and membership-upgrade count for one month. Both the target flags and the
// achiever level classify off these two numbers.
func (r *ReferralRepository) CountForMonth(coachID uint, month string) (serviceReferrals, upgrades int, err error) {
	var n int64
	err = r.db.Model(&models.ReferralEvent{}).
		Where("coach_id = ? AND month = ? AND category IN ?",
			coachID, month, []string{domain.ReferralPhone, domain.ReferralWalkIn}).
		Count(&n).Error
	if err != nil {
		return 0, 0, err
	}
	serviceReferrals = int(n)
	err = r.db.Model(&models.ReferralEvent{}).
		Where("coach_id = ? AND month = ? AND category = ?",
			coachID, month, domain.ReferralUpgrade).
		Count(&n).Error
	if err != nil {
		return 0, 0, err
	}
	return serviceReferrals, int(n), nil
}

func (r *ReferralRepository) ListByCoachMonth(coachID uint, month string) ([]models.ReferralEvent, error) {
	var list []models.ReferralEvent
	err := r.db.Where("coach_id = ? AND month = ?", coachID, month).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}
