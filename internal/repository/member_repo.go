package repository

import (
	"time"

	"coachpay/internal/models"

	"gorm.io/gorm"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) Create(m *models.Member) error {
	return r.db.Create(m).Error
}

func (r *MemberRepository) GetByID(id uint) (*models.Member, error) {
	var m models.Member
	if err := r.db.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ActiveRoster returns members eligible for recurring-bonus evaluation in a
// month: active, assigned to a coach, and not yet expired when the month
// starts.
func (r *MemberRepository) ActiveRoster(monthStart time.Time) ([]models.Member, error) {
	var list []models.Member
	err := r.db.Where("is_active = ? AND coach_id > 0 AND expires_at > ?", true, monthStart).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

// CountActiveByCoach returns the coach's active-client count as of the start
// of the given month. The performance bonus is per active client, so the
// count has to be stable for a given month rather than drifting with wall
// time.
func (r *MemberRepository) CountActiveByCoach(coachID uint, monthStart time.Time) (int, error) {
	var n int64
	err := r.db.Model(&models.Member{}).
		Where("coach_id = ? AND is_active = ? AND expires_at > ?", coachID, true, monthStart).
		Count(&n).Error
	return int(n), err
}

// Reanchor replaces the member's subscription on a renewal or upgrade: new
// duration, new start date, new expiry.
func (r *MemberRepository) Reanchor(memberID uint, durationMonths int, start time.Time) error {
	return r.db.Model(&models.Member{}).
		Where("id = ?", memberID).
		Updates(map[string]interface{}{
			"duration_months":    durationMonths,
			"subscription_start": start,
			"expires_at":         start.AddDate(0, durationMonths, 0),
			"is_active":          true,
		}).Error
}

func (r *MemberRepository) Deactivate(memberID uint) error {
	return r.db.Model(&models.Member{}).
		Where("id = ?", memberID).
		Update("is_active", false).Error
}
