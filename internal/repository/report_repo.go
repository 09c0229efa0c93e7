package repository

import (
	"coachpay/internal/domain"
	"coachpay/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Upsert writes the (coach, month) report row, replacing the computed fields
// of an existing row. Finalization state is owned by the finalize workflow
// and is deliberately not part of the assignment set.
func (r *ReportRepository) Upsert(rep *models.MonthlyReport) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "coach_id"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"recurring_challenger_cents", "recurring_fighter_cents",
			"recurring_champion_cents", "recurring_elite_cents",
			"recurring_total_cents",
			"service_referral_count", "upgrade_count", "referral_total_cents",
			"target_met", "target_doubled", "achiever_level",
			"active_clients", "performance_bonus_cents",
			"grand_total_cents", "updated_at",
		}),
	}).Create(rep).Error
}

func (r *ReportRepository) GetByCoachMonth(coachID uint, month string) (*models.MonthlyReport, error) {
	var rep models.MonthlyReport
	err := r.db.Where("coach_id = ? AND month = ?", coachID, month).First(&rep).Error
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *ReportRepository) ListByMonth(month string) ([]models.MonthlyReport, error) {
	var list []models.MonthlyReport
	err := r.db.Where("month = ?", month).Order("coach_id ASC").Find(&list).Error
	return list, err
}

// AnyFinalized reports whether any report for the month is already closed.
func (r *ReportRepository) AnyFinalized(month string) (bool, error) {
	var n int64
	err := r.db.Model(&models.MonthlyReport{}).
		Where("month = ? AND state = ?", month, domain.ReportStateFinalized).
		Count(&n).Error
	return n > 0, err
}

func (r *ReportRepository) Save(rep *models.MonthlyReport) error {
	return r.db.Save(rep).Error
}

// ReopenMonth flips every finalized report of the month back to OPEN and
// clears the top-performer flag and timestamp. The grand total drops back to
// the component sum so the winner's row does not keep carrying the bonus
// while the month is open.
func (r *ReportRepository) ReopenMonth(month string) (int64, error) {
	res := r.db.Model(&models.MonthlyReport{}).
		Where("month = ? AND state = ?", month, domain.ReportStateFinalized).
		Updates(map[string]interface{}{
			"state":             domain.ReportStateOpen,
			"is_top_performer":  false,
			"finalized_at":      nil,
			"grand_total_cents": gorm.Expr("recurring_total_cents + referral_total_cents + performance_bonus_cents"),
		})
	return res.RowsAffected, res.Error
}
