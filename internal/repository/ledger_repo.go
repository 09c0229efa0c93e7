package repository

import (
	"coachpay/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// CreateOnce inserts a ledger entry, relying on the (coach, member, month,
// category) unique index for dedup: a duplicate insert is ignored by the
// store and reported as created=false. This is what makes the monthly sync
// and finalize idempotent even under concurrent runs.
func (r *LedgerRepository) CreateOnce(e *models.CommissionEntry) (created bool, err error) {
	res := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "coach_id"}, {Name: "member_id"}, {Name: "month"}, {Name: "category"},
		},
		DoNothing: true,
	}).Create(e)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *LedgerRepository) ListByCoachMonth(coachID uint, month string) ([]models.CommissionEntry, error) {
	var list []models.CommissionEntry
	err := r.db.Where("coach_id = ? AND month = ?", coachID, month).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

// ListByMonthCategory returns every entry in the month for one category,
// across all coaches. The finalize workflow uses it to reconcile the single
// month-level top-performer payment.
func (r *LedgerRepository) ListByMonthCategory(month, category string) ([]models.CommissionEntry, error) {
	var list []models.CommissionEntry
	err := r.db.Where("month = ? AND category = ?", month, category).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *LedgerRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.CommissionEntry{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// SumByCategory returns the coach's ledger total for one category in a month.
func (r *LedgerRepository) SumByCategory(coachID uint, month, category string) (int64, error) {
	var total int64
	err := r.db.Model(&models.CommissionEntry{}).
		Where("coach_id = ? AND month = ? AND category = ?", coachID, month, category).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&total).Error
	return total, err
}

// SumRecurringByTier returns the month's recurring-bonus total per tier tag.
func (r *LedgerRepository) SumRecurringByTier(coachID uint, month, category string) (map[string]int64, error) {
	var rows []struct {
		Tier  string
		Total int64
	}
	err := r.db.Model(&models.CommissionEntry{}).
		Where("coach_id = ? AND month = ? AND category = ?", coachID, month, category).
		Select("tier, COALESCE(SUM(amount_cents), 0) AS total").
		Group("tier").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Tier] = row.Total
	}
	return out, nil
}
