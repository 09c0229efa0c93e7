package repository

import (
	"coachpay/internal/models"

	"gorm.io/gorm"
)

type LeaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

// SaveSnapshot persists a snapshot with its entries in one transaction and
// prunes older snapshots for the same month, keeping only the newest.
func (r *LeaderboardRepository) SaveSnapshot(snap *models.LeaderboardSnapshot) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(snap).Error; err != nil {
			return err
		}
		var stale []models.LeaderboardSnapshot
		if err := tx.Where("month = ? AND id <> ?", snap.Month, snap.ID).Find(&stale).Error; err != nil {
			return err
		}
		for _, s := range stale {
			if err := tx.Where("snapshot_id = ?", s.ID).Delete(&models.LeaderboardEntry{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.LeaderboardSnapshot{}, s.ID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// LatestForMonth returns the newest snapshot for the month with entries
// loaded, or gorm.ErrRecordNotFound when none exists.
func (r *LeaderboardRepository) LatestForMonth(month string) (*models.LeaderboardSnapshot, error) {
	var snap models.LeaderboardSnapshot
	err := r.db.Where("month = ?", month).
		Order("computed_at DESC").
		Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("standing ASC") }).
		First(&snap).Error
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
