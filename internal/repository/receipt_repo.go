package repository

import (
	"time"

	"coachpay/internal/domain"
	"coachpay/internal/models"

	"gorm.io/gorm"
)

type ReceiptRepository struct {
	db *gorm.DB
}

func NewReceiptRepository(db *gorm.DB) *ReceiptRepository {
	return &ReceiptRepository{db: db}
}

// ListPTReceipts returns PT package receipts issued in [start, end).
func (r *ReceiptRepository) ListPTReceipts(start, end time.Time) ([]models.Receipt, error) {
	var list []models.Receipt
	err := r.db.Where("category = ? AND issued_at >= ? AND issued_at < ?",
		domain.ReceiptCategoryPT, start, end).
		Order("id ASC").
		Find(&list).Error
	return list, err
}
