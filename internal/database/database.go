package database

import (
	"log"

	"coachpay/config"
	"coachpay/internal/domain"
	"coachpay/internal/models"
	"coachpay/internal/repository"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models. The composite unique
// indexes it creates (ledger once-per-month, one report per coach-month) are
// load-bearing: idempotency relies on the store enforcing them.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Coach{},
		&models.Member{},
		&models.CommissionEntry{},
		&models.MonthlyReport{},
		&models.Receipt{},
		&models.PTSession{},
		&models.ReferralEvent{},
		&models.LeaderboardSnapshot{},
		&models.LeaderboardEntry{},
		&models.SystemSetting{},
	)
}

// SeedDefaults inserts the default commission settings when absent. The rate
// schedule must be an explicit choice; "level" is the shipped default.
func SeedDefaults(db *gorm.DB) {
	err := repository.NewSettingRepository(db).SeedDefaults(map[string]string{
		domain.SettingRateSchedule:         domain.ScheduleLevel,
		domain.SettingServiceReferralCents: "5000",
		domain.SettingUpgradeReferralCents: "10000",
	})
	if err != nil {
		log.Printf("[database] seed defaults: %v", err)
	}
}
