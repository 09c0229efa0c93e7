package service

import (
	"fmt"
	"testing"
	"time"

	"coachpay/internal/database"
	"coachpay/internal/domain"
	"coachpay/internal/models"
	"coachpay/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a uniquely named shared in-memory SQLite database and runs
// the production migrations against it, composite unique indexes included.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

type testRepos struct {
	coach       *repository.CoachRepository
	member      *repository.MemberRepository
	ledger      *repository.LedgerRepository
	report      *repository.ReportRepository
	receipt     *repository.ReceiptRepository
	session     *repository.PTSessionRepository
	referral    *repository.ReferralRepository
	leaderboard *repository.LeaderboardRepository
	setting     *repository.SettingRepository
}

func newTestRepos(db *gorm.DB) *testRepos {
	return &testRepos{
		coach:       repository.NewCoachRepository(db),
		member:      repository.NewMemberRepository(db),
		ledger:      repository.NewLedgerRepository(db),
		report:      repository.NewReportRepository(db),
		receipt:     repository.NewReceiptRepository(db),
		session:     repository.NewPTSessionRepository(db),
		referral:    repository.NewReferralRepository(db),
		leaderboard: repository.NewLeaderboardRepository(db),
		setting:     repository.NewSettingRepository(db),
	}
}

func seedCoach(t *testing.T, db *gorm.DB, name string) *models.Coach {
	t.Helper()
	c := &models.Coach{
		FullName: name,
		Email:    fmt.Sprintf("%s@gym.test", uuid.NewString()),
		Position: domain.PositionCoach,
		IsActive: true,
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed coach: %v", err)
	}
	return c
}

func seedMember(t *testing.T, db *gorm.DB, coachID uint, durationMonths int, start time.Time) *models.Member {
	t.Helper()
	m := &models.Member{
		FullName:          "Member " + uuid.NewString()[:8],
		DurationMonths:    durationMonths,
		SubscriptionStart: start,
		ExpiresAt:         start.AddDate(0, durationMonths, 0),
		CoachID:           coachID,
		IsActive:          true,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return m
}

func countEntries(t *testing.T, db *gorm.DB, coachID uint, month, category string) int64 {
	t.Helper()
	var n int64
	err := db.Model(&models.CommissionEntry{}).
		Where("coach_id = ? AND month = ? AND category = ?", coachID, month, category).
		Count(&n).Error
	if err != nil {
		t.Fatalf("count entries: %v", err)
	}
	return n
}
