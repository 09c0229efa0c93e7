package service

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"coachpay/internal/domain"
	"coachpay/internal/models"
	"coachpay/internal/repository"
)

// ReferralService ingests referral/upsell facts and writes the matching
// flat commission ledger entries.
type ReferralService struct {
	referralRepo *repository.ReferralRepository
	ledgerRepo   *repository.LedgerRepository
	settingRepo  *repository.SettingRepository
	coachRepo    *repository.CoachRepository
	memberRepo   *repository.MemberRepository
}

func NewReferralService(
	referralRepo *repository.ReferralRepository,
	ledgerRepo *repository.LedgerRepository,
	settingRepo *repository.SettingRepository,
	coachRepo *repository.CoachRepository,
	memberRepo *repository.MemberRepository,
) *ReferralService {
	return &ReferralService{
		referralRepo: referralRepo,
		ledgerRepo:   ledgerRepo,
		settingRepo:  settingRepo,
		coachRepo:    coachRepo,
		memberRepo:   memberRepo,
	}
}

// Record stores a referral event for the coach and credits the flat
// commission. The commission write is secondary: if it fails the event
// still stands and the failure is logged, not returned.
func (s *ReferralService) Record(coachID, memberID uint, category, month string) (*models.ReferralEvent, error) {
	if category != domain.ReferralPhone && category != domain.ReferralWalkIn && category != domain.ReferralUpgrade {
		return nil, fmt.Errorf("unknown referral category %q", category)
	}
	if _, err := s.coachRepo.GetByID(coachID); err != nil {
		return nil, err
	}
	if _, err := s.memberRepo.GetByID(memberID); err != nil {
		return nil, err
	}
	ev := &models.ReferralEvent{
		CoachID:  coachID,
		MemberID: memberID,
		Category: category,
		Month:    month,
	}
	if err := s.referralRepo.Create(ev); err != nil {
		return nil, err
	}

	ledgerCategory := domain.CategoryServiceReferral
	amount := int64(s.settingInt(domain.SettingServiceReferralCents, 5000))
	if category == domain.ReferralUpgrade {
		ledgerCategory = domain.CategoryUpgradeReferral
		amount = int64(s.settingInt(domain.SettingUpgradeReferralCents, 10000))
	}
	detail, _ := json.Marshal(map[string]interface{}{"referral_category": category})
	if _, err := s.ledgerRepo.CreateOnce(&models.CommissionEntry{
		CoachID:     coachID,
		MemberID:    memberID,
		Month:       month,
		Category:    ledgerCategory,
		AmountCents: amount,
		Status:      domain.EntryStatusPending,
		Detail:      string(detail),
	}); err != nil {
		log.Printf("[referral] commission entry for coach %d month %s: %v", coachID, month, err)
	}
	return ev, nil
}

// EventsForCoach lists the coach's referral events in a month, most recent
// first. The report only carries the counts; this is the detail behind them.
func (s *ReferralService) EventsForCoach(coachID uint, month string) ([]models.ReferralEvent, error) {
	if _, err := s.coachRepo.GetByID(coachID); err != nil {
		return nil, err
	}
	return s.referralRepo.ListByCoachMonth(coachID, month)
}

func (s *ReferralService) settingInt(key string, fallback int) int {
	val, err := s.settingRepo.Get(key)
	if err != nil || val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}
