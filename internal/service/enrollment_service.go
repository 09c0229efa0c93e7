package service

import (
	"encoding/json"
	"log"
	"time"

	"coachpay/internal/domain"
	"coachpay/internal/models"
	"coachpay/internal/repository"
	"coachpay/pkg/commission"
	"coachpay/pkg/monthkey"
)

// EnrollmentService is the ingestion point for the external registration
// system: new members and subscription upgrades arrive here, and the
// one-time onboarding bonus is written as a side effect.
type EnrollmentService struct {
	memberRepo   *repository.MemberRepository
	coachRepo    *repository.CoachRepository
	ledgerRepo   *repository.LedgerRepository
	referralRepo *repository.ReferralRepository
}

func NewEnrollmentService(
	memberRepo *repository.MemberRepository,
	coachRepo *repository.CoachRepository,
	ledgerRepo *repository.LedgerRepository,
	referralRepo *repository.ReferralRepository,
) *EnrollmentService {
	return &EnrollmentService{
		memberRepo:   memberRepo,
		coachRepo:    coachRepo,
		ledgerRepo:   ledgerRepo,
		referralRepo: referralRepo,
	}
}

// Register creates the member and, when a coach is assigned, writes the
// one-time onboarding bonus entry. A bonus failure never aborts the
// registration itself.
func (s *EnrollmentService) Register(fullName string, durationMonths int, start time.Time, coachID uint) (*models.Member, error) {
	if coachID != 0 {
		if _, err := s.coachRepo.GetByID(coachID); err != nil {
			return nil, err
		}
	}
	m := &models.Member{
		FullName:          fullName,
		DurationMonths:    durationMonths,
		SubscriptionStart: start,
		ExpiresAt:         start.AddDate(0, durationMonths, 0),
		CoachID:           coachID,
		IsActive:          true,
	}
	if err := s.memberRepo.Create(m); err != nil {
		return nil, err
	}
	s.awardOnboarding(m, monthkey.Format(start), "registration")
	return m, nil
}

// Upgrade re-anchors the member's subscription on the new plan, runs the
// upgrade's own onboarding accounting, and records the membership-upgrade
// referral event for the coach.
func (s *EnrollmentService) Upgrade(memberID uint, durationMonths int, when time.Time) (*models.Member, error) {
	m, err := s.memberRepo.GetByID(memberID)
	if err != nil {
		return nil, err
	}
	if err := s.memberRepo.Reanchor(m.ID, durationMonths, when); err != nil {
		return nil, err
	}
	m, err = s.memberRepo.GetByID(memberID)
	if err != nil {
		return nil, err
	}
	month := monthkey.Format(when)
	s.awardOnboarding(m, month, "upgrade")
	if m.CoachID != 0 {
		if err := s.referralRepo.Create(&models.ReferralEvent{
			CoachID:  m.CoachID,
			MemberID: m.ID,
			Category: domain.ReferralUpgrade,
			Month:    month,
		}); err != nil {
			log.Printf("[enrollment] upgrade referral event for member %d: %v", m.ID, err)
		}
	}
	return m, nil
}

func (s *EnrollmentService) awardOnboarding(m *models.Member, month, reason string) {
	if m.CoachID == 0 {
		return
	}
	amount := commission.OnboardingBonusCents(m.DurationMonths)
	if amount == 0 {
		return
	}
	tier := commission.TierForDuration(m.DurationMonths)
	detail, _ := json.Marshal(map[string]interface{}{
		"tier":            string(tier),
		"duration_months": m.DurationMonths,
		"reason":          reason,
	})
	_, err := s.ledgerRepo.CreateOnce(&models.CommissionEntry{
		CoachID:     m.CoachID,
		MemberID:    m.ID,
		Month:       month,
		Category:    domain.CategoryOnboardingBonus,
		AmountCents: amount,
		Tier:        string(tier),
		Status:      domain.EntryStatusPending,
		Detail:      string(detail),
		Note:        reason,
	})
	if err != nil {
		log.Printf("[enrollment] onboarding bonus for member %d (%s): %v", m.ID, reason, err)
	}
}
