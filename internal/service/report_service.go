package service

import (
	"coachpay/internal/domain"
	"coachpay/internal/models"
	"coachpay/internal/repository"
	"coachpay/pkg/commission"
	"coachpay/pkg/monthkey"
)

// ReportService builds and serves the per-coach monthly snapshot.
type ReportService struct {
	coachRepo       *repository.CoachRepository
	memberRepo      *repository.MemberRepository
	ledgerRepo      *repository.LedgerRepository
	referralRepo    *repository.ReferralRepository
	settingRepo     *repository.SettingRepository
	leaderboardRepo *repository.LeaderboardRepository
	ptService       *PTService
	reportRepo      *repository.ReportRepository
}

func NewReportService(
	coachRepo *repository.CoachRepository,
	memberRepo *repository.MemberRepository,
	ledgerRepo *repository.LedgerRepository,
	referralRepo *repository.ReferralRepository,
	settingRepo *repository.SettingRepository,
	leaderboardRepo *repository.LeaderboardRepository,
	ptService *PTService,
	reportRepo *repository.ReportRepository,
) *ReportService {
	return &ReportService{
		coachRepo:       coachRepo,
		memberRepo:      memberRepo,
		ledgerRepo:      ledgerRepo,
		referralRepo:    referralRepo,
		settingRepo:     settingRepo,
		leaderboardRepo: leaderboardRepo,
		ptService:       ptService,
		reportRepo:      reportRepo,
	}
}

// GetOrBuild returns the coach's report for the month, rebuilding it from
// ledger entries and referral facts. A finalized report is history and is
// served as stored.
func (s *ReportService) GetOrBuild(coachID uint, month string) (*models.MonthlyReport, error) {
	if existing, err := s.reportRepo.GetByCoachMonth(coachID, month); err == nil &&
		existing.State == domain.ReportStateFinalized {
		return existing, nil
	}
	if err := s.Build(coachID, month); err != nil {
		return nil, err
	}
	return s.reportRepo.GetByCoachMonth(coachID, month)
}

// Build recomputes and upserts the (coach, month) report row. Finalized
// reports are immutable until the month is reopened.
func (s *ReportService) Build(coachID uint, month string) error {
	if existing, err := s.reportRepo.GetByCoachMonth(coachID, month); err == nil &&
		existing.State == domain.ReportStateFinalized {
		return ErrMonthFinalized
	}
	coach, err := s.coachRepo.GetByID(coachID)
	if err != nil {
		return err
	}
	monthStart, _, err := monthkey.Bounds(month)
	if err != nil {
		return err
	}

	tierSums, err := s.ledgerRepo.SumRecurringByTier(coach.ID, month, domain.CategoryRecurringBonus)
	if err != nil {
		return err
	}
	rep := &models.MonthlyReport{
		CoachID:                  coach.ID,
		Month:                    month,
		RecurringChallengerCents: tierSums[string(commission.TierChallenger)],
		RecurringFighterCents:    tierSums[string(commission.TierFighter)],
		RecurringChampionCents:   tierSums[string(commission.TierChampion)],
		RecurringEliteCents:      tierSums[string(commission.TierElite)],
		State:                    domain.ReportStateOpen,
	}
	rep.RecurringTotalCents = rep.RecurringChallengerCents + rep.RecurringFighterCents +
		rep.RecurringChampionCents + rep.RecurringEliteCents

	serviceTotal, err := s.ledgerRepo.SumByCategory(coach.ID, month, domain.CategoryServiceReferral)
	if err != nil {
		return err
	}
	upgradeTotal, err := s.ledgerRepo.SumByCategory(coach.ID, month, domain.CategoryUpgradeReferral)
	if err != nil {
		return err
	}
	rep.ReferralTotalCents = serviceTotal + upgradeTotal

	referrals, upgrades, err := s.referralRepo.CountForMonth(coach.ID, month)
	if err != nil {
		return err
	}
	rep.ServiceReferralCount = referrals
	rep.UpgradeCount = upgrades

	perf := commission.Performance{ServiceReferrals: referrals, Upgrades: upgrades}
	rep.TargetMet = perf.TargetMet()
	rep.TargetDoubled = perf.TargetDoubled()
	rep.AchieverLevel = string(perf.Level())

	rep.ActiveClients, err = s.memberRepo.CountActiveByCoach(coach.ID, monthStart)
	if err != nil {
		return err
	}
	schedule := s.schedule()
	rep.PerformanceBonusCents = schedule.BonusCents(perf, rep.ActiveClients, s.rankOf(coach.ID, month))

	// Base salary and PT commission are deliberately not in this total;
	// they belong to the live income view.
	rep.GrandTotalCents = rep.RecurringTotalCents + rep.ReferralTotalCents + rep.PerformanceBonusCents
	return s.reportRepo.Upsert(rep)
}

// Income is the request-time view of a coach's month: unlike the report
// grand total it includes base salary and the PT commission at the rate the
// coach actually earns.
type Income struct {
	CoachID               uint   `json:"coach_id"`
	Month                 string `json:"month"`
	BaseSalaryCents       int64  `json:"base_salary_cents"`
	OnboardingCents       int64  `json:"onboarding_cents"`
	RecurringCents        int64  `json:"recurring_cents"`
	ReferralCents         int64  `json:"referral_cents"`
	PerformanceBonusCents int64  `json:"performance_bonus_cents"`
	PTCommissionCents     int64  `json:"pt_commission_cents"`
	PTRateElevated        bool   `json:"pt_rate_elevated"`
	TotalCents            int64  `json:"total_cents"`
}

// LiveIncome computes the full income view for one coach and month.
func (s *ReportService) LiveIncome(coachID uint, month string) (*Income, error) {
	coach, err := s.coachRepo.GetByID(coachID)
	if err != nil {
		return nil, err
	}
	rep, err := s.GetOrBuild(coachID, month)
	if err != nil {
		return nil, err
	}
	onboarding, err := s.ledgerRepo.SumByCategory(coachID, month, domain.CategoryOnboardingBonus)
	if err != nil {
		return nil, err
	}
	perf := commission.Performance{ServiceReferrals: rep.ServiceReferralCount, Upgrades: rep.UpgradeCount}
	elevated := perf.TargetMet()
	ptCents, err := s.ptService.CommissionForCoach(coachID, month, elevated)
	if err != nil {
		return nil, err
	}
	inc := &Income{
		CoachID:               coachID,
		Month:                 month,
		BaseSalaryCents:       coach.BaseSalaryCents,
		OnboardingCents:       onboarding,
		RecurringCents:        rep.RecurringTotalCents,
		ReferralCents:         rep.ReferralTotalCents,
		PerformanceBonusCents: rep.PerformanceBonusCents,
		PTCommissionCents:     ptCents,
		PTRateElevated:        elevated,
	}
	inc.TotalCents = inc.BaseSalaryCents + inc.OnboardingCents + inc.RecurringCents +
		inc.ReferralCents + inc.PerformanceBonusCents + inc.PTCommissionCents
	return inc, nil
}

// Entries returns the coach's raw ledger rows for the month, the audit
// trail behind the report totals.
func (s *ReportService) Entries(coachID uint, month string) ([]models.CommissionEntry, error) {
	if _, err := s.coachRepo.GetByID(coachID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.ListByCoachMonth(coachID, month)
}

func (s *ReportService) schedule() commission.Schedule {
	name, err := s.settingRepo.Get(domain.SettingRateSchedule)
	if err != nil {
		name = domain.ScheduleLevel
	}
	return commission.ScheduleByName(name)
}

// rankOf returns the coach's rank on the latest leaderboard snapshot for the
// month, or 0 when no snapshot exists. Only the rank schedule consumes it.
func (s *ReportService) rankOf(coachID uint, month string) int {
	snap, err := s.leaderboardRepo.LatestForMonth(month)
	if err != nil {
		return 0
	}
	for _, e := range snap.Entries {
		if e.CoachID == coachID {
			return e.Rank
		}
	}
	return 0
}
