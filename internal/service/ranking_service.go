package service

import (
	"log"
	"sort"
	"time"

	"coachpay/internal/domain"
	"coachpay/internal/models"
	"coachpay/internal/repository"
	"coachpay/pkg/commission"

	"github.com/google/uuid"
)

// Broadcaster pushes a recomputed leaderboard to live subscribers. The ws
// hub implements it; tests use a nil-safe no-op.
type Broadcaster interface {
	BroadcastLeaderboard(snap *models.LeaderboardSnapshot)
}

// RankingService maintains the materialized monthly leaderboard.
type RankingService struct {
	coachRepo       *repository.CoachRepository
	ledgerRepo      *repository.LedgerRepository
	leaderboardRepo *repository.LeaderboardRepository
	ptService       *PTService
	broadcaster     Broadcaster
	maxAge          time.Duration
}

func NewRankingService(
	coachRepo *repository.CoachRepository,
	ledgerRepo *repository.LedgerRepository,
	leaderboardRepo *repository.LeaderboardRepository,
	ptService *PTService,
	broadcaster Broadcaster,
	maxAge time.Duration,
) *RankingService {
	return &RankingService{
		coachRepo:       coachRepo,
		ledgerRepo:      ledgerRepo,
		leaderboardRepo: leaderboardRepo,
		ptService:       ptService,
		broadcaster:     broadcaster,
		maxAge:          maxAge,
	}
}

// Recompute rebuilds the month's leaderboard from scratch and persists it as
// a new versioned snapshot.
//
// The ranking total is onboarding + recurring + referral commissions + PT
// commission at the baseline rate only. Using the elevated rate here would
// be circular: rank would feed the rate that feeds the total that decides
// rank. Ties keep input order, which ListActiveCoaches fixes as ascending
// coach id, so the first coach encountered keeps the lower rank.
func (s *RankingService) Recompute(month string) (*models.LeaderboardSnapshot, error) {
	coaches, err := s.coachRepo.ListActiveCoaches()
	if err != nil {
		return nil, err
	}
	ptRevenue, _, err := s.ptService.RevenueByCoach(month)
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(coaches))
	for _, coach := range coaches {
		var total int64
		for _, cat := range []string{
			domain.CategoryOnboardingBonus,
			domain.CategoryRecurringBonus,
			domain.CategoryServiceReferral,
			domain.CategoryUpgradeReferral,
		} {
			sum, err := s.ledgerRepo.SumByCategory(coach.ID, month, cat)
			if err != nil {
				return nil, err
			}
			total += sum
		}
		total += commission.PTCommissionCents(ptRevenue[coach.ID], false)
		entries = append(entries, models.LeaderboardEntry{
			CoachID:    coach.ID,
			CoachName:  coach.FullName,
			TotalCents: total,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalCents > entries[j].TotalCents
	})
	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].IsTop = i == 0
	}

	snap := &models.LeaderboardSnapshot{
		Version:    uuid.NewString(),
		Month:      month,
		ComputedAt: time.Now().UTC(),
		Entries:    entries,
	}
	if err := s.leaderboardRepo.SaveSnapshot(snap); err != nil {
		return nil, err
	}
	log.Printf("[ranking] recomputed %s: coaches=%d version=%s", month, len(entries), snap.Version)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastLeaderboard(snap)
	}
	return snap, nil
}

// Leaderboard serves the cached snapshot for the month, recomputing when no
// snapshot exists or the cached one has outlived maxAge.
func (s *RankingService) Leaderboard(month string) (*models.LeaderboardSnapshot, error) {
	snap, err := s.leaderboardRepo.LatestForMonth(month)
	if err == nil && (s.maxAge <= 0 || time.Since(snap.ComputedAt) <= s.maxAge) {
		return snap, nil
	}
	return s.Recompute(month)
}
