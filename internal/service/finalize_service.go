package service

import (
	"encoding/json"
	"log"
	"time"

	"coachpay/internal/domain"
	"coachpay/internal/models"
	"coachpay/internal/repository"
)

// FinalizeService closes a month: it crowns the top performer, pays the flat
// top-performer bonus exactly once, and locks every report.
type FinalizeService struct {
	reportRepo *repository.ReportRepository
	ledgerRepo *repository.LedgerRepository
}

func NewFinalizeService(reportRepo *repository.ReportRepository, ledgerRepo *repository.LedgerRepository) *FinalizeService {
	return &FinalizeService{reportRepo: reportRepo, ledgerRepo: ledgerRepo}
}

// FinalizeResult summarizes a month close.
type FinalizeResult struct {
	Month             string `json:"month"`
	Reports           int    `json:"reports"`
	TopCoachID        uint   `json:"top_coach_id"`
	BonusEntryCreated bool   `json:"bonus_entry_created"`
}

// componentTotal is what a coach actually earned in the month: the stored
// grand total may still carry a prior cycle's top-performer bonus, so the
// winner is always picked from the components.
func componentTotal(rep *models.MonthlyReport) int64 {
	return rep.RecurringTotalCents + rep.ReferralTotalCents + rep.PerformanceBonusCents
}

// Finalize is a one-way transition. It refuses to run on an already
// finalized month (ErrMonthFinalized) instead of silently rewriting closed
// history; an explicit Reopen is the only way back. The month pays the flat
// top-performer bonus at most once: if a reopen cycle changes the winner,
// the previous winner's ledger entry is reversed before the new one is paid.
func (s *FinalizeService) Finalize(month string) (*FinalizeResult, error) {
	reports, err := s.reportRepo.ListByMonth(month)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, ErrNoReports
	}
	finalized, err := s.reportRepo.AnyFinalized(month)
	if err != nil {
		return nil, err
	}
	if finalized {
		return nil, ErrMonthFinalized
	}

	// Highest component total wins; on a tie the first found (lowest coach
	// id) keeps the crown, matching the leaderboard's tie rule.
	top := &reports[0]
	for i := range reports[1:] {
		if componentTotal(&reports[i+1]) > componentTotal(top) {
			top = &reports[i+1]
		}
	}

	created, err := s.payTopPerformer(month, top, len(reports))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for i := range reports {
		rep := &reports[i]
		rep.IsTopPerformer = rep.ID == top.ID
		// Recompute from the component fields rather than adding to the
		// stored total, so a reopen/finalize cycle stays idempotent.
		rep.GrandTotalCents = componentTotal(rep)
		if rep.IsTopPerformer {
			rep.GrandTotalCents += domain.TopPerformerBonusCents
		}
		rep.State = domain.ReportStateFinalized
		rep.FinalizedAt = &now
		if err := s.reportRepo.Save(rep); err != nil {
			return nil, err
		}
	}
	log.Printf("[finalize] %s closed: reports=%d top_coach=%d bonus_created=%v",
		month, len(reports), top.CoachID, created)
	return &FinalizeResult{
		Month:             month,
		Reports:           len(reports),
		TopCoachID:        top.CoachID,
		BonusEntryCreated: created,
	}, nil
}

// payTopPerformer reconciles the month's single top-performer payment. Any
// prior entry held by a different coach is reversed; the winner's entry is
// created, or re-approved when they had been reversed in an earlier cycle.
func (s *FinalizeService) payTopPerformer(month string, top *models.MonthlyReport, reportCount int) (bool, error) {
	existing, err := s.ledgerRepo.ListByMonthCategory(month, domain.CategoryTopPerformer)
	if err != nil {
		return false, err
	}
	var winnerEntry *models.CommissionEntry
	for i := range existing {
		e := &existing[i]
		if e.CoachID == top.CoachID {
			winnerEntry = e
			continue
		}
		if e.Status != domain.EntryStatusReversed {
			if err := s.ledgerRepo.UpdateStatus(e.ID, domain.EntryStatusReversed); err != nil {
				return false, err
			}
			log.Printf("[finalize] %s reversed top-performer entry for coach %d (winner changed)",
				month, e.CoachID)
		}
	}
	if winnerEntry != nil {
		if winnerEntry.Status == domain.EntryStatusReversed {
			return false, s.ledgerRepo.UpdateStatus(winnerEntry.ID, domain.EntryStatusApproved)
		}
		return false, nil
	}
	detail, _ := json.Marshal(map[string]interface{}{
		"component_total_cents": componentTotal(top),
		"reports_in_month":      reportCount,
	})
	return s.ledgerRepo.CreateOnce(&models.CommissionEntry{
		CoachID:     top.CoachID,
		Month:       month,
		Category:    domain.CategoryTopPerformer,
		AmountCents: domain.TopPerformerBonusCents,
		Status:      domain.EntryStatusApproved,
		Detail:      string(detail),
	})
}

// Reopen reverses the report locks for a month. The top-performer ledger
// entry stays put: the next Finalize reconciles it, reversing it if the
// winner changes.
func (s *FinalizeService) Reopen(month string) error {
	n, err := s.reportRepo.ReopenMonth(month)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMonthNotFinalized
	}
	log.Printf("[finalize] %s reopened: reports=%d", month, n)
	return nil
}
