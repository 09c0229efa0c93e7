package service

import (
	"encoding/json"
	"log"

	"coachpay/internal/domain"
	"coachpay/internal/models"
	"coachpay/internal/repository"
	"coachpay/pkg/commission"
	"coachpay/pkg/monthkey"
)

// PayrollService runs the monthly recurring-bonus sync: one ledger entry per
// eligible (coach, client) pair per month.
type PayrollService struct {
	memberRepo *repository.MemberRepository
	ledgerRepo *repository.LedgerRepository
}

func NewPayrollService(memberRepo *repository.MemberRepository, ledgerRepo *repository.LedgerRepository) *PayrollService {
	return &PayrollService{memberRepo: memberRepo, ledgerRepo: ledgerRepo}
}

// SyncResult reports what one sync run did. Skipped counts clients whose
// tier/month-index combination earns nothing this month; Duplicates counts
// entries that already existed (re-runs, concurrent runs); Failed counts
// clients whose insert errored and will be picked up by the next run.
type SyncResult struct {
	Month      string `json:"month"`
	Eligible   int    `json:"eligible"`
	Created    int    `json:"created"`
	Duplicates int    `json:"duplicates"`
	Skipped    int    `json:"skipped"`
	Failed     int    `json:"failed"`
}

// SyncRecurring evaluates every active coached member against the recurring
// bonus schedule for the month and inserts the resulting ledger entries.
// The unique index on the ledger makes re-runs and concurrent runs safe: a
// partially failed batch is simply run again and already-paid clients come
// back as duplicates, not double payments.
func (s *PayrollService) SyncRecurring(month string) (*SyncResult, error) {
	monthStart, _, err := monthkey.Bounds(month)
	if err != nil {
		return nil, err
	}
	roster, err := s.memberRepo.ActiveRoster(monthStart)
	if err != nil {
		return nil, err
	}

	res := &SyncResult{Month: month, Eligible: len(roster)}
	for _, m := range roster {
		tier := commission.TierForDuration(m.DurationMonths)
		idx, err := monthkey.Index(m.SubscriptionStart, month)
		if err != nil {
			return nil, err
		}
		amount := commission.RecurringBonusCents(tier, idx)
		if amount == 0 {
			res.Skipped++
			continue
		}
		detail, _ := json.Marshal(map[string]interface{}{
			"tier":            string(tier),
			"month_index":     idx,
			"duration_months": m.DurationMonths,
		})
		created, err := s.ledgerRepo.CreateOnce(&models.CommissionEntry{
			CoachID:     m.CoachID,
			MemberID:    m.ID,
			Month:       month,
			Category:    domain.CategoryRecurringBonus,
			AmountCents: amount,
			Tier:        string(tier),
			Status:      domain.EntryStatusPending,
			Detail:      string(detail),
		})
		if err != nil {
			log.Printf("[payroll] recurring entry for member %d month %s: %v", m.ID, month, err)
			res.Failed++
			continue
		}
		if created {
			res.Created++
		} else {
			res.Duplicates++
		}
	}
	log.Printf("[payroll] sync %s: eligible=%d created=%d duplicates=%d skipped=%d failed=%d",
		month, res.Eligible, res.Created, res.Duplicates, res.Skipped, res.Failed)
	return res, nil
}
