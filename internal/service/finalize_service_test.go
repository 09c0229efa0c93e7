package service

import (
	"errors"
	"testing"

	"coachpay/internal/domain"
	"coachpay/internal/models"

	"gorm.io/gorm"
)

func seedReport(t *testing.T, repos *testRepos, coachID uint, month string, grandTotal int64) {
	t.Helper()
	err := repos.report.Upsert(&models.MonthlyReport{
		CoachID:             coachID,
		Month:               month,
		RecurringTotalCents: grandTotal,
		GrandTotalCents:     grandTotal,
		State:               domain.ReportStateOpen,
	})
	if err != nil {
		t.Fatalf("seed report: %v", err)
	}
}

func TestFinalizeCrownsTopAndLocks(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	svc := NewFinalizeService(repos.report, repos.ledger)

	winner := seedCoach(t, db, "Ida Moreau")
	runnerUp := seedCoach(t, db, "Jon Carver")
	seedReport(t, repos, winner.ID, "2024-05", 90000)
	seedReport(t, repos, runnerUp.ID, "2024-05", 40000)

	res, err := svc.Finalize("2024-05")
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if res.TopCoachID != winner.ID || !res.BonusEntryCreated {
		t.Errorf("top=%d created=%v, want %d/true", res.TopCoachID, res.BonusEntryCreated, winner.ID)
	}

	reports, err := repos.report.ListByMonth("2024-05")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, rep := range reports {
		if rep.State != domain.ReportStateFinalized || rep.FinalizedAt == nil {
			t.Errorf("coach %d report not finalized", rep.CoachID)
		}
		switch rep.CoachID {
		case winner.ID:
			if !rep.IsTopPerformer {
				t.Error("winner not flagged top")
			}
			if rep.GrandTotalCents != 90000+domain.TopPerformerBonusCents {
				t.Errorf("winner grand total = %d", rep.GrandTotalCents)
			}
		case runnerUp.ID:
			if rep.IsTopPerformer {
				t.Error("runner-up flagged top")
			}
			if rep.GrandTotalCents != 40000 {
				t.Errorf("runner-up grand total = %d", rep.GrandTotalCents)
			}
		}
	}
	if n := countEntries(t, db, winner.ID, "2024-05", domain.CategoryTopPerformer); n != 1 {
		t.Errorf("top-performer entries = %d, want 1", n)
	}
}

func TestFinalizeRefusesSecondRun(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	svc := NewFinalizeService(repos.report, repos.ledger)

	coach := seedCoach(t, db, "Kay Osei")
	seedReport(t, repos, coach.ID, "2024-05", 10000)

	if _, err := svc.Finalize("2024-05"); err != nil {
		t.Fatalf("first finalize: %v", err)
	}
	_, err := svc.Finalize("2024-05")
	if !errors.Is(err, ErrMonthFinalized) {
		t.Fatalf("second finalize err = %v, want ErrMonthFinalized", err)
	}
	if n := countEntries(t, db, coach.ID, "2024-05", domain.CategoryTopPerformer); n != 1 {
		t.Errorf("top-performer entries = %d, want 1", n)
	}
}

func TestFinalizeNoReports(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	svc := NewFinalizeService(repos.report, repos.ledger)

	_, err := svc.Finalize("2024-06")
	if !errors.Is(err, ErrNoReports) {
		t.Fatalf("err = %v, want ErrNoReports", err)
	}
}

func TestFinalizeTieFirstFoundWins(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	svc := NewFinalizeService(repos.report, repos.ledger)

	first := seedCoach(t, db, "Lia Horvat")
	second := seedCoach(t, db, "Max Droste")
	seedReport(t, repos, first.ID, "2024-05", 50000)
	seedReport(t, repos, second.ID, "2024-05", 50000)

	res, err := svc.Finalize("2024-05")
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if res.TopCoachID != first.ID {
		t.Errorf("tie winner = %d, want first found %d", res.TopCoachID, first.ID)
	}
}

func TestReopenThenFinalizePaysBonusOnce(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	svc := NewFinalizeService(repos.report, repos.ledger)

	coach := seedCoach(t, db, "Nia Patel")
	seedReport(t, repos, coach.ID, "2024-05", 30000)

	if _, err := svc.Finalize("2024-05"); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if err := svc.Reopen("2024-05"); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	res, err := svc.Finalize("2024-05")
	if err != nil {
		t.Fatalf("re-finalize: %v", err)
	}
	if res.BonusEntryCreated {
		t.Error("bonus entry duplicated across reopen cycle")
	}
	if n := countEntries(t, db, coach.ID, "2024-05", domain.CategoryTopPerformer); n != 1 {
		t.Errorf("top-performer entries = %d, want 1", n)
	}
	rep, err := repos.report.GetByCoachMonth(coach.ID, "2024-05")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	// Grand total recomputed from components, not stacked across cycles.
	if rep.GrandTotalCents != 30000+domain.TopPerformerBonusCents {
		t.Errorf("grand total = %d, want %d", rep.GrandTotalCents, 30000+domain.TopPerformerBonusCents)
	}
}

func approvedTopEntries(t *testing.T, db *gorm.DB, month string) int64 {
	t.Helper()
	var n int64
	err := db.Model(&models.CommissionEntry{}).
		Where("month = ? AND category = ? AND status = ?",
			month, domain.CategoryTopPerformer, domain.EntryStatusApproved).
		Count(&n).Error
	if err != nil {
		t.Fatalf("count approved top entries: %v", err)
	}
	return n
}

func topEntryStatus(t *testing.T, db *gorm.DB, coachID uint, month string) string {
	t.Helper()
	var e models.CommissionEntry
	err := db.Where("coach_id = ? AND month = ? AND category = ?",
		coachID, month, domain.CategoryTopPerformer).First(&e).Error
	if err != nil {
		t.Fatalf("top entry for coach %d: %v", coachID, err)
	}
	return e.Status
}

func TestRefinalizeWithNewWinner(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	svc := NewFinalizeService(repos.report, repos.ledger)

	first := seedCoach(t, db, "Pia Lund")
	second := seedCoach(t, db, "Rui Costa")
	seedReport(t, repos, first.ID, "2024-08", 50000)
	seedReport(t, repos, second.ID, "2024-08", 40000)

	if _, err := svc.Finalize("2024-08"); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if err := svc.Reopen("2024-08"); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	// Corrections land while the month is open: the runner-up now out-earns
	// the original winner. The original winner's stored grand total still
	// carried the bonus at close; selection must not be fooled by it.
	seedReport(t, repos, second.ID, "2024-08", 120000)

	res, err := svc.Finalize("2024-08")
	if err != nil {
		t.Fatalf("re-finalize: %v", err)
	}
	if res.TopCoachID != second.ID {
		t.Fatalf("top coach = %d, want %d", res.TopCoachID, second.ID)
	}
	if !res.BonusEntryCreated {
		t.Error("new winner's bonus entry not created")
	}
	if n := approvedTopEntries(t, db, "2024-08"); n != 1 {
		t.Errorf("approved top-performer entries = %d, want 1", n)
	}
	if s := topEntryStatus(t, db, first.ID, "2024-08"); s != domain.EntryStatusReversed {
		t.Errorf("dethroned coach's entry status = %s, want %s", s, domain.EntryStatusReversed)
	}

	firstRep, err := repos.report.GetByCoachMonth(first.ID, "2024-08")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if firstRep.IsTopPerformer || firstRep.GrandTotalCents != 50000 {
		t.Errorf("dethroned coach: top=%v grand=%d, want false/50000",
			firstRep.IsTopPerformer, firstRep.GrandTotalCents)
	}
	secondRep, err := repos.report.GetByCoachMonth(second.ID, "2024-08")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !secondRep.IsTopPerformer || secondRep.GrandTotalCents != 120000+domain.TopPerformerBonusCents {
		t.Errorf("new winner: top=%v grand=%d, want true/%d",
			secondRep.IsTopPerformer, secondRep.GrandTotalCents, 120000+domain.TopPerformerBonusCents)
	}
}

func TestRefinalizeWinnerRegainsCrown(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	svc := NewFinalizeService(repos.report, repos.ledger)

	first := seedCoach(t, db, "Sef Adeyemi")
	second := seedCoach(t, db, "Tova Lindqvist")
	seedReport(t, repos, first.ID, "2024-08", 50000)
	seedReport(t, repos, second.ID, "2024-08", 40000)

	// Cycle 1: first wins. Cycle 2: second takes over. Cycle 3: a further
	// correction hands the crown back to first.
	if _, err := svc.Finalize("2024-08"); err != nil {
		t.Fatalf("finalize 1: %v", err)
	}
	if err := svc.Reopen("2024-08"); err != nil {
		t.Fatalf("reopen 1: %v", err)
	}
	seedReport(t, repos, second.ID, "2024-08", 120000)
	if _, err := svc.Finalize("2024-08"); err != nil {
		t.Fatalf("finalize 2: %v", err)
	}
	if err := svc.Reopen("2024-08"); err != nil {
		t.Fatalf("reopen 2: %v", err)
	}
	seedReport(t, repos, second.ID, "2024-08", 30000)

	res, err := svc.Finalize("2024-08")
	if err != nil {
		t.Fatalf("finalize 3: %v", err)
	}
	if res.TopCoachID != first.ID {
		t.Fatalf("top coach = %d, want %d", res.TopCoachID, first.ID)
	}
	// The first coach's reversed entry is re-approved, not duplicated.
	if res.BonusEntryCreated {
		t.Error("re-approved entry reported as created")
	}
	if n := countEntries(t, db, first.ID, "2024-08", domain.CategoryTopPerformer); n != 1 {
		t.Errorf("entries for regained winner = %d, want 1", n)
	}
	if n := approvedTopEntries(t, db, "2024-08"); n != 1 {
		t.Errorf("approved top-performer entries = %d, want 1", n)
	}
	if s := topEntryStatus(t, db, first.ID, "2024-08"); s != domain.EntryStatusApproved {
		t.Errorf("regained winner's entry status = %s, want %s", s, domain.EntryStatusApproved)
	}
}

func TestReopenOpenMonth(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	svc := NewFinalizeService(repos.report, repos.ledger)

	coach := seedCoach(t, db, "Ola Berg")
	seedReport(t, repos, coach.ID, "2024-05", 10000)

	if err := svc.Reopen("2024-05"); !errors.Is(err, ErrMonthNotFinalized) {
		t.Fatalf("err = %v, want ErrMonthNotFinalized", err)
	}
}
