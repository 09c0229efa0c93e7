package service

import (
	"testing"
	"time"

	"coachpay/internal/domain"
	"coachpay/internal/models"
)

func TestSyncRecurringChampionScenario(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	svc := NewPayrollService(repos.member, repos.ledger)

	coach := seedCoach(t, db, "Ana Silva")
	// 6-month Champion plan starting mid-January.
	member := seedMember(t, db, coach.ID, 6, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))

	// 2024-01 is subscription month 1: covered by onboarding, never recurring.
	res, err := svc.SyncRecurring("2024-01")
	if err != nil {
		t.Fatalf("sync 2024-01: %v", err)
	}
	if res.Created != 0 || res.Skipped != 1 {
		t.Errorf("2024-01: created=%d skipped=%d, want 0/1", res.Created, res.Skipped)
	}

	// 2024-03 is month 3 of a Champion plan: 100 per month.
	res, err = svc.SyncRecurring("2024-03")
	if err != nil {
		t.Fatalf("sync 2024-03: %v", err)
	}
	if res.Created != 1 {
		t.Fatalf("2024-03: created=%d, want 1", res.Created)
	}
	var e models.CommissionEntry
	if err := db.Where("coach_id = ? AND member_id = ? AND month = ?", coach.ID, member.ID, "2024-03").
		First(&e).Error; err != nil {
		t.Fatalf("load entry: %v", err)
	}
	if e.AmountCents != 10000 {
		t.Errorf("amount = %d, want 10000", e.AmountCents)
	}
	if e.Category != domain.CategoryRecurringBonus {
		t.Errorf("category = %s", e.Category)
	}
	if e.Tier != "CHAMPION" {
		t.Errorf("tier = %s, want CHAMPION", e.Tier)
	}
}

func TestSyncRecurringIdempotent(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	svc := NewPayrollService(repos.member, repos.ledger)

	coach := seedCoach(t, db, "Ben Okafor")
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seedMember(t, db, coach.ID, 12, start)
	seedMember(t, db, coach.ID, 3, start)

	first, err := svc.SyncRecurring("2024-02")
	if err != nil {
		t.Fatalf("first sync: %v", err)
	}
	if first.Created != 2 || first.Duplicates != 0 {
		t.Errorf("first run: created=%d duplicates=%d, want 2/0", first.Created, first.Duplicates)
	}

	second, err := svc.SyncRecurring("2024-02")
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if second.Created != 0 || second.Duplicates != 2 {
		t.Errorf("second run: created=%d duplicates=%d, want 0/2", second.Created, second.Duplicates)
	}
	if n := countEntries(t, db, coach.ID, "2024-02", domain.CategoryRecurringBonus); n != 2 {
		t.Errorf("ledger entries = %d, want exactly 2", n)
	}
}

func TestSyncRecurringSkipsIneligible(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	svc := NewPayrollService(repos.member, repos.ledger)

	coach := seedCoach(t, db, "Cara Jones")
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	// A legacy 2-month plan maps to no tier and earns nothing.
	seedMember(t, db, coach.ID, 2, start)
	// Unassigned member is not on the roster at all.
	seedMember(t, db, 0, 6, start)
	// Inactive member is excluded.
	inactive := seedMember(t, db, coach.ID, 6, start)
	if err := repos.member.Deactivate(inactive.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	res, err := svc.SyncRecurring("2024-02")
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if res.Eligible != 1 || res.Created != 0 || res.Skipped != 1 {
		t.Errorf("eligible=%d created=%d skipped=%d, want 1/0/1", res.Eligible, res.Created, res.Skipped)
	}
}
