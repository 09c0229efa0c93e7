package service

import (
	"testing"
	"time"

	"coachpay/internal/domain"
	"coachpay/internal/models"
)

func newReportService(repos *testRepos) *ReportService {
	ptSvc := NewPTService(repos.receipt, repos.session, repos.coach)
	return NewReportService(repos.coach, repos.member, repos.ledger, repos.referral,
		repos.setting, repos.leaderboard, ptSvc, repos.report)
}

func TestBuildReportAggregation(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	reportSvc := newReportService(repos)
	payrollSvc := NewPayrollService(repos.member, repos.ledger)
	referralSvc := NewReferralService(repos.referral, repos.ledger, repos.setting, repos.coach, repos.member)

	coach := seedCoach(t, db, "Dana Wu")
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	champion := seedMember(t, db, coach.ID, 6, start)  // 100/month in 2024-02
	elite := seedMember(t, db, coach.ID, 12, start)    // 150/month in 2024-02
	if _, err := payrollSvc.SyncRecurring("2024-02"); err != nil {
		t.Fatalf("sync: %v", err)
	}

	// Five service referrals and three upgrades: the basic target exactly.
	for i := 0; i < 5; i++ {
		m := seedMember(t, db, coach.ID, 6, start)
		if _, err := referralSvc.Record(coach.ID, m.ID, domain.ReferralPhone, "2024-02"); err != nil {
			t.Fatalf("referral %d: %v", i, err)
		}
	}
	for i := 0; i < 3; i++ {
		m := seedMember(t, db, coach.ID, 12, start)
		if _, err := referralSvc.Record(coach.ID, m.ID, domain.ReferralUpgrade, "2024-02"); err != nil {
			t.Fatalf("upgrade %d: %v", i, err)
		}
	}
	_ = champion
	_ = elite

	rep, err := reportSvc.GetOrBuild(coach.ID, "2024-02")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if rep.RecurringChampionCents != 10000 || rep.RecurringEliteCents != 15000 {
		t.Errorf("tier breakdown champion=%d elite=%d, want 10000/15000",
			rep.RecurringChampionCents, rep.RecurringEliteCents)
	}
	if rep.RecurringTotalCents != 25000 {
		t.Errorf("recurring total = %d, want 25000", rep.RecurringTotalCents)
	}
	// 5 service referrals at 50 + 3 upgrade referrals at 100.
	if rep.ReferralTotalCents != 5*5000+3*10000 {
		t.Errorf("referral total = %d, want 55000", rep.ReferralTotalCents)
	}
	if rep.ServiceReferralCount != 5 || rep.UpgradeCount != 3 {
		t.Errorf("counts = %d/%d, want 5/3", rep.ServiceReferralCount, rep.UpgradeCount)
	}
	if !rep.TargetMet || rep.TargetDoubled {
		t.Errorf("flags met=%v doubled=%v, want true/false", rep.TargetMet, rep.TargetDoubled)
	}
	if rep.AchieverLevel != "BASIC" {
		t.Errorf("level = %s, want BASIC", rep.AchieverLevel)
	}
	// 10 active clients on the default level schedule at basic: 50 each.
	if rep.ActiveClients != 10 {
		t.Errorf("active clients = %d, want 10", rep.ActiveClients)
	}
	if rep.PerformanceBonusCents != 50000 {
		t.Errorf("performance bonus = %d, want 50000", rep.PerformanceBonusCents)
	}
	want := rep.RecurringTotalCents + rep.ReferralTotalCents + rep.PerformanceBonusCents
	if rep.GrandTotalCents != want {
		t.Errorf("grand total = %d, want %d", rep.GrandTotalCents, want)
	}
}

func TestBuildReportUpsertsSingleRow(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	reportSvc := newReportService(repos)

	coach := seedCoach(t, db, "Eli Brandt")
	if _, err := reportSvc.GetOrBuild(coach.ID, "2024-03"); err != nil {
		t.Fatalf("first build: %v", err)
	}
	if _, err := reportSvc.GetOrBuild(coach.ID, "2024-03"); err != nil {
		t.Fatalf("second build: %v", err)
	}
	var n int64
	if err := db.Model(&models.MonthlyReport{}).
		Where("coach_id = ? AND month = ?", coach.ID, "2024-03").
		Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("report rows = %d, want 1", n)
	}
}

func TestEntriesAuditView(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	reportSvc := newReportService(repos)
	referralSvc := NewReferralService(repos.referral, repos.ledger, repos.setting, repos.coach, repos.member)

	coach := seedCoach(t, db, "Gus Varga")
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m1 := seedMember(t, db, coach.ID, 6, start)
	m2 := seedMember(t, db, coach.ID, 6, start)
	if _, err := referralSvc.Record(coach.ID, m1.ID, domain.ReferralPhone, "2024-02"); err != nil {
		t.Fatalf("referral 1: %v", err)
	}
	if _, err := referralSvc.Record(coach.ID, m2.ID, domain.ReferralUpgrade, "2024-02"); err != nil {
		t.Fatalf("referral 2: %v", err)
	}

	entries, err := reportSvc.Entries(coach.ID, "2024-02")
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Category != domain.CategoryServiceReferral ||
		entries[1].Category != domain.CategoryUpgradeReferral {
		t.Errorf("categories = %s/%s", entries[0].Category, entries[1].Category)
	}

	events, err := referralSvc.EventsForCoach(coach.ID, "2024-02")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("events = %d, want 2", len(events))
	}

	if _, err := reportSvc.Entries(9999, "2024-02"); err == nil {
		t.Error("entries for unknown coach should fail")
	}
}

func TestLiveIncomeIncludesSalaryAndPT(t *testing.T) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	reportSvc := newReportService(repos)

	coach := seedCoach(t, db, "Fay Ndiaye")
	if err := db.Model(&models.Coach{}).Where("id = ?", coach.ID).
		Update("base_salary_cents", 300000).Error; err != nil {
		t.Fatalf("set salary: %v", err)
	}
	member := seedMember(t, db, coach.ID, 6, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	sess := &models.PTSession{MemberID: member.ID, CoachID: &coach.ID, PurchasedCount: 10, RemainingCount: 8}
	if err := db.Create(sess).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	rc := &models.Receipt{
		MemberID:    member.ID,
		Category:    domain.ReceiptCategoryPT,
		AmountCents: 200000,
		PTSessionID: &sess.ID,
		IssuedAt:    time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(rc).Error; err != nil {
		t.Fatalf("seed receipt: %v", err)
	}

	inc, err := reportSvc.LiveIncome(coach.ID, "2024-02")
	if err != nil {
		t.Fatalf("income: %v", err)
	}
	if inc.BaseSalaryCents != 300000 {
		t.Errorf("salary = %d", inc.BaseSalaryCents)
	}
	// Target not met: baseline 30% of 2000 PT revenue.
	if inc.PTRateElevated {
		t.Error("rate should not be elevated")
	}
	if inc.PTCommissionCents != 60000 {
		t.Errorf("pt commission = %d, want 60000", inc.PTCommissionCents)
	}
	// The income total includes salary and PT; the report grand total must not.
	rep, err := reportSvc.GetOrBuild(coach.ID, "2024-02")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if rep.GrandTotalCents == inc.TotalCents {
		t.Error("report grand total should exclude salary and PT commission")
	}
	want := inc.BaseSalaryCents + inc.OnboardingCents + inc.RecurringCents +
		inc.ReferralCents + inc.PerformanceBonusCents + inc.PTCommissionCents
	if inc.TotalCents != want {
		t.Errorf("income total = %d, want %d", inc.TotalCents, want)
	}
}
