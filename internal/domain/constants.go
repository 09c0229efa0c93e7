package domain

// Staff positions. Only COACH rows participate in ranking.
const (
	PositionCoach = "COACH"
	PositionAdmin = "ADMIN"
)

// Commission ledger categories.
const (
	CategoryRecurringBonus  = "RECURRING_TIER_BONUS"
	CategoryOnboardingBonus = "ONBOARDING_BONUS"
	CategoryServiceReferral = "SERVICE_REFERRAL"
	CategoryUpgradeReferral = "UPGRADE_REFERRAL"
	CategoryTopPerformer    = "TOP_PERFORMER"
	CategoryPTCommission    = "PT_COMMISSION"
)

// Ledger entry status. REVERSED marks an entry voided after the fact, e.g.
// a top-performer payment whose winner changed across a reopen cycle; the
// row stays as the audit trail but no longer counts as paid.
const (
	EntryStatusPending  = "PENDING"
	EntryStatusApproved = "APPROVED"
	EntryStatusReversed = "REVERSED"
)

// Monthly report states.
const (
	ReportStateOpen      = "OPEN"
	ReportStateFinalized = "FINALIZED"
)

// Referral event categories. Phone and walk-in referrals both count toward
// the service-referral target; upgrades are counted separately.
const (
	ReferralPhone   = "PHONE_REFERRAL"
	ReferralWalkIn  = "WALKIN_REFERRAL"
	ReferralUpgrade = "MEMBERSHIP_UPGRADE"
)

// Receipt categories relevant to commission attribution.
const (
	ReceiptCategoryPT           = "PT_PACKAGE"
	ReceiptCategorySubscription = "SUBSCRIPTION"
)

// System setting keys.
const (
	SettingRateSchedule         = "performance.rate_schedule" // "level" | "rank"
	SettingServiceReferralCents = "commission.service_referral_cents"
	SettingUpgradeReferralCents = "commission.upgrade_referral_cents"
)

// Performance rate schedule names (see pkg/commission).
const (
	ScheduleLevel = "level"
	ScheduleRank  = "rank"
)

// TopPerformerBonusCents is the flat month-close bonus for the rank-1 coach.
const TopPerformerBonusCents int64 = 100000
