// Package commission holds the pure bonus-schedule math: tier
// classification, the recurring and onboarding bonus tables, performance
// evaluation and the PT revenue-share rates. Nothing here touches the
// database; callers decide what to persist.
package commission

// Tier names a subscription plan length.
type Tier string

const (
	TierUnknown    Tier = "UNKNOWN"
	TierChallenger Tier = "CHALLENGER" // 1 month
	TierFighter    Tier = "FIGHTER"    // 3 months
	TierChampion   Tier = "CHAMPION"   // 6 months
	TierElite      Tier = "ELITE"      // 12 months
)

// TierForDuration maps a subscription duration in months to its tier.
// Any duration outside the sold plan lengths is TierUnknown and earns
// nothing downstream.
func TierForDuration(months int) Tier {
	switch months {
	case 1:
		return TierChallenger
	case 3:
		return TierFighter
	case 6:
		return TierChampion
	case 12:
		return TierElite
	}
	return TierUnknown
}
