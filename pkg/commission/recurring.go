package commission

// RecurringBonusCents returns the flat monthly recurring bonus for one
// active client, given the client's tier and the 1-based subscription-month
// index. Month 1 never pays (that month is covered by the onboarding bonus);
// an index outside the tier's eligible window returns 0, which callers treat
// as a silent skip rather than an error.
func RecurringBonusCents(tier Tier, monthIndex int) int64 {
	if monthIndex < 2 {
		return 0
	}
	switch tier {
	case TierChallenger:
		// Open-ended: pays for as long as the client keeps renewing.
		return 2500
	case TierFighter:
		if monthIndex <= 3 {
			return 7500
		}
	case TierChampion:
		if monthIndex <= 6 {
			return 10000
		}
	case TierElite:
		if monthIndex <= 12 {
			return 15000
		}
	}
	return 0
}

// OnboardingBonusCents returns the one-time bonus paid when a new client on
// the given plan length registers. Paid once per registration (and once more
// on an upgrade event, under its own accounting).
func OnboardingBonusCents(durationMonths int) int64 {
	switch durationMonths {
	case 3:
		return 15000
	case 6:
		return 20000
	case 12:
		return 25000
	}
	return 0
}
