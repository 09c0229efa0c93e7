package commission

// PT revenue-share rates, in basis points of attributed revenue.
const (
	ptBaseRateBps     int64 = 3000 // 30%
	ptElevatedRateBps int64 = 5000 // 50%
)

// PTCommissionCents applies the revenue-share rate to a coach's attributed
// PT revenue for the month. Coaches who met the monthly target earn the
// elevated rate. Ranking always uses the baseline rate; see the ranking
// service.
func PTCommissionCents(revenueCents int64, elevated bool) int64 {
	bps := ptBaseRateBps
	if elevated {
		bps = ptElevatedRateBps
	}
	return revenueCents * bps / 10000
}
