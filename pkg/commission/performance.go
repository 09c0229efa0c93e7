package commission

// Monthly referral targets. Both the met/doubled flags and the three-way
// achiever level classify off the same thresholds.
const (
	targetReferrals = 5
	targetUpgrades  = 3
)

// Level is the three-way monthly achiever classification.
type Level string

const (
	LevelNone   Level = "NONE"
	LevelBasic  Level = "BASIC"
	LevelDouble Level = "DOUBLE"
)

// Performance is a coach's referral performance for one month.
type Performance struct {
	ServiceReferrals int
	Upgrades         int
}

// TargetMet reports whether the base monthly target was reached.
func (p Performance) TargetMet() bool {
	return p.ServiceReferrals >= targetReferrals && p.Upgrades >= targetUpgrades
}

// TargetDoubled reports whether the coach reached twice the base target.
func (p Performance) TargetDoubled() bool {
	return p.ServiceReferrals >= 2*targetReferrals && p.Upgrades >= 2*targetUpgrades
}

// Level classifies the month on the same thresholds as the flags.
func (p Performance) Level() Level {
	switch {
	case p.TargetDoubled():
		return LevelDouble
	case p.TargetMet():
		return LevelBasic
	}
	return LevelNone
}

// Per-active-client bonus rates shared by both schedules.
const (
	rateBasicCents  int64 = 5000
	rateDoubleCents int64 = 10000
)

// Schedule converts a month's performance into a per-active-client bonus.
// The two concrete schedules pay out differently for the same facts, so the
// choice is an explicit runtime setting rather than a hardcoded default.
type Schedule interface {
	Name() string
	// BonusCents returns the performance bonus for a coach with the given
	// performance, active-client count, and leaderboard rank (1-based;
	// 0 when rank is unknown or not applicable).
	BonusCents(p Performance, activeClients, rank int) int64
}

// LevelSchedule pays by achiever level alone: 50 per client at basic,
// 100 per client at double, independent of rank.
type LevelSchedule struct{}

func (LevelSchedule) Name() string { return "level" }

func (LevelSchedule) BonusCents(p Performance, activeClients, _ int) int64 {
	switch p.Level() {
	case LevelDouble:
		return rateDoubleCents * int64(activeClients)
	case LevelBasic:
		return rateBasicCents * int64(activeClients)
	}
	return 0
}

// RankSchedule pays 50 per client when the target is met, doubled to 100 per
// client when the coach also holds rank 1 on the month's leaderboard.
type RankSchedule struct{}

func (RankSchedule) Name() string { return "rank" }

func (RankSchedule) BonusCents(p Performance, activeClients, rank int) int64 {
	if !p.TargetMet() {
		return 0
	}
	if rank == 1 {
		return rateDoubleCents * int64(activeClients)
	}
	return rateBasicCents * int64(activeClients)
}

// ScheduleByName returns the named schedule, defaulting to LevelSchedule for
// anything unrecognized.
func ScheduleByName(name string) Schedule {
	if name == "rank" {
		return RankSchedule{}
	}
	return LevelSchedule{}
}
