package nudge

import (
	"math"
	"math/rand"
	"modshop/domain"
)

// Every arm gets a baseline of pulls before the value estimate is trusted.
const coldStartThreshold = 5

// armScore is a UCB1 score with an explicit unbounded case for arms that
// have never been shown, instead of an infinite float.
type armScore struct {
	arm       domain.NudgeType
	unbounded bool
	value     float64
}

// beats is strict: on an exact tie the earlier arm in priority order wins.
func (a armScore) beats(b armScore) bool {
	if a.unbounded != b.unbounded {
		return a.unbounded
	}
	return a.value > b.value
}

// selectNudge picks the arm to show. An empty cart never nudges. Below the
// cold-start threshold the choice is uniform random; after that UCB1 scores
// decide, with ties broken block > alternative > gentle.
func selectNudge(stats *domain.UserNudgeStats, cartItems []domain.CartItem) domain.NudgeType {
	if len(cartItems) == 0 {
		return domain.NudgeNone
	}

	totalShown := stats.TotalShown()
	if totalShown < coldStartThreshold {
		explore := []domain.NudgeType{domain.NudgeGentle, domain.NudgeAlternative, domain.NudgeBlock}
		return explore[rand.Intn(len(explore))]
	}

	best := ucbScore(stats, domain.NudgeArms[0], totalShown)
	for _, arm := range domain.NudgeArms[1:] {
		if s := ucbScore(stats, arm, totalShown); s.beats(best) {
			best = s
		}
	}

	return best.arm
}

// ucbScore = mean savings per pull + sqrt(2 ln(totalShown) / shown).
// The reward term is the raw cumulative savings average, not normalized to
// [0,1] as in canonical UCB1.
func ucbScore(stats *domain.UserNudgeStats, arm domain.NudgeType, totalShown int) armScore {
	a, _ := stats.Arm(arm)
	if a.Shown == 0 {
		return armScore{arm: arm, unbounded: true}
	}

	mean := a.Savings / float64(a.Shown)
	bonus := math.Sqrt(2 * math.Log(float64(totalShown)) / float64(a.Shown))

	return armScore{arm: arm, value: mean + bonus}
}

// blockDuration maps the cart total to the countdown length in seconds.
func blockDuration(cartTotal float64) int {
	duration := int(math.Round(cartTotal/10)) * 5
	if duration < 10 {
		duration = 10
	}
	if duration > 60 {
		duration = 60
	}
	return duration
}
