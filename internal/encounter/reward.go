package encounter

// #region imports
import (
	"log"
	"math"
)

// #endregion

// #region shaping-params

// ShapingParams are the fight-specific reward constants. Health weights
// apply to raw health units (normalized fractions are scaled back through
// the max pools before weighting), so a weight reads as "reward per point
// of damage".
type ShapingParams struct {
	HeroDeathReward float64 // fixed, large negative
	BossDeathReward float64 // fixed, large positive

	HeroMaxHealth float64
	BossMaxHealth float64

	BossDamageWeight float64 // per raw boss health point lost
	HeroDamageWeight float64 // per raw hero health point lost

	ApproachWeight float64 // per raw unit of hero-boss distance closed

	HazardY       float64 // raw vertical position below which the hazard penalty applies
	HazardPenalty float64

	DisengageDistance float64 // raw distance beyond which the stalling penalty applies
	DisengagePenalty  float64

	SurvivalBonus float64 // constant per non-terminal tick
}

// #endregion shaping-params

// #region shaped-reward

// shapedReward is the boss-agnostic shaping engine shared by the concrete
// strategies. prev and cur must both have the given vector size; anything
// else is logged and scored 0 so a malformed pair never poisons training.
func shapedReward(fight string, prev, cur []float64, vectorSize int, who Outcome, b Bounds, p ShapingParams) float64 {
	switch who {
	case OutcomeHeroDead:
		return p.HeroDeathReward
	case OutcomeBossDead:
		return p.BossDeathReward
	}

	if len(prev) != vectorSize || len(cur) != vectorSize {
		log.Printf("[ENCOUNTER] %s: observation length mismatch (prev=%d cur=%d want=%d), neutral reward", fight, len(prev), len(cur), vectorSize)
		return 0
	}

	reward := 0.0

	// Health deltas, scaled back to raw units before weighting.
	bossLoss := (prev[slotBossHealth] - cur[slotBossHealth]) * p.BossMaxHealth
	heroLoss := (prev[slotHeroHealth] - cur[slotHeroHealth]) * p.HeroMaxHealth
	reward += bossLoss * p.BossDamageWeight
	reward -= heroLoss * p.HeroDamageWeight

	// Approach shaping only counts on ticks where the hero took no damage,
	// so closing distance never papers over a hit.
	prevDist := heroBossDistance(prev, b)
	curDist := heroBossDistance(cur, b)
	if heroLoss <= 0 {
		reward += (prevDist - curDist) * p.ApproachWeight
	}

	heroY := denormalize(cur[slotHeroY], b.YMin, b.YMax)
	if heroY < p.HazardY {
		reward -= p.HazardPenalty
	}

	if curDist > p.DisengageDistance {
		reward -= p.DisengagePenalty
	}

	reward += p.SurvivalBonus
	return reward
}

// heroBossDistance is the raw euclidean hero-boss distance recovered from a
// normalized observation.
func heroBossDistance(obs []float64, b Bounds) float64 {
	hx := denormalize(obs[slotHeroX], b.XMin, b.XMax)
	hy := denormalize(obs[slotHeroY], b.YMin, b.YMax)
	bx := denormalize(obs[slotBossX], b.XMin, b.XMax)
	by := denormalize(obs[slotBossY], b.YMin, b.YMax)
	return math.Hypot(bx-hx, by-hy)
}

// #endregion shaped-reward
