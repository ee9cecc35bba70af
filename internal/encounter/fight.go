package encounter

// #region imports
import (
	"github.com/bossrl/go-bridge/internal/sim"
)

// #endregion

// #region fight

// fight is the shared vector-observation implementation behind the concrete
// strategies. A new boss is a new data file: descriptor, calibration bounds,
// shaping constants, phase rule table, and a stuck predicate.
type fight struct {
	desc       Descriptor
	bounds     Bounds
	shaping    ShapingParams
	classifier Classifier
	stuck      func(sim.HeroState) bool
}

var _ Strategy = (*fight)(nil)

func (f *fight) Descriptor() Descriptor {
	return f.desc
}

// Identifies matches on the stable boss name. A missing entity resolves to
// an empty name upstream and simply fails the match.
func (f *fight) Identifies(bossName string) bool {
	return bossName != "" && bossName == f.desc.BossName
}

func (f *fight) ExtractObservation(hero sim.HeroState, heroOK bool, boss sim.BossState, bossOK bool) ([]float64, bool) {
	if !heroOK || !bossOK {
		return nil, false
	}

	vec := make([]float64, 0, f.desc.VectorSize)
	vec = f.bounds.normalizeEntity(vec, hero.Position, hero.Velocity, hero.Health, f.shaping.HeroMaxHealth)
	vec = f.bounds.normalizeEntity(vec, boss.Position, boss.Velocity, boss.Health, f.desc.MaxBossHealth)
	vec = f.classifier.OneHot(vec, f.classifier.Classify(boss.PhaseName))
	return vec, true
}

func (f *fight) RewardFor(prev, cur []float64, who Outcome) float64 {
	return shapedReward(f.desc.Name, prev, cur, f.desc.VectorSize, who, f.bounds, f.shaping)
}

func (f *fight) IsHeroStuck(hero sim.HeroState) bool {
	return f.stuck(hero)
}

// #endregion fight
