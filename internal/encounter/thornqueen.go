package encounter

// #region imports
import (
	"github.com/bossrl/go-bridge/internal/action"
	"github.com/bossrl/go-bridge/internal/sim"
)

// #endregion

// #region thorn-queen

// The Thorn Queen: tall greenhouse arena with a bramble pit, extended action
// space (she punishes grounded play, so the agent gets the dash), hybrid
// observations — her projectile patterns are poorly captured by entity
// kinematics alone, so a downscaled frame rides along with the vector.

var thornQueenCategories = []AttackCategory{
	CategoryIdle,
	CategoryCombo,
	CategoryRapidStrike,
	CategoryVerticalStrike,
	CategoryStun,
}

var thornQueenRules = []PhaseRule{
	{Prefix: "Idle", Category: CategoryIdle},
	{Prefix: "Hover", Category: CategoryIdle},
	{Prefix: "Reposition", Category: CategoryIdle},
	{Prefix: "Lash", Category: CategoryCombo},
	{Prefix: "Combo", Category: CategoryCombo},
	{Prefix: "Needle", Category: CategoryRapidStrike},
	{Prefix: "Barrage", Category: CategoryRapidStrike},
	{Prefix: "Dive", Category: CategoryVerticalStrike},
	{Prefix: "Root Spike", Category: CategoryVerticalStrike},
	{Prefix: "Exhaust", Category: CategoryStun},
}

func init() {
	register(&fight{
		desc: Descriptor{
			Name:          "Thorn Queen",
			BossName:      "Thorn Queen",
			Space:         action.SpaceExtended,
			Kind:          ObsHybrid,
			VectorSize:    baseVectorSize + len(thornQueenCategories),
			VisualWidth:   64,
			VisualHeight:  64,
			MaxBossHealth: 900,
		},
		bounds: Bounds{
			XMin: 14.0, XMax: 62.0,
			YMin: 3.0, YMax: 34.0,
			VXMin: -28.0, VXMax: 28.0,
			VYMin: -40.0, VYMax: 40.0,
		},
		shaping: ShapingParams{
			HeroDeathReward:   -100,
			BossDeathReward:   100,
			HeroMaxHealth:     10,
			BossMaxHealth:     900,
			BossDamageWeight:  0.6,
			HeroDamageWeight:  8.0,
			ApproachWeight:    0.015,
			HazardY:           4.5,
			HazardPenalty:     0.5,
			DisengageDistance: 30.0,
			DisengagePenalty:  0.08,
			SurvivalBonus:     0.01,
		},
		classifier: NewClassifier("Thorn Queen", thornQueenCategories, thornQueenRules),
		// Brambles fill the pit below y=4.0; the hero survives there but
		// cannot climb out.
		stuck: func(h sim.HeroState) bool {
			return h.Position.Y < 4.0
		},
	})
}

// #endregion thorn-queen
