package encounter

// #region imports
import (
	"github.com/bossrl/go-bridge/internal/action"
	"github.com/bossrl/go-bridge/internal/sim"
)

// #endregion

// #region gravekeeper

// The Gravekeeper: flat crypt arena, basic action space, vector-only
// observations. Calibration ranges and shaping weights were fit against
// recorded fights in this arena; they do not transfer to other bosses.

var gravekeeperCategories = []AttackCategory{
	CategoryIdle,
	CategoryCombo,
	CategoryCounter,
	CategoryRapidStrike,
	CategoryVerticalStrike,
	CategoryStun,
}

// Ordered prefix rules over the boss FSM's state names. Idle-like movement
// states come first so "Combo Recover" style names never shadow them; the
// first match wins.
var gravekeeperRules = []PhaseRule{
	{Prefix: "Idle", Category: CategoryIdle},
	{Prefix: "Walk", Category: CategoryIdle},
	{Prefix: "Turn", Category: CategoryIdle},
	{Prefix: "Combo", Category: CategoryCombo},
	{Prefix: "Counter", Category: CategoryCounter},
	{Prefix: "Rapid", Category: CategoryRapidStrike},
	{Prefix: "Flurry", Category: CategoryRapidStrike},
	{Prefix: "Overhead", Category: CategoryVerticalStrike},
	{Prefix: "Slam", Category: CategoryVerticalStrike},
	{Prefix: "Stun", Category: CategoryStun},
	{Prefix: "Stagger", Category: CategoryStun},
}

func init() {
	register(&fight{
		desc: Descriptor{
			Name:          "Gravekeeper",
			BossName:      "Gravekeeper",
			Space:         action.SpaceBasic,
			Kind:          ObsVector,
			VectorSize:    baseVectorSize + len(gravekeeperCategories),
			MaxBossHealth: 250,
		},
		bounds: Bounds{
			XMin: 8.0, XMax: 44.0,
			YMin: 5.0, YMax: 22.0,
			VXMin: -20.0, VXMax: 20.0,
			VYMin: -30.0, VYMax: 30.0,
		},
		shaping: ShapingParams{
			HeroDeathReward:   -100,
			BossDeathReward:   100,
			HeroMaxHealth:     10,
			BossMaxHealth:     250,
			BossDamageWeight:  2.0,
			HeroDamageWeight:  5.0,
			ApproachWeight:    0.02,
			HazardY:           6.0,
			HazardPenalty:     0.2,
			DisengageDistance: 22.0,
			DisengagePenalty:  0.05,
			SurvivalBonus:     0.01,
		},
		classifier: NewClassifier("Gravekeeper", gravekeeperCategories, gravekeeperRules),
		// The crypt floor sits at y=5.2; anything below it is out of the
		// playable arena and unrecoverable.
		stuck: func(h sim.HeroState) bool {
			return h.Position.Y < 5.2
		},
	})
}

// #endregion gravekeeper
