package sim

// #region vec

// Vec2 is a 2D position or velocity in raw simulation units.
type Vec2 struct {
	X float64
	Y float64
}

// #endregion vec

// #region hero-state

// HeroState is the per-tick snapshot of the player-controlled character.
type HeroState struct {
	Position  Vec2
	Velocity  Vec2
	Health    float64
	MaxHealth float64
}

// #endregion hero-state

// #region boss-state

// BossState is the per-tick snapshot of a health-tracked boss entity.
// PhaseName is the free-text name of the boss's current behavior state,
// as reported by its finite-state-machine controller.
type BossState struct {
	Name      string
	Position  Vec2
	Velocity  Vec2
	Health    float64
	PhaseName string
}

// #endregion boss-state

// #region source

// Source is the read-only view of the running simulation, queried once per
// tick. Both lookups return false when the entity is unavailable this tick;
// callers treat that as "no data", never as an error.
type Source interface {
	Hero() (HeroState, bool)
	Boss(name string) (BossState, bool)
}

// #endregion source

// #region controls

// Control names an overridable input channel.
type Control string

const (
	ControlLeft   Control = "left"
	ControlRight  Control = "right"
	ControlUp     Control = "up"
	ControlDown   Control = "down"
	ControlJump   Control = "jump"
	ControlAttack Control = "attack"
	ControlDash   Control = "dash"
)

// #endregion controls

// #region sink

// Sink accepts resolved control states for continuous per-tick input
// override, plus discrete synthetic commands. SyntheticReset triggers the
// environment's own reset mechanism (the bridge never restores fight state
// itself).
type Sink interface {
	Apply(states map[Control]bool)
	SyntheticReset()
}

// #endregion sink
