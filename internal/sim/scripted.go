package sim

// #region imports
import (
	"log"
	"math"
)

// #endregion

// #region config

// ArenaConfig parameterizes a scripted arena. One tick of Advance applies
// one step of its fixed-rate physics.
type ArenaConfig struct {
	BossName      string
	BossMaxHealth float64
	HeroMaxHealth float64

	HeroSpawn Vec2
	BossSpawn Vec2

	// Arena extents. The hero is clamped to them.
	MinX, MaxX float64
	FloorY     float64

	MoveSpeed float64
	JumpSpeed float64
	DashSpeed float64
	Gravity   float64

	AttackDamage float64
	AttackRange  float64

	// The boss hurts a hero standing inside ContactRange.
	ContactDamage float64
	ContactRange  float64

	// Ticks the boss entity stays gone after defeat before it respawns.
	BossRespawnTicks int

	// Phase names the boss cycles through, PhaseTicks apiece.
	Phases     []string
	PhaseTicks int
}

// DefaultArenaConfig is a small fight that exercises every transition the
// lifecycle machine cares about.
func DefaultArenaConfig(bossName string) ArenaConfig {
	return ArenaConfig{
		BossName:         bossName,
		BossMaxHealth:    250,
		HeroMaxHealth:    10,
		HeroSpawn:        Vec2{X: 12, Y: 7},
		BossSpawn:        Vec2{X: 30, Y: 7},
		MinX:             8,
		MaxX:             44,
		FloorY:           7,
		MoveSpeed:        0.3,
		JumpSpeed:        0.9,
		DashSpeed:        0.8,
		Gravity:          0.08,
		AttackDamage:     5,
		AttackRange:      4,
		ContactDamage:    1,
		ContactRange:     1.5,
		BossRespawnTicks: 120,
		Phases:           []string{"Idle", "Combo", "Overhead Slam"},
		PhaseTicks:       90,
	}
}

// #endregion config

// #region arena

// ScriptedArena is a deterministic stand-in for a live game hook. It
// implements both Source and Sink so a bridge can run full episodes
// against it with no game process attached.
type ScriptedArena struct {
	cfg ArenaConfig

	hero      HeroState
	boss      BossState
	bossAlive bool

	controls   map[Control]bool
	respawnIn  int
	phaseIdx   int
	phaseTicks int
}

var (
	_ Source = (*ScriptedArena)(nil)
	_ Sink   = (*ScriptedArena)(nil)
)

// NewScriptedArena builds an arena with both entities at their spawns.
func NewScriptedArena(cfg ArenaConfig) *ScriptedArena {
	a := &ScriptedArena{cfg: cfg, controls: map[Control]bool{}}
	a.spawnHero()
	a.spawnBoss()
	return a
}

func (a *ScriptedArena) spawnHero() {
	a.hero = HeroState{
		Position:  a.cfg.HeroSpawn,
		Health:    a.cfg.HeroMaxHealth,
		MaxHealth: a.cfg.HeroMaxHealth,
	}
}

func (a *ScriptedArena) spawnBoss() {
	a.boss = BossState{
		Name:      a.cfg.BossName,
		Position:  a.cfg.BossSpawn,
		Health:    a.cfg.BossMaxHealth,
		PhaseName: a.cfg.Phases[0],
	}
	a.bossAlive = true
	a.phaseIdx = 0
	a.phaseTicks = 0
	a.respawnIn = 0
}

// #endregion arena

// #region source-sink

func (a *ScriptedArena) Hero() (HeroState, bool) {
	return a.hero, true
}

func (a *ScriptedArena) Boss(name string) (BossState, bool) {
	if !a.bossAlive || a.boss.Name != name {
		return BossState{}, false
	}
	return a.boss, true
}

// Apply records the controls to act on at the next Advance.
func (a *ScriptedArena) Apply(states map[Control]bool) {
	a.controls = states
}

// SyntheticReset models the quit-out/re-enter cycle: both entities back
// at their spawns with full pools.
func (a *ScriptedArena) SyntheticReset() {
	log.Printf("[ARENA] synthetic reset")
	a.spawnHero()
	a.spawnBoss()
}

// #endregion source-sink

// #region physics

// Advance runs one physics tick with the last applied controls.
func (a *ScriptedArena) Advance() {
	a.stepHero()
	a.stepBoss()
}

func (a *ScriptedArena) stepHero() {
	vx := 0.0
	switch {
	case a.controls[ControlLeft]:
		vx = -a.cfg.MoveSpeed
	case a.controls[ControlRight]:
		vx = a.cfg.MoveSpeed
	}
	if a.controls[ControlDash] && vx != 0 {
		vx = math.Copysign(a.cfg.DashSpeed, vx)
	}

	onFloor := a.hero.Position.Y <= a.cfg.FloorY
	vy := a.hero.Velocity.Y
	if onFloor {
		vy = 0
		if a.controls[ControlJump] {
			vy = a.cfg.JumpSpeed
		}
	} else {
		vy -= a.cfg.Gravity
	}

	a.hero.Velocity = Vec2{X: vx, Y: vy}
	a.hero.Position.X = clamp(a.hero.Position.X+vx, a.cfg.MinX, a.cfg.MaxX)
	a.hero.Position.Y = math.Max(a.hero.Position.Y+vy, a.cfg.FloorY)

	if a.controls[ControlAttack] && a.bossAlive && a.distance() <= a.cfg.AttackRange {
		a.boss.Health -= a.cfg.AttackDamage
		if a.boss.Health <= 0 {
			log.Printf("[ARENA] boss %s defeated", a.boss.Name)
			a.bossAlive = false
			a.respawnIn = a.cfg.BossRespawnTicks
		}
	}
}

func (a *ScriptedArena) stepBoss() {
	if !a.bossAlive {
		if a.respawnIn == 0 {
			a.spawnBoss()
			return
		}
		a.respawnIn--
		return
	}

	a.phaseTicks++
	if a.phaseTicks >= a.cfg.PhaseTicks {
		a.phaseTicks = 0
		a.phaseIdx = (a.phaseIdx + 1) % len(a.cfg.Phases)
		a.boss.PhaseName = a.cfg.Phases[a.phaseIdx]
	}

	if a.distance() <= a.cfg.ContactRange {
		a.hero.Health -= a.cfg.ContactDamage
		if a.hero.Health <= 0 {
			log.Printf("[ARENA] hero died")
			// Death resets the whole room: hero back at the bench, boss
			// pool refilled.
			a.spawnHero()
			a.spawnBoss()
		}
	}
}

func (a *ScriptedArena) distance() float64 {
	return math.Hypot(a.hero.Position.X-a.boss.Position.X, a.hero.Position.Y-a.boss.Position.Y)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// #endregion physics
