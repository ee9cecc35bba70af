package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/bossrl/go-bridge/internal/episode"
	"github.com/bossrl/go-bridge/internal/sim"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a recorded-run fixture.
type Fixture struct {
	Description string        `json:"description"`
	BossName    string        `json:"boss_name"`
	Config      FixtureConfig `json:"config"`
	Ticks       []FixtureTick `json:"ticks"`
}

// FixtureConfig mirrors episode.Config with JSON tags and millisecond
// durations. Zero fields fall back to the defaults.
type FixtureConfig struct {
	StuckStepThreshold   int     `json:"stuck_step_threshold"`
	BossDeadResetDelayMs int     `json:"boss_dead_reset_delay_ms"`
	StuckResetDelayMs    int     `json:"stuck_reset_delay_ms"`
	HeroFullHealth       float64 `json:"hero_full_health"`
}

// FixtureTick is one recorded simulation tick. A nil hero or boss means
// the entity was absent on that tick.
type FixtureTick struct {
	OffsetMs int          `json:"offset_ms"`
	Hero     *FixtureHero `json:"hero"`
	Boss     *FixtureBoss `json:"boss"`
}

// FixtureHero mirrors sim.HeroState with JSON tags.
type FixtureHero struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	VX        float64 `json:"vx"`
	VY        float64 `json:"vy"`
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"max_health"`
}

// FixtureBoss mirrors sim.BossState with JSON tags.
type FixtureBoss struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Health float64 `json:"health"`
	Phase  string  `json:"phase"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if f.BossName == "" {
		return nil, fmt.Errorf("fixture %s: boss_name is required", path)
	}
	return &f, nil
}

// ToConfig converts a FixtureConfig to an episode.Config, filling unset
// fields from the defaults.
func (c *FixtureConfig) ToConfig() episode.Config {
	cfg := episode.DefaultConfig()
	if c.StuckStepThreshold > 0 {
		cfg.StuckStepThreshold = c.StuckStepThreshold
	}
	if c.BossDeadResetDelayMs > 0 {
		cfg.BossDeadResetDelay = time.Duration(c.BossDeadResetDelayMs) * time.Millisecond
	}
	if c.StuckResetDelayMs > 0 {
		cfg.StuckResetDelay = time.Duration(c.StuckResetDelayMs) * time.Millisecond
	}
	if c.HeroFullHealth > 0 {
		cfg.HeroFullHealth = c.HeroFullHealth
	}
	return cfg
}

// ToTick converts a FixtureTick to a harness Tick.
func (ft *FixtureTick) ToTick(bossName string) Tick {
	t := Tick{Offset: time.Duration(ft.OffsetMs) * time.Millisecond}
	if ft.Hero != nil {
		t.Hero = &sim.HeroState{
			Position:  sim.Vec2{X: ft.Hero.X, Y: ft.Hero.Y},
			Velocity:  sim.Vec2{X: ft.Hero.VX, Y: ft.Hero.VY},
			Health:    ft.Hero.Health,
			MaxHealth: ft.Hero.MaxHealth,
		}
	}
	if ft.Boss != nil {
		t.Boss = &sim.BossState{
			Name:      bossName,
			Position:  sim.Vec2{X: ft.Boss.X, Y: ft.Boss.Y},
			Velocity:  sim.Vec2{X: ft.Boss.VX, Y: ft.Boss.VY},
			Health:    ft.Boss.Health,
			PhaseName: ft.Boss.Phase,
		}
	}
	return t
}

// ToTicks converts the whole fixture tick list.
func (f *Fixture) ToTicks() []Tick {
	ticks := make([]Tick, 0, len(f.Ticks))
	for i := range f.Ticks {
		ticks = append(ticks, f.Ticks[i].ToTick(f.BossName))
	}
	return ticks
}

// #endregion fixture-loader
