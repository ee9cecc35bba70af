package replay

import (
	"time"

	"github.com/bossrl/go-bridge/internal/bridge"
	"github.com/bossrl/go-bridge/internal/encounter"
	"github.com/bossrl/go-bridge/internal/episode"
	"github.com/bossrl/go-bridge/internal/sim"
)

// #region types

// Tick is one recorded simulation tick ready for replay. A nil entity
// was absent on that tick.
type Tick struct {
	Offset time.Duration
	Hero   *sim.HeroState
	Boss   *sim.BossState
}

// TickResult captures the outcome of replaying one tick through the
// bridge pipeline.
type TickResult struct {
	Index    int
	Status   episode.Status
	Skipped  bool
	Terminal bool
	Outcome  encounter.Outcome
	Reward   float64

	// ResetCommands is the number of synthetic reset commands issued on
	// this tick (0 or 1).
	ResetCommands int
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	TotalTicks    int
	SkippedTicks  int
	HeroDeaths    int
	BossKills     int
	StuckResets   int
	ResetCommands int
	TotalReward   float64
	FinalStatus   episode.Status
}

// #endregion types

// #region replay-io

// recordedSource feeds one fixed tick of state to the bridge.
type recordedSource struct {
	hero *sim.HeroState
	boss *sim.BossState
}

func (s *recordedSource) Hero() (sim.HeroState, bool) {
	if s.hero == nil {
		return sim.HeroState{}, false
	}
	return *s.hero, true
}

func (s *recordedSource) Boss(name string) (sim.BossState, bool) {
	if s.boss == nil || s.boss.Name != name {
		return sim.BossState{}, false
	}
	return *s.boss, true
}

// countingSink swallows controls and counts reset commands. Replay runs
// against dead input, so actions go nowhere.
type countingSink struct {
	resets int
}

func (s *countingSink) Apply(map[sim.Control]bool) {}
func (s *countingSink) SyntheticReset()            { s.resets++ }

// #endregion replay-io

// #region replay

// Replay drives the recorded ticks through a full offline bridge: the
// lifecycle machine, observation extraction, and reward shaping all run
// exactly as live, with no trainer attached.
func Replay(strategy encounter.Strategy, cfg episode.Config, ticks []Tick) []TickResult {
	source := &recordedSource{}
	sink := &countingSink{}
	b := bridge.New(cfg, strategy, source, sink, nil, nil, nil)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	results := make([]TickResult, 0, len(ticks))

	for i, tick := range ticks {
		source.hero = tick.Hero
		source.boss = tick.Boss

		before := sink.resets
		rep := b.Step(base.Add(tick.Offset))
		results = append(results, TickResult{
			Index:         i,
			Status:        rep.Status,
			Skipped:       rep.Skipped,
			Terminal:      rep.Terminal,
			Outcome:       rep.Outcome,
			Reward:        rep.Reward,
			ResetCommands: sink.resets - before,
		})
	}

	return results
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []TickResult) Summary {
	s := Summary{TotalTicks: len(results)}
	for _, r := range results {
		if r.Skipped {
			s.SkippedTicks++
		}
		if r.Terminal {
			switch r.Status {
			case episode.StatusHeroDead:
				s.HeroDeaths++
			case episode.StatusBossDead:
				s.BossKills++
			case episode.StatusHeroStuck:
				s.StuckResets++
			}
		}
		s.ResetCommands += r.ResetCommands
		s.TotalReward += r.Reward
	}
	if len(results) > 0 {
		s.FinalStatus = results[len(results)-1].Status
	}
	return s
}

// #endregion replay
