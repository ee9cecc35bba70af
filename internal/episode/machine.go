package episode

// #region imports
import (
	"log"
	"time"

	"github.com/bossrl/go-bridge/internal/encounter"
	"github.com/bossrl/go-bridge/internal/sim"
)

// #endregion

// #region status

// Status is the episode lifecycle state. Terminal statuses are only entered
// from StatusTraining and only left through the reset protocol.
type Status string

const (
	StatusTraining  Status = "training"
	StatusHeroDead  Status = "hero_dead"
	StatusBossDead  Status = "boss_dead"
	StatusHeroStuck Status = "hero_stuck"
)

// #endregion status

// #region config

// Config carries the lifecycle timing constants.
type Config struct {
	// StuckStepThreshold is the number of consecutive ticks the stuck
	// predicate must hold before the episode terminates as HeroStuck.
	StuckStepThreshold int
	// BossDeadResetDelay is the wait after a boss death before the reset
	// sequence acts (the arena plays its death sequence during this time).
	BossDeadResetDelay time.Duration
	// StuckResetDelay is the wait after a stuck termination before the
	// synthetic reset command is issued.
	StuckResetDelay time.Duration
	// HeroFullHealth is the baseline the one-tick health memory returns to
	// on reset completion.
	HeroFullHealth float64
}

// DefaultConfig returns the timings used against the live arena (60 ticks/s).
func DefaultConfig() Config {
	return Config{
		StuckStepThreshold: 240,
		BossDeadResetDelay: 4 * time.Second,
		StuckResetDelay:    3 * time.Second,
		HeroFullHealth:     10,
	}
}

// #endregion config

// #region report

// Report is the per-tick outcome of a lifecycle update.
type Report struct {
	Status Status
	// Skip tells the caller a reset is in progress (or was just handled)
	// and normal observation/action/reward processing must not run.
	Skip bool
	// Terminal is true only on the tick a terminal condition was detected;
	// the caller still processes that tick so the trainer sees the final
	// transition.
	Terminal bool
	// Outcome is the whoDied flag for a terminal tick. OutcomeNone for
	// non-terminal ticks and for HeroStuck (nobody died, the episode is
	// simply abandoned).
	Outcome encounter.Outcome
}

// #endregion report

// #region machine

// Machine owns the episode lifecycle: terminal detection while training and
// the timed reset protocol afterwards. All mutable episode state lives here
// so parallel training instances stay independent.
//
// Trust assumption (verify before pointing this at a new arena): the boss
// entity never transiently disappears mid-fight; absence while training
// always means defeat.
type Machine struct {
	cfg      Config
	strategy encounter.Strategy
	source   sim.Source
	sink     sim.Sink

	status         Status
	stuckSteps     int
	prevHeroHealth float64

	// Reset bookkeeping, live only while status != StatusTraining. The
	// one-shot issued flag is armed on state entry and cleared by
	// completeReset, so the command fires exactly once per terminal episode
	// no matter how ticks land around the delay boundary.
	resetTriggered bool
	resetIssued    bool
	resetStart     time.Time

	onResetComplete func()
}

// NewMachine wires a lifecycle machine for one encounter. onResetComplete
// may be nil; when set it fires on every return to StatusTraining.
func NewMachine(cfg Config, strategy encounter.Strategy, source sim.Source, sink sim.Sink, onResetComplete func()) *Machine {
	return &Machine{
		cfg:             cfg,
		strategy:        strategy,
		source:          source,
		sink:            sink,
		status:          StatusTraining,
		prevHeroHealth:  cfg.HeroFullHealth,
		onResetComplete: onResetComplete,
	}
}

// Status returns the current lifecycle status.
func (m *Machine) Status() Status {
	return m.status
}

// #endregion machine

// #region update

// Update advances the lifecycle by one tick. Terminal checks only run while
// training; once terminal, every tick goes to the reset protocol until it
// completes.
func (m *Machine) Update(now time.Time) Report {
	if m.status != StatusTraining {
		return m.advanceReset(now)
	}

	hero, ok := m.source.Hero()
	if !ok {
		// No hero state means no update is possible this tick.
		return Report{Status: m.status, Outcome: encounter.OutcomeNone}
	}

	if m.strategy.IsHeroStuck(hero) {
		m.stuckSteps++
		if m.stuckSteps >= m.cfg.StuckStepThreshold {
			m.enterTerminal(StatusHeroStuck, now)
			m.prevHeroHealth = hero.Health
			return Report{Status: m.status, Terminal: true, Outcome: encounter.OutcomeNone}
		}
	} else {
		m.stuckSteps = 0
	}

	boss, bossOK := m.source.Boss(m.strategy.Descriptor().BossName)

	rep := Report{Status: m.status, Outcome: encounter.OutcomeNone}
	switch {
	case !bossOK:
		// Trusted to mean defeat, not a glitch; see the type comment.
		m.enterTerminal(StatusBossDead, now)
		rep = Report{Status: m.status, Terminal: true, Outcome: encounter.OutcomeBossDead}

	case m.prevHeroHealth < hero.Health && boss.Health == m.strategy.Descriptor().MaxBossHealth:
		// A ceiling respawn refills both health pools at once; health going
		// up alone could just be an in-fight heal.
		m.enterTerminal(StatusHeroDead, now)
		rep = Report{Status: m.status, Terminal: true, Outcome: encounter.OutcomeHeroDead}
	}

	// One-tick health memory, updated at the end of every tick no matter
	// which branch ran.
	m.prevHeroHealth = hero.Health
	return rep
}

func (m *Machine) enterTerminal(s Status, now time.Time) {
	log.Printf("[EPISODE] %s -> %s", m.status, s)
	m.status = s
	m.stuckSteps = 0
	m.resetTriggered = true
	m.resetIssued = false
	m.resetStart = now
}

// #endregion update

// #region reset-protocol

func (m *Machine) advanceReset(now time.Time) Report {
	switch m.status {
	case StatusHeroDead:
		// The arena restores itself on a hero death; nothing to wait for.
		m.completeReset()
		return Report{Status: m.status, Skip: true, Outcome: encounter.OutcomeNone}

	case StatusBossDead:
		if now.Sub(m.resetStart) >= m.cfg.BossDeadResetDelay {
			if _, ok := m.source.Boss(m.strategy.Descriptor().BossName); ok {
				m.completeReset()
			} else if !m.resetIssued {
				m.sink.SyntheticReset()
				m.resetIssued = true
				log.Printf("[EPISODE] boss dead: reset command issued")
			}
		}

	case StatusHeroStuck:
		if now.Sub(m.resetStart) >= m.cfg.StuckResetDelay {
			if !m.resetIssued {
				m.sink.SyntheticReset()
				m.resetIssued = true
				log.Printf("[EPISODE] hero stuck: reset command issued")
			} else if _, ok := m.source.Boss(m.strategy.Descriptor().BossName); ok {
				m.completeReset()
			}
		}
	}

	return Report{Status: m.status, Skip: true, Outcome: encounter.OutcomeNone}
}

// completeReset is the single convergence point for every reset path. It is
// idempotent: all bookkeeping returns to the training baseline.
func (m *Machine) completeReset() {
	m.status = StatusTraining
	m.resetTriggered = false
	m.resetIssued = false
	m.resetStart = time.Time{}
	m.stuckSteps = 0
	m.prevHeroHealth = m.cfg.HeroFullHealth
	log.Printf("[EPISODE] reset complete, back to training")
	if m.onResetComplete != nil {
		m.onResetComplete()
	}
}

// #endregion reset-protocol
