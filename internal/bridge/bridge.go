package bridge

// #region imports
import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/bossrl/go-bridge/internal/action"
	"github.com/bossrl/go-bridge/internal/capture"
	"github.com/bossrl/go-bridge/internal/encounter"
	"github.com/bossrl/go-bridge/internal/episode"
	"github.com/bossrl/go-bridge/internal/history"
	"github.com/bossrl/go-bridge/internal/sim"
	"github.com/bossrl/go-bridge/internal/trainer"
)

// #endregion

// #region trainer-client

// TrainerClient is the slice of the trainer connection the bridge needs.
// *trainer.Client satisfies it; tests inject a scripted fake.
type TrainerClient interface {
	Initialize(desc encounter.Descriptor, actionShape []int) (trainer.InitResult, error)
	GetAction(state any) ([]int, error)
	StoreTransition(state any, act []int, reward float64, next any, done bool) error
}

// #endregion trainer-client

// #region bridge-struct

// Bridge runs the per-tick environment contract: lifecycle first, then
// observation, reward, transition hand-off, and action application. One
// bridge serves exactly one encounter for its lifetime.
type Bridge struct {
	strategy encounter.Strategy
	space    action.SpaceType
	machine  *episode.Machine
	source   sim.Source
	sink     sim.Sink
	trainer  TrainerClient // nil = offline (lifecycle and shaping only)
	frames   *capture.Cache
	store    *history.Store // nil = no episode records

	prevObs    []float64
	lastAction []int

	episodeID     string
	episodeStart  time.Time
	episodeReward float64
	episodeSteps  int
}

// TickReport is what one bridge step tells the caller.
type TickReport struct {
	Status  episode.Status
	Skipped bool
	// Terminal marks the tick an episode ended on.
	Terminal bool
	Outcome  encounter.Outcome
	Reward   float64
	// HasObservation is false on ticks where input data was unavailable.
	HasObservation bool
}

// New wires a bridge. tc and store may be nil (offline mode / no records).
func New(cfg episode.Config, strategy encounter.Strategy, source sim.Source, sink sim.Sink, tc TrainerClient, frames *capture.Cache, store *history.Store) *Bridge {
	b := &Bridge{
		strategy: strategy,
		space:    strategy.Descriptor().Space,
		source:   source,
		sink:     sink,
		trainer:  tc,
		frames:   frames,
		store:    store,
	}
	b.machine = episode.NewMachine(cfg, strategy, source, sink, b.onResetComplete)
	return b
}

// Initialize announces the encounter's contract to the trainer. No-op
// offline.
func (b *Bridge) Initialize() error {
	if b.trainer == nil {
		return nil
	}
	res, err := b.trainer.Initialize(b.strategy.Descriptor(), action.Shape(b.space))
	if err != nil {
		return err
	}
	log.Printf("[BRIDGE] trainer initialized for %s (obs=%d, checkpoint=%v)",
		res.BossName, res.ObservationSize, res.CheckpointLoaded)
	return nil
}

// Status exposes the lifecycle status.
func (b *Bridge) Status() episode.Status {
	return b.machine.Status()
}

// #endregion bridge-struct

// #region step

// Step runs one simulation tick.
func (b *Bridge) Step(now time.Time) TickReport {
	rep := b.machine.Update(now)
	if rep.Skip {
		return TickReport{Status: rep.Status, Skipped: true, Outcome: encounter.OutcomeNone}
	}

	hero, heroOK := b.source.Hero()
	boss, bossOK := b.source.Boss(b.strategy.Descriptor().BossName)
	obs, obsOK := b.strategy.ExtractObservation(hero, heroOK, boss, bossOK)

	out := TickReport{Status: rep.Status, Terminal: rep.Terminal, Outcome: rep.Outcome, HasObservation: obsOK}

	if !obsOK {
		// A terminal tick can lack an observation (the boss entity is gone
		// on a boss death). The terminal reward does not depend on it; the
		// last good observation stands in as the successor state.
		if rep.Terminal && b.prevObs != nil {
			out.Reward = b.strategy.RewardFor(b.prevObs, b.prevObs, rep.Outcome)
			b.episodeReward += out.Reward
			b.sendTransition(b.prevObs, out.Reward, true)
			b.finishEpisode(rep.Status, now)
		}
		return out
	}

	if b.prevObs == nil {
		// First observable tick of a fresh episode.
		b.episodeID = uuid.NewString()
		b.episodeStart = now
		b.episodeReward = 0
		b.episodeSteps = 0
	} else {
		out.Reward = b.strategy.RewardFor(b.prevObs, obs, rep.Outcome)
		b.episodeReward += out.Reward
		b.sendTransition(obs, out.Reward, rep.Terminal)
	}
	b.episodeSteps++

	if rep.Terminal {
		b.finishEpisode(rep.Status, now)
		return out
	}

	b.applyAction(obs)
	b.prevObs = obs
	return out
}

// #endregion step

// #region transitions

func (b *Bridge) sendTransition(next []float64, reward float64, done bool) {
	if b.trainer == nil || b.lastAction == nil {
		return
	}
	err := b.trainer.StoreTransition(b.statePayload(b.prevObs), b.lastAction, reward, b.statePayload(next), done)
	if err != nil {
		log.Printf("[BRIDGE] store transition failed: %v", err)
	}
}

func (b *Bridge) applyAction(obs []float64) {
	act := action.Neutral()
	if b.trainer != nil {
		vec, err := b.trainer.GetAction(b.statePayload(obs))
		if err != nil {
			log.Printf("[BRIDGE] get action failed, holding neutral: %v", err)
			b.lastAction = action.Encode(b.space, act)
		} else {
			act = action.Decode(b.space, vec)
			b.lastAction = vec
		}
	} else {
		b.lastAction = action.Encode(b.space, act)
	}
	b.sink.Apply(action.Controls(b.space, act))
}

// statePayload is what goes over the wire for one observation: the flat
// vector, or the vector+visual dict for hybrid encounters when a frame is
// available.
func (b *Bridge) statePayload(obs []float64) any {
	if b.strategy.Descriptor().Kind != encounter.ObsHybrid || b.frames == nil {
		return obs
	}
	frame, ok := b.frames.Latest()
	if !ok {
		return obs
	}
	return map[string]any{"vector": obs, "visual": frame.Pixels}
}

// #endregion transitions

// #region episode-bookkeeping

func (b *Bridge) finishEpisode(terminal episode.Status, now time.Time) {
	log.Printf("[BRIDGE] episode %s finished: %s, reward=%.2f, steps=%d",
		b.episodeID, terminal, b.episodeReward, b.episodeSteps)

	if b.store != nil && b.episodeID != "" {
		_, err := b.store.RecordEpisode(history.Record{
			EpisodeID:   b.episodeID,
			BossName:    b.strategy.Descriptor().BossName,
			Outcome:     string(terminal),
			TotalReward: b.episodeReward,
			Steps:       b.episodeSteps,
			StartedAt:   b.episodeStart,
			EndedAt:     now,
		})
		if err != nil {
			log.Printf("[BRIDGE] record episode failed: %v", err)
		}
		err = b.store.RecordEvent(history.Event{
			EpisodeID: b.episodeID,
			BossName:  b.strategy.Descriptor().BossName,
			Event:     string(terminal),
			Detail:    fmt.Sprintf("reward=%.2f steps=%d", b.episodeReward, b.episodeSteps),
			CreatedAt: now,
		})
		if err != nil {
			log.Printf("[BRIDGE] record event failed: %v", err)
		}
	}

	b.prevObs = nil
	b.lastAction = nil
	b.episodeID = ""
}

// onResetComplete clears per-episode caches when the lifecycle machine
// returns to training.
func (b *Bridge) onResetComplete() {
	b.prevObs = nil
	b.lastAction = nil
	if b.frames != nil {
		b.frames.Clear()
	}
	if b.store != nil {
		err := b.store.RecordEvent(history.Event{
			BossName: b.strategy.Descriptor().BossName,
			Event:    "reset_complete",
		})
		if err != nil {
			log.Printf("[BRIDGE] record event failed: %v", err)
		}
	}
}

// #endregion episode-bookkeeping
