package encounter

// #region imports
import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/bossrl/go-bridge/internal/action"
	"github.com/bossrl/go-bridge/internal/sim"
)

// #endregion

// #region observation-kind

// ObservationKind says what the trainer receives each tick.
type ObservationKind string

const (
	// ObsVector is a flat normalized float vector.
	ObsVector ObservationKind = "vector"
	// ObsHybrid is the vector plus an auxiliary visual buffer.
	ObsHybrid ObservationKind = "hybrid"
)

// #endregion observation-kind

// #region outcome

// Outcome is the terminal flag attached to a reward computation. The wire
// values match what the trainer expects: 0 for a hero death, 1 for a boss
// death, anything else for a non-terminal tick.
type Outcome int

const (
	OutcomeHeroDead Outcome = 0
	OutcomeBossDead Outcome = 1
	OutcomeNone     Outcome = -1
)

// #endregion outcome

// #region descriptor

// Descriptor is the static shape contract a strategy advertises. VectorSize
// counts the kinematic/health block plus the one-hot attack block and never
// changes for the strategy's lifetime. VisualWidth/VisualHeight are 0 unless
// Kind is ObsHybrid. MaxBossHealth feeds the lifecycle machine's respawn
// disambiguation.
type Descriptor struct {
	Name          string
	BossName      string
	Space         action.SpaceType
	Kind          ObservationKind
	VectorSize    int
	VisualWidth   int
	VisualHeight  int
	MaxBossHealth float64
}

// #endregion descriptor

// #region strategy

// Strategy is one boss fight: entity identification, observation extraction,
// phase classification, reward shaping, and the fight's stuck predicate.
// New fights add implementations; the lifecycle machine and codec never
// branch on the fight.
type Strategy interface {
	Descriptor() Descriptor

	// Identifies reports whether the named entity is this fight's boss.
	Identifies(bossName string) bool

	// ExtractObservation builds the normalized observation vector. The
	// second return is false when either input was unavailable this tick;
	// the caller skips the tick rather than treating it as an error.
	ExtractObservation(hero sim.HeroState, heroOK bool, boss sim.BossState, bossOK bool) ([]float64, bool)

	// RewardFor computes the shaped reward between two consecutive
	// observations. Terminal outcomes short-circuit to fixed rewards;
	// malformed or mismatched-length observations yield 0.
	RewardFor(prev, cur []float64, who Outcome) float64

	// IsHeroStuck is the fight-specific geometric stuck predicate.
	IsHeroStuck(hero sim.HeroState) bool
}

// #endregion strategy

// #region attack-category

// AttackCategory classifies the boss's current behavior phase.
type AttackCategory string

const (
	CategoryIdle           AttackCategory = "idle"
	CategoryCombo          AttackCategory = "combo"
	CategoryCounter        AttackCategory = "counter"
	CategoryRapidStrike    AttackCategory = "rapid_strike"
	CategoryVerticalStrike AttackCategory = "vertical_strike"
	CategoryStun           AttackCategory = "stun"
)

// #endregion attack-category

// #region phase-rules

// PhaseRule maps a phase-name prefix to an attack category. Rules are
// checked in declaration order and the first match wins, so idle-like
// prefixes go first and broader prefixes late.
type PhaseRule struct {
	Prefix   string
	Category AttackCategory
}

// Classifier is an ordered prefix rule table plus the fight's fixed
// category order for one-hot encoding.
type Classifier struct {
	fight      string
	rules      []PhaseRule
	categories []AttackCategory
	slots      map[AttackCategory]int
}

// NewClassifier builds a classifier. categories fixes the one-hot order;
// every rule's category must appear in it.
func NewClassifier(fight string, categories []AttackCategory, rules []PhaseRule) Classifier {
	slots := make(map[AttackCategory]int, len(categories))
	for i, c := range categories {
		slots[c] = i
	}
	for _, r := range rules {
		if _, ok := slots[r.Category]; !ok {
			panic(fmt.Sprintf("encounter: %s rule %q maps to category %q outside the fight's category set", fight, r.Prefix, r.Category))
		}
	}
	return Classifier{fight: fight, rules: rules, categories: categories, slots: slots}
}

// Categories returns the fight's one-hot category order.
func (c Classifier) Categories() []AttackCategory {
	return c.categories
}

// Classify maps a free-text phase name to an attack category. The name is
// trimmed first; an empty or unmatched name defaults to CategoryIdle with a
// logged warning, never an error.
func (c Classifier) Classify(phaseName string) AttackCategory {
	name := strings.TrimSpace(phaseName)
	if name == "" {
		log.Printf("[ENCOUNTER] %s: empty phase name, defaulting to idle", c.fight)
		return CategoryIdle
	}
	for _, r := range c.rules {
		if strings.HasPrefix(name, r.Prefix) {
			return r.Category
		}
	}
	log.Printf("[ENCOUNTER] %s: unrecognized phase name %q, defaulting to idle", c.fight, name)
	return CategoryIdle
}

// OneHot appends the category's one-hot block to vec. The block width is the
// fight's category count and exactly one entry is 1.
func (c Classifier) OneHot(vec []float64, cat AttackCategory) []float64 {
	slot, ok := c.slots[cat]
	if !ok {
		slot = c.slots[CategoryIdle]
	}
	for i := range c.categories {
		if i == slot {
			vec = append(vec, 1)
		} else {
			vec = append(vec, 0)
		}
	}
	return vec
}

// #endregion phase-rules

// #region bounds

// Bounds are the empirically calibrated min-max ranges for one arena. Raw
// values outside the range saturate to the bound rather than wrap or error.
type Bounds struct {
	XMin, XMax   float64
	YMin, YMax   float64
	VXMin, VXMax float64
	VYMin, VYMax float64
}

// normalize maps v into [0,1] over [min,max], clamped.
func normalize(v, min, max float64) float64 {
	if max <= min {
		return 0
	}
	n := (v - min) / (max - min)
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// denormalize maps n in [0,1] back to raw units over [min,max].
func denormalize(n, min, max float64) float64 {
	return min + n*(max-min)
}

// normalizeEntity appends the position/velocity/health block for one entity.
func (b Bounds) normalizeEntity(vec []float64, pos, vel sim.Vec2, health, maxHealth float64) []float64 {
	vec = append(vec,
		normalize(pos.X, b.XMin, b.XMax),
		normalize(pos.Y, b.YMin, b.YMax),
		normalize(vel.X, b.VXMin, b.VXMax),
		normalize(vel.Y, b.VYMin, b.VYMax),
		normalize(health/maxHealth, 0, 1),
	)
	return vec
}

// #endregion bounds

// #region vector-layout

// Fixed slot layout of the kinematic/health block for vector encounters.
// The one-hot attack block follows baseVectorSize.
const (
	slotHeroX = iota
	slotHeroY
	slotHeroVX
	slotHeroVY
	slotHeroHealth
	slotBossX
	slotBossY
	slotBossVX
	slotBossVY
	slotBossHealth
	baseVectorSize
)

// #endregion vector-layout

// #region registry

var fights = map[string]Strategy{}

// register adds a fight under its boss's identifying name. Called from the
// concrete strategy files' init functions.
func register(s Strategy) {
	fights[s.Descriptor().BossName] = s
}

// ByBossName returns the strategy for a boss identifying name.
func ByBossName(name string) (Strategy, error) {
	s, ok := fights[name]
	if !ok {
		return nil, fmt.Errorf("encounter: no strategy for boss %q (known: %s)", name, strings.Join(Known(), ", "))
	}
	return s, nil
}

// Known lists the registered boss names, sorted.
func Known() []string {
	names := make([]string, 0, len(fights))
	for n := range fights {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// #endregion registry
