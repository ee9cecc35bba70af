package encounter

import (
	"math"
	"testing"

	"github.com/bossrl/go-bridge/internal/sim"
)

func gravekeeper(t *testing.T) Strategy {
	t.Helper()
	s, err := ByBossName("Gravekeeper")
	if err != nil {
		t.Fatalf("gravekeeper not registered: %v", err)
	}
	return s
}

func gravekeeperHero(x, y, hp float64) sim.HeroState {
	return sim.HeroState{
		Position:  sim.Vec2{X: x, Y: y},
		Health:    hp,
		MaxHealth: 10,
	}
}

func gravekeeperBoss(x, y, hp float64, phase string) sim.BossState {
	return sim.BossState{
		Name:      "Gravekeeper",
		Position:  sim.Vec2{X: x, Y: y},
		Health:    hp,
		PhaseName: phase,
	}
}

func TestRegistry(t *testing.T) {
	known := Known()
	if len(known) != 2 {
		t.Fatalf("known fights: %v", known)
	}
	if _, err := ByBossName("Radiant Monarch"); err == nil {
		t.Error("expected error for unknown boss")
	}
}

func TestIdentifies(t *testing.T) {
	s := gravekeeper(t)
	if !s.Identifies("Gravekeeper") {
		t.Error("should identify its own boss")
	}
	if s.Identifies("Thorn Queen") {
		t.Error("should not identify another fight's boss")
	}
	if s.Identifies("") {
		t.Error("absent entity must not identify")
	}
}

func TestExtractObservationAbsentInputs(t *testing.T) {
	s := gravekeeper(t)
	hero := gravekeeperHero(20, 10, 8)
	boss := gravekeeperBoss(30, 10, 200, "Idle")

	if _, ok := s.ExtractObservation(hero, false, boss, true); ok {
		t.Error("absent hero must yield no observation")
	}
	if _, ok := s.ExtractObservation(hero, true, boss, false); ok {
		t.Error("absent boss must yield no observation")
	}
}

func TestExtractObservationLengthAndRange(t *testing.T) {
	s := gravekeeper(t)
	desc := s.Descriptor()

	tests := []struct {
		name string
		hero sim.HeroState
		boss sim.BossState
	}{
		{"in-range", gravekeeperHero(20, 10, 8), gravekeeperBoss(30, 12, 200, "Combo Swing")},
		{"below-range", gravekeeperHero(-50, -10, -3), gravekeeperBoss(-5, 0, -1, "Idle")},
		{"above-range", gravekeeperHero(999, 500, 40), gravekeeperBoss(100, 80, 9999, "Slam")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs, ok := s.ExtractObservation(tt.hero, true, tt.boss, true)
			if !ok {
				t.Fatal("expected an observation")
			}
			if len(obs) != desc.VectorSize {
				t.Fatalf("length %d, want declared %d", len(obs), desc.VectorSize)
			}
			for i, v := range obs {
				if v < 0 || v > 1 {
					t.Errorf("obs[%d] = %v outside [0,1]", i, v)
				}
			}
		})
	}
}

func TestNormalizationSaturatesAtBounds(t *testing.T) {
	s := gravekeeper(t)

	// Exactly at the calibration bounds: x=8 → 0, x=44 → 1.
	hero := gravekeeperHero(8, 5, 0)
	boss := gravekeeperBoss(44, 22, 250, "Idle")
	obs, ok := s.ExtractObservation(hero, true, boss, true)
	if !ok {
		t.Fatal("expected an observation")
	}
	checks := map[int]float64{
		slotHeroX:      0,
		slotHeroY:      0,
		slotHeroHealth: 0,
		slotBossX:      1,
		slotBossY:      1,
		slotBossHealth: 1,
	}
	for slot, want := range checks {
		if obs[slot] != want {
			t.Errorf("obs[%d] = %v, want exactly %v", slot, obs[slot], want)
		}
	}
}

func TestOneHotBlock(t *testing.T) {
	s := gravekeeper(t)
	hero := gravekeeperHero(20, 10, 8)

	tests := []struct {
		name     string
		phase    string
		wantSlot int // index within the one-hot block
	}{
		{"idle", "Idle", 0},
		{"walk-is-idle", "Walk Forward", 0},
		{"combo", "Combo Swing 2", 1},
		{"counter", "Counter Stance", 2},
		{"rapid", "Rapid Slash", 3},
		{"flurry-is-rapid", "Flurry", 3},
		{"overhead", "Overhead Smash", 4},
		{"stun", "Stunned", 5},
		{"unrecognized-defaults-idle", "Summon Bats", 0},
		{"empty-defaults-idle", "   ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boss := gravekeeperBoss(30, 10, 200, tt.phase)
			obs, ok := s.ExtractObservation(hero, true, boss, true)
			if !ok {
				t.Fatal("expected an observation")
			}
			block := obs[baseVectorSize:]
			for i, v := range block {
				want := 0.0
				if i == tt.wantSlot {
					want = 1.0
				}
				if v != want {
					t.Errorf("one-hot[%d] = %v, want %v (phase %q)", i, v, want, tt.phase)
				}
			}
		})
	}
}

func TestIsHeroStuck(t *testing.T) {
	s := gravekeeper(t)
	if !s.IsHeroStuck(gravekeeperHero(20, 5.0, 8)) {
		t.Error("hero below the crypt floor should be stuck")
	}
	if s.IsHeroStuck(gravekeeperHero(20, 10, 8)) {
		t.Error("hero in the arena should not be stuck")
	}
}

func TestThornQueenDescriptor(t *testing.T) {
	s, err := ByBossName("Thorn Queen")
	if err != nil {
		t.Fatalf("thorn queen not registered: %v", err)
	}
	desc := s.Descriptor()
	if desc.Kind != ObsHybrid {
		t.Errorf("kind = %s", desc.Kind)
	}
	if desc.VisualWidth != 64 || desc.VisualHeight != 64 {
		t.Errorf("visual dims %dx%d", desc.VisualWidth, desc.VisualHeight)
	}
	if desc.VectorSize != baseVectorSize+5 {
		t.Errorf("vector size %d", desc.VectorSize)
	}
}

func TestClassifierOrderedFirstMatchWins(t *testing.T) {
	c := NewClassifier("test", []AttackCategory{CategoryIdle, CategoryCombo}, []PhaseRule{
		{Prefix: "Combo Recover", Category: CategoryIdle},
		{Prefix: "Combo", Category: CategoryCombo},
	})
	if got := c.Classify("Combo Recover 1"); got != CategoryIdle {
		t.Errorf("earlier rule should win, got %s", got)
	}
	if got := c.Classify("Combo Swing"); got != CategoryCombo {
		t.Errorf("got %s", got)
	}
}

func TestNormalizeClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{5, 0, 10, 0.5},
		{0, 0, 10, 0},
		{10, 0, 10, 1},
		{-3, 0, 10, 0},
		{42, 0, 10, 1},
		{7, 7, 7, 0}, // degenerate range
	}
	for _, tt := range tests {
		if got := normalize(tt.v, tt.min, tt.max); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("normalize(%v, %v, %v) = %v, want %v", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}
