package sim

import "testing"

func testArena() *ScriptedArena {
	cfg := DefaultArenaConfig("Gravekeeper")
	cfg.BossRespawnTicks = 5
	cfg.PhaseTicks = 3
	return NewScriptedArena(cfg)
}

func TestArenaSpawnState(t *testing.T) {
	a := testArena()

	hero, ok := a.Hero()
	if !ok || hero.Health != 10 || hero.Position.X != 12 {
		t.Errorf("hero = %+v ok = %v", hero, ok)
	}
	boss, ok := a.Boss("Gravekeeper")
	if !ok || boss.Health != 250 || boss.PhaseName != "Idle" {
		t.Errorf("boss = %+v ok = %v", boss, ok)
	}
	if _, ok := a.Boss("Thorn Queen"); ok {
		t.Error("arena answered for a boss it does not host")
	}
}

func TestArenaMovementClampsToBounds(t *testing.T) {
	a := testArena()
	a.Apply(map[Control]bool{ControlLeft: true, ControlDash: true})

	for i := 0; i < 200; i++ {
		a.Advance()
	}
	hero, _ := a.Hero()
	if hero.Position.X != a.cfg.MinX {
		t.Errorf("hero x = %v, want clamped to %v", hero.Position.X, a.cfg.MinX)
	}
}

func TestArenaAttackOnlyLandsInRange(t *testing.T) {
	a := testArena()
	a.Apply(map[Control]bool{ControlAttack: true})

	a.Advance() // hero at x=12, boss at x=30: far out of range
	boss, _ := a.Boss("Gravekeeper")
	if boss.Health != 250 {
		t.Errorf("boss health = %v after out-of-range attack", boss.Health)
	}

	a.hero.Position.X = 27 // distance 3, inside range 4
	a.Advance()
	boss, _ = a.Boss("Gravekeeper")
	if boss.Health != 245 {
		t.Errorf("boss health = %v, want 245", boss.Health)
	}
}

func TestArenaBossDefeatAndRespawn(t *testing.T) {
	a := testArena()
	a.hero.Position.X = 27
	a.boss.Health = 5
	a.Apply(map[Control]bool{ControlAttack: true})

	a.Advance()
	if _, ok := a.Boss("Gravekeeper"); ok {
		t.Fatal("boss should despawn on defeat")
	}

	a.Apply(nil)
	for i := 0; i < 5; i++ {
		if _, ok := a.Boss("Gravekeeper"); ok {
			t.Fatalf("boss back after %d of 5 respawn ticks", i)
		}
		a.Advance()
	}
	boss, ok := a.Boss("Gravekeeper")
	if !ok || boss.Health != 250 {
		t.Errorf("boss = %+v ok = %v after respawn", boss, ok)
	}
}

func TestArenaContactDamageAndRoomReset(t *testing.T) {
	a := testArena()
	a.hero.Position = a.boss.Position // standing inside the boss
	a.hero.Health = 2
	a.boss.Health = 100

	a.Advance()
	hero, _ := a.Hero()
	if hero.Health != 1 {
		t.Fatalf("hero health = %v, want 1", hero.Health)
	}

	a.hero.Position = a.boss.Position
	a.Advance() // kills the hero: whole room resets
	hero, _ = a.Hero()
	boss, _ := a.Boss("Gravekeeper")
	if hero.Health != 10 || hero.Position != a.cfg.HeroSpawn {
		t.Errorf("hero = %+v after room reset", hero)
	}
	if boss.Health != 250 {
		t.Errorf("boss health = %v after room reset", boss.Health)
	}
}

func TestArenaPhaseCycle(t *testing.T) {
	a := testArena()
	a.Apply(nil)

	seen := map[string]bool{}
	for i := 0; i < 12; i++ {
		boss, _ := a.Boss("Gravekeeper")
		seen[boss.PhaseName] = true
		a.Advance()
	}
	for _, phase := range []string{"Idle", "Combo", "Overhead Slam"} {
		if !seen[phase] {
			t.Errorf("phase %q never observed", phase)
		}
	}
}

func TestArenaSyntheticReset(t *testing.T) {
	a := testArena()
	a.hero.Position.X = 27
	a.boss.Health = 5
	a.Apply(map[Control]bool{ControlAttack: true})
	a.Advance()
	if _, ok := a.Boss("Gravekeeper"); ok {
		t.Fatal("boss should be down")
	}

	a.SyntheticReset()
	boss, ok := a.Boss("Gravekeeper")
	if !ok || boss.Health != 250 {
		t.Errorf("boss = %+v ok = %v after synthetic reset", boss, ok)
	}
	hero, _ := a.Hero()
	if hero.Position != a.cfg.HeroSpawn || hero.Health != 10 {
		t.Errorf("hero = %+v after synthetic reset", hero)
	}
}
