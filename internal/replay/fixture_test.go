package replay

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bossrl/go-bridge/internal/episode"
)

// #region fixture-tests

func TestLoadFixture_BossKill(t *testing.T) {
	f, err := LoadFixture(filepath.Join("testdata", "boss_kill.json"))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}

	if f.BossName != "Gravekeeper" {
		t.Errorf("boss name = %q", f.BossName)
	}
	if len(f.Ticks) != 7 {
		t.Fatalf("ticks = %d", len(f.Ticks))
	}

	// Fixture sets some config fields; the rest fall back to defaults.
	cfg := f.Config.ToConfig()
	if cfg.BossDeadResetDelay != 200*time.Millisecond {
		t.Errorf("boss dead reset delay = %v", cfg.BossDeadResetDelay)
	}
	if cfg.StuckResetDelay != 100*time.Millisecond {
		t.Errorf("stuck reset delay = %v", cfg.StuckResetDelay)
	}
	if cfg.StuckStepThreshold != episode.DefaultConfig().StuckStepThreshold {
		t.Errorf("stuck threshold = %d, want default", cfg.StuckStepThreshold)
	}

	ticks := f.ToTicks()
	if ticks[0].Boss == nil || ticks[0].Boss.Name != "Gravekeeper" {
		t.Errorf("tick 0 boss = %+v", ticks[0].Boss)
	}
	if ticks[2].Boss != nil {
		t.Error("tick 2 should have no boss")
	}
	if ticks[2].Hero == nil || ticks[2].Hero.Health != 10 {
		t.Errorf("tick 2 hero = %+v", ticks[2].Hero)
	}
	if ticks[4].Offset != 250*time.Millisecond {
		t.Errorf("tick 4 offset = %v", ticks[4].Offset)
	}
}

func TestLoadFixture_MissingBossName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "anon.json")
	if err := os.WriteFile(path, []byte(`{"ticks": []}`), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	if _, err := LoadFixture(path); err == nil {
		t.Fatal("expected error for fixture without boss_name, got nil")
	}
}

func TestLoadFixture_NotFound(t *testing.T) {
	_, err := LoadFixture("testdata/nonexistent.json")
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestLoadFixture_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not valid json}"), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	if _, err := LoadFixture(path); err == nil {
		t.Fatal("expected error for malformed JSON, got nil")
	}
}

// #endregion fixture-tests
