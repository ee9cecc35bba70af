package history

import (
	"math"
	"path/filepath"
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "episodes.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func record(boss, outcome string, reward float64, endedAt time.Time) Record {
	return Record{
		BossName:    boss,
		Outcome:     outcome,
		TotalReward: reward,
		Steps:       1200,
		StartedAt:   endedAt.Add(-time.Minute),
		EndedAt:     endedAt,
	}
}

func TestRecordAssignsID(t *testing.T) {
	s := testStore(t)
	id, err := s.RecordEpisode(record("Gravekeeper", "hero_dead", -60, time.Now()))
	if err != nil {
		t.Fatal(err)
	}
	if id == "" {
		t.Error("expected a generated episode id")
	}
}

func TestRecentOrdering(t *testing.T) {
	s := testStore(t)
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	for i, reward := range []float64{-80, -20, 110} {
		if _, err := s.RecordEpisode(record("Gravekeeper", "hero_dead", reward, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatal(err)
		}
	}

	recent, err := s.Recent("Gravekeeper", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 {
		t.Fatalf("got %d records", len(recent))
	}
	if recent[0].TotalReward != 110 || recent[1].TotalReward != -20 {
		t.Errorf("wrong order: %v, %v", recent[0].TotalReward, recent[1].TotalReward)
	}
}

func TestSummarize(t *testing.T) {
	s := testStore(t)
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	rewards := []float64{-80, -40, 0, 60, 120}
	outcomes := []string{"hero_dead", "hero_dead", "hero_stuck", "boss_dead", "boss_dead"}
	for i := range rewards {
		if _, err := s.RecordEpisode(record("Gravekeeper", outcomes[i], rewards[i], base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatal(err)
		}
	}
	// A different boss must not leak into the summary.
	if _, err := s.RecordEpisode(record("Thorn Queen", "hero_dead", -999, base)); err != nil {
		t.Fatal(err)
	}

	sum, err := s.Summarize("Gravekeeper", 2)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Episodes != 5 || sum.Wins != 2 {
		t.Errorf("episodes=%d wins=%d", sum.Episodes, sum.Wins)
	}
	if math.Abs(sum.MeanReward-12) > 1e-9 {
		t.Errorf("mean = %v", sum.MeanReward)
	}
	if sum.BestReward != 120 {
		t.Errorf("best = %v", sum.BestReward)
	}
	if math.Abs(sum.RecentMean-90) > 1e-9 {
		t.Errorf("recent mean = %v", sum.RecentMean)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := testStore(t)
	sum, err := s.Summarize("Gravekeeper", 10)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Episodes != 0 || sum.MeanReward != 0 {
		t.Errorf("summary = %+v", sum)
	}
}
