package history

// #region imports
import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
	_ "modernc.org/sqlite"
)

// #endregion

// #region schema

const episodesSchema = `
CREATE TABLE IF NOT EXISTS episodes (
	episode_id    TEXT PRIMARY KEY,
	boss_name     TEXT NOT NULL,
	outcome       TEXT NOT NULL,
	total_reward  REAL NOT NULL,
	steps         INTEGER NOT NULL,
	started_at    TEXT NOT NULL,
	ended_at      TEXT NOT NULL
);
`

const episodesIndex = `
CREATE INDEX IF NOT EXISTS idx_episodes_boss
ON episodes(boss_name, ended_at);
`

// #endregion schema

// #region record

// Record is one finished episode.
type Record struct {
	EpisodeID   string
	BossName    string
	Outcome     string // terminal status name: hero_dead | boss_dead | hero_stuck
	TotalReward float64
	Steps       int
	StartedAt   time.Time
	EndedAt     time.Time
}

// Summary aggregates a boss's training history.
type Summary struct {
	BossName      string
	Episodes      int
	Wins          int // boss_dead outcomes
	MeanReward    float64
	BestReward    float64
	RecentMean    float64 // mean over the most recent window
	RecentWindow  int
}

// #endregion record

// #region store

// Store persists finished episodes in SQLite. The trainer keeps its own
// counters inside its checkpoints; this is the bridge-side record an
// operator can inspect without unpickling anything.
type Store struct {
	db *sql.DB
}

// NewStore opens the episode database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(episodesSchema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if _, err := db.Exec(episodesIndex); err != nil {
		return nil, fmt.Errorf("migrate index: %w", err)
	}
	if _, err := db.Exec(eventsSchema); err != nil {
		return nil, fmt.Errorf("migrate events: %w", err)
	}
	if _, err := db.Exec(eventsIndex); err != nil {
		return nil, fmt.Errorf("migrate events index: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion store

// #region record-episode

// RecordEpisode persists one finished episode. A missing EpisodeID gets a
// fresh UUID; the assigned id is returned.
func (s *Store) RecordEpisode(rec Record) (string, error) {
	if rec.EpisodeID == "" {
		rec.EpisodeID = uuid.NewString()
	}
	_, err := s.db.Exec(`
		INSERT INTO episodes
		(episode_id, boss_name, outcome, total_reward, steps, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.EpisodeID,
		rec.BossName,
		rec.Outcome,
		rec.TotalReward,
		rec.Steps,
		rec.StartedAt.Format(time.RFC3339Nano),
		rec.EndedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("insert episode: %w", err)
	}
	return rec.EpisodeID, nil
}

// #endregion record-episode

// #region queries

// Recent returns the most recent n episodes for a boss, newest first.
func (s *Store) Recent(bossName string, n int) ([]Record, error) {
	rows, err := s.db.Query(`
		SELECT episode_id, boss_name, outcome, total_reward, steps, started_at, ended_at
		FROM episodes
		WHERE boss_name = ?
		ORDER BY ended_at DESC
		LIMIT ?`,
		bossName, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var started, ended string
		if err := rows.Scan(&rec.EpisodeID, &rec.BossName, &rec.Outcome, &rec.TotalReward, &rec.Steps, &started, &ended); err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		rec.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		rec.EndedAt, _ = time.Parse(time.RFC3339Nano, ended)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Summarize aggregates a boss's history. window sizes the recent-mean
// (matching the trainer's checkpoint cadence); zero episodes yield a
// zero-valued summary, not an error.
func (s *Store) Summarize(bossName string, window int) (Summary, error) {
	rows, err := s.db.Query(`
		SELECT outcome, total_reward
		FROM episodes
		WHERE boss_name = ?
		ORDER BY ended_at ASC`,
		bossName,
	)
	if err != nil {
		return Summary{}, fmt.Errorf("query summary: %w", err)
	}
	defer rows.Close()

	var rewards []float64
	wins := 0
	for rows.Next() {
		var outcome string
		var reward float64
		if err := rows.Scan(&outcome, &reward); err != nil {
			return Summary{}, fmt.Errorf("scan summary: %w", err)
		}
		if outcome == "boss_dead" {
			wins++
		}
		rewards = append(rewards, reward)
	}
	if err := rows.Err(); err != nil {
		return Summary{}, err
	}

	sum := Summary{BossName: bossName, Episodes: len(rewards), Wins: wins, RecentWindow: window}
	if len(rewards) == 0 {
		return sum, nil
	}

	sum.MeanReward = stat.Mean(rewards, nil)
	sum.BestReward = rewards[0]
	for _, r := range rewards[1:] {
		if r > sum.BestReward {
			sum.BestReward = r
		}
	}

	recent := rewards
	if window > 0 && len(rewards) > window {
		recent = rewards[len(rewards)-window:]
	}
	sum.RecentMean = stat.Mean(recent, nil)
	return sum, nil
}

// #endregion queries
