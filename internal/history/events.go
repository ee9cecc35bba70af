package history

import (
	"fmt"
	"time"
)

// #region schema

const eventsSchema = `
CREATE TABLE IF NOT EXISTS lifecycle_events (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	episode_id  TEXT,
	boss_name   TEXT NOT NULL,
	event       TEXT NOT NULL,
	detail      TEXT,
	created_at  TEXT NOT NULL
);
`

const eventsIndex = `
CREATE INDEX IF NOT EXISTS idx_events_boss
ON lifecycle_events(boss_name, created_at);
`

// #endregion schema

// #region event

// Event is one lifecycle audit entry: an episode ending, a synthetic
// reset command going out, a reset completing. Kept alongside the episode
// rows so odd runs can be reconstructed after the fact.
type Event struct {
	EpisodeID string // may be empty for events outside an episode
	BossName  string
	Event     string
	Detail    string
	CreatedAt time.Time
}

// #endregion event

// #region log-event

// RecordEvent appends one lifecycle event.
func (s *Store) RecordEvent(ev Event) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
		INSERT INTO lifecycle_events (episode_id, boss_name, event, detail, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		nullIfEmpty(ev.EpisodeID),
		ev.BossName,
		ev.Event,
		nullIfEmpty(ev.Detail),
		ev.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log event: %w", err)
	}
	return nil
}

// Events returns the most recent n lifecycle events for a boss, newest
// first.
func (s *Store) Events(bossName string, n int) ([]Event, error) {
	rows, err := s.db.Query(`
		SELECT episode_id, boss_name, event, detail, created_at
		FROM lifecycle_events
		WHERE boss_name = ?
		ORDER BY id DESC
		LIMIT ?`,
		bossName, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var ev Event
		var episodeID, detail, created *string
		if err := rows.Scan(&episodeID, &ev.BossName, &ev.Event, &detail, &created); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if episodeID != nil {
			ev.EpisodeID = *episodeID
		}
		if detail != nil {
			ev.Detail = *detail
		}
		if created != nil {
			ev.CreatedAt, _ = time.Parse(time.RFC3339Nano, *created)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// #endregion log-event

// #region helpers

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
