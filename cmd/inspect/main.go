package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/bossrl/go-bridge/internal/encounter"
	"github.com/bossrl/go-bridge/internal/history"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to episodes.db")
	boss := flag.String("boss", "", "boss name (defaults to every known encounter)")
	last := flag.Int("last", 20, "show N most recent episodes")
	window := flag.Int("window", 50, "recent-mean window for the summary")
	jsonOut := flag.Bool("json", false, "output as JSON instead of a table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/episodes.db [--boss name] [--last N] [--window N] [--json]")
		os.Exit(2)
	}

	store, err := history.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	bosses := []string{*boss}
	if *boss == "" {
		bosses = encounter.Known()
	}

	for _, name := range bosses {
		if err := inspectBoss(store, name, *last, *window, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

// #endregion main

// #region report

type summaryRow struct {
	BossName     string  `json:"boss_name"`
	Episodes     int     `json:"episodes"`
	Wins         int     `json:"wins"`
	MeanReward   float64 `json:"mean_reward"`
	BestReward   float64 `json:"best_reward"`
	RecentMean   float64 `json:"recent_mean"`
	RecentWindow int     `json:"recent_window"`
}

type episodeRow struct {
	EpisodeID   string  `json:"episode_id"`
	Outcome     string  `json:"outcome"`
	TotalReward float64 `json:"total_reward"`
	Steps       int     `json:"steps"`
	StartedAt   string  `json:"started_at"`
	EndedAt     string  `json:"ended_at"`
}

type bossReport struct {
	Summary summaryRow   `json:"summary"`
	Recent  []episodeRow `json:"recent"`
}

func inspectBoss(store *history.Store, boss string, last, window int, jsonOut bool) error {
	summary, err := store.Summarize(boss, window)
	if err != nil {
		return err
	}
	recent, err := store.Recent(boss, last)
	if err != nil {
		return err
	}

	if jsonOut {
		report := bossReport{
			Summary: summaryRow{
				BossName:     summary.BossName,
				Episodes:     summary.Episodes,
				Wins:         summary.Wins,
				MeanReward:   summary.MeanReward,
				BestReward:   summary.BestReward,
				RecentMean:   summary.RecentMean,
				RecentWindow: summary.RecentWindow,
			},
			Recent: make([]episodeRow, 0, len(recent)),
		}
		for _, r := range recent {
			report.Recent = append(report.Recent, episodeRow{
				EpisodeID:   r.EpisodeID,
				Outcome:     r.Outcome,
				TotalReward: r.TotalReward,
				Steps:       r.Steps,
				StartedAt:   r.StartedAt.Format(time.RFC3339),
				EndedAt:     r.EndedAt.Format(time.RFC3339),
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Printf("%s: %d episodes, %d wins, mean reward %.2f, best %.2f, recent-%d mean %.2f\n",
		boss, summary.Episodes, summary.Wins, summary.MeanReward,
		summary.BestReward, summary.RecentWindow, summary.RecentMean)

	if len(recent) == 0 {
		fmt.Println()
		return nil
	}

	fmt.Printf("%-38s| %-11s| %-10s| %-7s| %s\n", "Episode", "Outcome", "Reward", "Steps", "Ended")
	fmt.Printf("%-38s+%-12s+%-11s+%-8s+%s\n",
		"--------------------------------------", "------------", "-----------", "--------", "---------------------")
	for _, r := range recent {
		fmt.Printf("%-38s| %-11s| %-10.2f| %-7d| %s\n",
			r.EpisodeID, r.Outcome, r.TotalReward, r.Steps, r.EndedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Println()
	return nil
}

// #endregion report
