package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/bossrl/go-bridge/internal/encounter"
	"github.com/bossrl/go-bridge/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to fixture JSON")
	verbose := flag.Bool("v", false, "print every tick, not just lifecycle events")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json [-v]")
		os.Exit(2)
	}

	os.Exit(run(*fixturePath, *verbose))
}

func run(path string, verbose bool) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	strategy, err := encounter.ByBossName(f.BossName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve encounter: %v\n", err)
		return 2
	}

	if f.Description != "" {
		fmt.Printf("%s\n\n", f.Description)
	}

	results := replay.Replay(strategy, f.Config.ToConfig(), f.ToTicks())
	printResults(results, verbose)
	printSummary(replay.Summarize(results))
	return 0
}

// #endregion main

// #region output

func printResults(results []replay.TickResult, verbose bool) {
	fmt.Printf("%-6s| %-11s| %-5s| %-9s| %-10s| %s\n",
		"Tick", "Status", "Skip", "Terminal", "Reward", "Reset")
	fmt.Printf("%-6s+%-12s+%-6s+%-10s+%-11s+%s\n",
		"------", "------------", "------", "----------", "-----------", "------")

	for _, r := range results {
		// Default output shows only the ticks where something happened.
		if !verbose && !r.Terminal && !r.Skipped && r.ResetCommands == 0 {
			continue
		}
		term := ""
		if r.Terminal {
			term = "yes"
		}
		skip := ""
		if r.Skipped {
			skip = "yes"
		}
		reset := ""
		if r.ResetCommands > 0 {
			reset = "sent"
		}
		fmt.Printf("%-6d| %-11s| %-5s| %-9s| %-10.3f| %s\n",
			r.Index, r.Status, skip, term, r.Reward, reset)
	}
}

func printSummary(s replay.Summary) {
	fmt.Printf("\nSummary: %d ticks (%d skipped), %d boss kills, %d hero deaths, %d stuck resets\n",
		s.TotalTicks, s.SkippedTicks, s.BossKills, s.HeroDeaths, s.StuckResets)
	fmt.Printf("         %d reset commands, total reward %.3f, final status %s\n",
		s.ResetCommands, s.TotalReward, s.FinalStatus)
}

// #endregion output
