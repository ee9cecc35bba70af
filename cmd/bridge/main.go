package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bossrl/go-bridge/internal/bridge"
	"github.com/bossrl/go-bridge/internal/capture"
	"github.com/bossrl/go-bridge/internal/config"
	"github.com/bossrl/go-bridge/internal/encounter"
	"github.com/bossrl/go-bridge/internal/history"
	"github.com/bossrl/go-bridge/internal/sim"
	"github.com/bossrl/go-bridge/internal/trainer"
)

// #region cli

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Boss-fight RL environment bridge",
	Long: `Bridge between a boss-fight simulation and an external RL trainer.

Each tick the bridge reads hero and boss state, runs the episode
lifecycle, extracts an observation, computes the shaped reward, hands
the transition to the trainer, and applies the returned action back to
the simulation.`,
	Run: runBridge,
}

func init() {
	cfg = config.Default()

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (JSON/YAML)")

	// Trainer settings
	rootCmd.Flags().StringVar(&cfg.TrainerAddr, "trainer-addr", cfg.TrainerAddr, "Trainer TCP address")
	rootCmd.Flags().DurationVar(&cfg.TrainerTimeout, "trainer-timeout", cfg.TrainerTimeout, "Per-call trainer deadline")
	rootCmd.Flags().BoolVar(&cfg.Offline, "offline", cfg.Offline, "Run without a trainer (lifecycle and shaping only)")

	// Encounter settings
	rootCmd.Flags().StringVar(&cfg.BossName, "boss", cfg.BossName, "Boss name of the encounter to run")

	// Run settings
	rootCmd.Flags().DurationVar(&cfg.TickInterval, "tick-interval", cfg.TickInterval, "Simulation tick interval")
	rootCmd.Flags().IntVar(&cfg.MaxEpisodes, "max-episodes", cfg.MaxEpisodes, "Episodes to run (-1 for unlimited)")
	rootCmd.Flags().StringVar(&cfg.HistoryPath, "history-db", cfg.HistoryPath, "Episode history database path (empty disables)")

	// Bind flags to viper for environment variable support
	viper.BindPFlags(rootCmd.Flags())
	viper.SetEnvPrefix("BRIDGE")
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// #endregion cli

// #region run

func runBridge(cmd *cobra.Command, args []string) {
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			log.Fatalf("Invalid config file: %v", err)
		}
		// Explicit flags win over the file.
		applyFlagOverrides(cmd, loaded)
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	strategy, err := encounter.ByBossName(cfg.BossName)
	if err != nil {
		log.Fatalf("Unknown encounter: %v", err)
	}
	desc := strategy.Descriptor()
	log.Printf("[MAIN] encounter %s (%s space, %s observations)", desc.BossName, desc.Space, desc.Kind)

	arena := sim.NewScriptedArena(sim.DefaultArenaConfig(cfg.BossName))

	var tc bridge.TrainerClient
	if !cfg.Offline {
		client, err := trainer.NewClient(cfg.TrainerAddr, cfg.TrainerTimeout)
		if err != nil {
			log.Fatalf("Connect to trainer at %s: %v", cfg.TrainerAddr, err)
		}
		defer client.Close()
		tc = client
	}

	var store *history.Store
	if cfg.HistoryPath != "" {
		store, err = history.NewStore(cfg.HistoryPath)
		if err != nil {
			log.Fatalf("Open history db: %v", err)
		}
		defer store.Close()
	}

	var frames *capture.Cache
	if desc.Kind == encounter.ObsHybrid {
		frames = capture.NewCache()
	}

	b := bridge.New(cfg.EpisodeConfig(), strategy, arena, arena, tc, frames, store)
	if err := b.Initialize(); err != nil {
		log.Fatalf("Initialize trainer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("[MAIN] received %v, shutting down", sig)
		cancel()
	}()

	runLoop(ctx, b, arena, cfg.TickInterval, cfg.MaxEpisodes)
	log.Printf("[MAIN] bridge stopped")
}

// applyFlagOverrides copies explicitly-set command line flags onto a
// file-loaded config.
func applyFlagOverrides(cmd *cobra.Command, loaded *config.Config) {
	if cmd.Flags().Changed("trainer-addr") {
		loaded.TrainerAddr = cfg.TrainerAddr
	}
	if cmd.Flags().Changed("trainer-timeout") {
		loaded.TrainerTimeout = cfg.TrainerTimeout
	}
	if cmd.Flags().Changed("offline") {
		loaded.Offline = cfg.Offline
	}
	if cmd.Flags().Changed("boss") {
		loaded.BossName = cfg.BossName
	}
	if cmd.Flags().Changed("tick-interval") {
		loaded.TickInterval = cfg.TickInterval
	}
	if cmd.Flags().Changed("max-episodes") {
		loaded.MaxEpisodes = cfg.MaxEpisodes
	}
	if cmd.Flags().Changed("history-db") {
		loaded.HistoryPath = cfg.HistoryPath
	}
}

// runLoop drives the arena and bridge at the configured tick rate until
// the context ends or maxEpisodes finish.
func runLoop(ctx context.Context, b *bridge.Bridge, arena *sim.ScriptedArena, interval time.Duration, maxEpisodes int) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	episodes := 0
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			arena.Advance()
			rep := b.Step(now)
			if rep.Terminal {
				episodes++
				if maxEpisodes > 0 && episodes >= maxEpisodes {
					log.Printf("[MAIN] reached %d episodes", episodes)
					return
				}
			}
		}
	}
}

// #endregion run
