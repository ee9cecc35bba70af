package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/bossrl/go-bridge/internal/episode"
)

// #region config

// Config holds all bridge configuration.
type Config struct {
	// Trainer connection
	TrainerAddr    string        `mapstructure:"trainer_addr"`
	TrainerTimeout time.Duration `mapstructure:"trainer_timeout"`
	Offline        bool          `mapstructure:"offline"`

	// Encounter selection
	BossName string `mapstructure:"boss_name"`

	// Run settings
	TickInterval time.Duration `mapstructure:"tick_interval"`
	MaxEpisodes  int           `mapstructure:"max_episodes"`

	// Episode history database ("" disables recording)
	HistoryPath string `mapstructure:"history_path"`

	// Lifecycle timing
	StuckStepThreshold int           `mapstructure:"stuck_step_threshold"`
	BossDeadResetDelay time.Duration `mapstructure:"boss_dead_reset_delay"`
	StuckResetDelay    time.Duration `mapstructure:"stuck_reset_delay"`
	HeroFullHealth     float64       `mapstructure:"hero_full_health"`
}

// Default returns a config with sensible defaults.
func Default() *Config {
	ep := episode.DefaultConfig()
	return &Config{
		TrainerAddr:        "127.0.0.1:5555",
		TrainerTimeout:     10 * time.Second,
		Offline:            false,
		BossName:           "Gravekeeper",
		TickInterval:       time.Second / 60,
		MaxEpisodes:        -1, // unlimited
		HistoryPath:        "episodes.db",
		StuckStepThreshold: ep.StuckStepThreshold,
		BossDeadResetDelay: ep.BossDeadResetDelay,
		StuckResetDelay:    ep.StuckResetDelay,
		HeroFullHealth:     ep.HeroFullHealth,
	}
}

// EpisodeConfig maps the lifecycle timing fields onto an episode.Config.
func (c *Config) EpisodeConfig() episode.Config {
	return episode.Config{
		StuckStepThreshold: c.StuckStepThreshold,
		BossDeadResetDelay: c.BossDeadResetDelay,
		StuckResetDelay:    c.StuckResetDelay,
		HeroFullHealth:     c.HeroFullHealth,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !c.Offline && c.TrainerAddr == "" {
		return fmt.Errorf("trainer_addr is required unless offline is set")
	}
	if c.BossName == "" {
		return fmt.Errorf("boss_name is required")
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive")
	}
	if c.StuckStepThreshold <= 0 {
		return fmt.Errorf("stuck_step_threshold must be positive")
	}
	if c.HeroFullHealth <= 0 {
		return fmt.Errorf("hero_full_health must be positive")
	}
	return nil
}

// #endregion config

// #region loader

// Load builds a config from defaults, an optional JSON/YAML file, and
// BRIDGE_* environment variables, in that precedence order. An empty path
// skips the file layer.
func Load(path string) (*Config, error) {
	v := viper.New()
	d := Default()
	v.SetDefault("trainer_addr", d.TrainerAddr)
	v.SetDefault("trainer_timeout", d.TrainerTimeout)
	v.SetDefault("offline", d.Offline)
	v.SetDefault("boss_name", d.BossName)
	v.SetDefault("tick_interval", d.TickInterval)
	v.SetDefault("max_episodes", d.MaxEpisodes)
	v.SetDefault("history_path", d.HistoryPath)
	v.SetDefault("stuck_step_threshold", d.StuckStepThreshold)
	v.SetDefault("boss_dead_reset_delay", d.BossDeadResetDelay)
	v.SetDefault("stuck_reset_delay", d.StuckResetDelay)
	v.SetDefault("hero_full_health", d.HeroFullHealth)

	v.SetEnvPrefix("BRIDGE")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// #endregion loader
