// Package config loads game settings from defaults, an optional YAML file and
// ROULETTE_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the game. Zero values are never used directly;
// start from Default.
type Config struct {
	ConfigRoot   string `yaml:"config_root" env:"ROULETTE_CONFIG_ROOT"`
	LivesDir     string `yaml:"lives_dir" env:"ROULETTE_LIVES_DIR"`
	SacrificeDir string `yaml:"sacrifice_dir" env:"ROULETTE_SACRIFICE_DIR"`

	Chambers           int     `yaml:"chambers" env:"ROULETTE_CHAMBERS"`
	FatalChamber       int     `yaml:"fatal_chamber" env:"ROULETTE_FATAL_CHAMBER"`
	NormalFailChance   float64 `yaml:"normal_fail_chance" env:"ROULETTE_NORMAL_FAIL_CHANCE"`
	HardcoreFailChance float64 `yaml:"hardcore_fail_chance" env:"ROULETTE_HARDCORE_FAIL_CHANCE"`
	ConfirmPhrase      string  `yaml:"confirm_phrase" env:"ROULETTE_CONFIRM_PHRASE"`

	Seed       int64         `yaml:"seed" env:"ROULETTE_SEED"` // 0 for time-based
	Debug      bool          `yaml:"debug" env:"ROULETTE_DEBUG"`
	Sound      bool          `yaml:"sound" env:"ROULETTE_SOUND"`
	Animation  bool          `yaml:"animation" env:"ROULETTE_ANIMATION"`
	FrameDelay time.Duration `yaml:"frame_delay" env:"ROULETTE_FRAME_DELAY"`
}

// Default returns the settings of the classic game: six chambers, the first
// one loaded, lives in ./lives.
func Default() Config {
	return Config{
		ConfigRoot:         DefaultConfigRoot(),
		LivesDir:           "./lives",
		SacrificeDir:       DefaultSacrificeDir(),
		Chambers:           6,
		FatalChamber:       1,
		NormalFailChance:   0.33,
		HardcoreFailChance: 0.13,
		ConfirmPhrase:      "SACRIFICE",
		Sound:              true,
		Animation:          true,
		FrameDelay:         80 * time.Millisecond,
	}
}

// DefaultConfigRoot is the per-user directory that holds the mode directories.
func DefaultConfigRoot() string {
	if runtime.GOOS == "windows" {
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return dir
		}
		home, _ := os.UserHomeDir()
		return home
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// DefaultSacrificeDir is the directory hardcore mode takes its victims from.
func DefaultSacrificeDir() string {
	if runtime.GOOS == "windows" {
		return "C:/Windows/System32"
	}
	return "/"
}

// Load builds a Config from defaults, the YAML file at path (skipped when path
// is empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config YAML: %w", err)
		}
	}

	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables. Fields whose
// variable is unset keep their current value.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate reports every inconsistent setting at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.ConfigRoot) == "" {
		errs = append(errs, errors.New("config_root must not be empty"))
	}
	if strings.TrimSpace(c.LivesDir) == "" {
		errs = append(errs, errors.New("lives_dir must not be empty"))
	}
	if c.Chambers < 2 {
		errs = append(errs, fmt.Errorf("chambers must be at least 2, got %d", c.Chambers))
	}
	if c.FatalChamber < 1 || c.FatalChamber > c.Chambers {
		errs = append(errs, fmt.Errorf("fatal_chamber must be within 1..%d, got %d", c.Chambers, c.FatalChamber))
	}
	if c.NormalFailChance < 0 || c.NormalFailChance > 1 {
		errs = append(errs, fmt.Errorf("normal_fail_chance must be within [0,1], got %v", c.NormalFailChance))
	}
	if c.HardcoreFailChance < 0 || c.HardcoreFailChance > 1 {
		errs = append(errs, fmt.Errorf("hardcore_fail_chance must be within [0,1], got %v", c.HardcoreFailChance))
	}
	if strings.TrimSpace(c.ConfirmPhrase) == "" {
		errs = append(errs, errors.New("confirm_phrase must not be empty"))
	}
	if c.FrameDelay < 0 {
		errs = append(errs, fmt.Errorf("frame_delay must not be negative, got %s", c.FrameDelay))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// FailChance returns the jam/dud probability for the given mode.
func (c Config) FailChance(hardcore bool) float64 {
	if hardcore {
		return c.HardcoreFailChance
	}
	return c.NormalFailChance
}
