package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Chambers != 6 || cfg.FatalChamber != 1 {
		t.Errorf("expected 6 chambers with chamber 1 loaded, got %d/%d", cfg.Chambers, cfg.FatalChamber)
	}
	if cfg.FailChance(false) != 0.33 || cfg.FailChance(true) != 0.13 {
		t.Errorf("unexpected fail chances: normal %v hardcore %v", cfg.FailChance(false), cfg.FailChance(true))
	}
}

func TestLoadYAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roulette.yaml")
	data := "chambers: 8\nfatal_chamber: 3\nlives_dir: /tmp/lives\nframe_delay: 10ms\nconfirm_phrase: OFFERING\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ROULETTE_FATAL_CHAMBER", "5")
	t.Setenv("ROULETTE_NORMAL_FAIL_CHANCE", "0")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Chambers != 8 {
		t.Errorf("chambers: expected 8 from YAML, got %d", cfg.Chambers)
	}
	if cfg.FatalChamber != 5 {
		t.Errorf("fatal chamber: expected env override 5, got %d", cfg.FatalChamber)
	}
	if cfg.NormalFailChance != 0 {
		t.Errorf("normal fail chance: expected 0, got %v", cfg.NormalFailChance)
	}
	if cfg.HardcoreFailChance != 0.13 {
		t.Errorf("hardcore fail chance should keep its default, got %v", cfg.HardcoreFailChance)
	}
	if cfg.LivesDir != "/tmp/lives" || cfg.ConfirmPhrase != "OFFERING" {
		t.Errorf("unexpected YAML values: %+v", cfg)
	}
	if cfg.FrameDelay != 10*time.Millisecond {
		t.Errorf("frame delay: expected 10ms, got %s", cfg.FrameDelay)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestValidateRejectsBadRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"one chamber", func(c *Config) { c.Chambers = 1; c.FatalChamber = 1 }, "chambers"},
		{"fatal out of range", func(c *Config) { c.FatalChamber = 7 }, "fatal_chamber"},
		{"negative chance", func(c *Config) { c.NormalFailChance = -0.1 }, "normal_fail_chance"},
		{"chance above one", func(c *Config) { c.HardcoreFailChance = 1.5 }, "hardcore_fail_chance"},
		{"blank phrase", func(c *Config) { c.ConfirmPhrase = "  " }, "confirm_phrase"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}
