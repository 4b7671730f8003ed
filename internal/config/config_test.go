package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token-from-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Telegram.Token != "token-from-env" {
		t.Fatalf("expected legacy token variable, got %q", cfg.Telegram.Token)
	}
	if cfg.Goal.TickInterval != 5*time.Second || cfg.Goal.MaxIncrement != 1000 {
		t.Fatalf("unexpected goal defaults %+v", cfg.Goal)
	}
	if cfg.Inactivity.Threshold != 24*time.Hour || cfg.Inactivity.CheckInterval != time.Minute {
		t.Fatalf("unexpected inactivity defaults %+v", cfg.Inactivity)
	}
	if cfg.Database.URL != "file::memory:?cache=shared" {
		t.Fatalf("unexpected database default %q", cfg.Database.URL)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "telegram:\n  token: file-token\ngoal:\n  tick_interval: 2s\ninactivity:\n  threshold: 10s\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FITNESS_GOAL_MAX_INCREMENT", "250")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Telegram.Token != "file-token" {
		t.Fatalf("expected token from file, got %q", cfg.Telegram.Token)
	}
	if cfg.Goal.TickInterval != 2*time.Second {
		t.Fatalf("expected tick interval from file, got %v", cfg.Goal.TickInterval)
	}
	if cfg.Goal.MaxIncrement != 250 {
		t.Fatalf("expected max increment from env, got %d", cfg.Goal.MaxIncrement)
	}
	if cfg.Inactivity.Threshold != 10*time.Second {
		t.Fatalf("expected threshold from file, got %v", cfg.Inactivity.Threshold)
	}
}

func TestValidateRequiresToken(t *testing.T) {
	cfg := &Config{
		Goal:       GoalConfig{TickInterval: time.Second, MaxIncrement: 10},
		Inactivity: InactivityConfig{Threshold: time.Second, CheckInterval: time.Second},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected missing token error")
	}
}

func TestValidateRejectsSubSecondIntervals(t *testing.T) {
	valid := Config{
		Telegram:   TelegramConfig{Token: "token"},
		Goal:       GoalConfig{TickInterval: time.Second, MaxIncrement: 10},
		Inactivity: InactivityConfig{Threshold: time.Hour, CheckInterval: time.Second},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	tick := valid
	tick.Goal.TickInterval = 500 * time.Millisecond
	if err := tick.Validate(); err == nil {
		t.Fatalf("expected error for sub-second goal.tick_interval")
	}

	check := valid
	check.Inactivity.CheckInterval = 250 * time.Millisecond
	if err := check.Validate(); err == nil {
		t.Fatalf("expected error for sub-second inactivity.check_interval")
	}
}

func TestEnvKey(t *testing.T) {
	cases := map[string]string{
		"FITNESS_GOAL_TICK_INTERVAL": "goal.tick_interval",
		"FITNESS_TELEGRAM_TOKEN":     "telegram.token",
		"FITNESS_CONFIG":             "",
	}
	for in, want := range cases {
		if got := envKey(in); got != want {
			t.Fatalf("envKey(%q): expected %q, got %q", in, want, got)
		}
	}
}
