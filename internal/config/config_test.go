package config

import (
	"log/slog"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DatabasePath != "data/warmarch.db" {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if cfg.CampaignSeed != 42 || cfg.Days != 30 || cfg.SaveEvery != 1 {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.MapWidth != 40 || cfg.MapHeight != 30 || cfg.Factions != 3 {
		t.Errorf("map defaults = %+v", cfg)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("WARMARCH_DB", "/tmp/test.db")
	t.Setenv("WARMARCH_SEED", "1234")
	t.Setenv("WARMARCH_DAYS", "90")
	t.Setenv("WARMARCH_SAVE_EVERY", "0")
	t.Setenv("WARMARCH_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DatabasePath != "/tmp/test.db" {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if cfg.CampaignSeed != 1234 || cfg.Days != 90 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.SaveEvery != 1 {
		t.Errorf("SaveEvery = %d, want floored to 1", cfg.SaveEvery)
	}
}

func TestLoadRejectsBadDays(t *testing.T) {
	t.Setenv("WARMARCH_DAYS", "0")
	if _, err := Load(); err == nil {
		t.Fatal("zero days should be rejected")
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.name}
		if got := cfg.SlogLevel(); got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
