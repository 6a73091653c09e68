package systems

import (
	"testing"
	"time"

	cfg "github.com/brawlworks/skybrawl/config"
)

func TestApplySavedSettings(t *testing.T) {
	origSettings := cfg.Settings
	origNet := cfg.Net
	defer func() {
		cfg.Settings = origSettings
		cfg.Net = origNet
	}()

	ApplySavedSettings(&SavedSettings{
		PlayerName:           "ace",
		ServerAddr:           "arena.example:7777",
		InterpolationDelayMs: 150,
		PredictionEnabled:    false,
	})

	if cfg.Settings.DefaultPlayerName != "ace" {
		t.Fatalf("player name = %q", cfg.Settings.DefaultPlayerName)
	}
	if cfg.Settings.DefaultServerAddr != "arena.example:7777" {
		t.Fatalf("server addr = %q", cfg.Settings.DefaultServerAddr)
	}
	if cfg.Settings.PredictionEnabled {
		t.Fatalf("saved prediction toggle was not applied")
	}
	if cfg.Net.InterpolationDelay != 150*time.Millisecond {
		t.Fatalf("interpolation delay = %v, want 150ms", cfg.Net.InterpolationDelay)
	}
}

func TestApplySavedSettingsClampsInterpDelay(t *testing.T) {
	origSettings := cfg.Settings
	origNet := cfg.Net
	defer func() {
		cfg.Settings = origSettings
		cfg.Net = origNet
	}()

	ApplySavedSettings(&SavedSettings{InterpolationDelayMs: 10_000, PredictionEnabled: true})
	if got := cfg.Net.InterpolationDelay; got != time.Duration(cfg.Settings.MaxInterpDelayMs)*time.Millisecond {
		t.Fatalf("delay above range not clamped: %v", got)
	}

	ApplySavedSettings(&SavedSettings{InterpolationDelayMs: 1, PredictionEnabled: true})
	if got := cfg.Net.InterpolationDelay; got != time.Duration(cfg.Settings.MinInterpDelayMs)*time.Millisecond {
		t.Fatalf("delay below range not clamped: %v", got)
	}

	// Empty name/addr keep the current values.
	ApplySavedSettings(&SavedSettings{PredictionEnabled: true})
	if cfg.Settings.DefaultPlayerName == "" || cfg.Settings.DefaultServerAddr == "" {
		t.Fatalf("blank saved identity overwrote defaults")
	}
}
