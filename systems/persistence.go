package systems

import (
	"encoding/json"
	"log"
	"time"

	cfg "github.com/brawlworks/skybrawl/config"
	"github.com/quasilyte/gdata"
)

// SavedSettings represents the settings data stored on disk
type SavedSettings struct {
	PlayerName           string `json:"playerName"`
	ServerAddr           string `json:"serverAddr"`
	InterpolationDelayMs int    `json:"interpolationDelayMs"`
	PredictionEnabled    bool   `json:"predictionEnabled"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "skybrawl",
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadSettings loads settings from disk. Returns nil without an error
// when nothing has been saved yet.
func LoadSettings() (*SavedSettings, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem("settings")
	if err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
		return nil, nil
	}
	if len(data) == 0 {
		// No saved settings yet, use defaults
		return nil, nil
	}

	var settings SavedSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Printf("Warning: Could not parse saved settings: %v", err)
		return nil, err
	}

	return &settings, nil
}

// SaveSettings saves settings to disk
func SaveSettings(s *SavedSettings) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("Warning: Could not serialize settings: %v", err)
		return err
	}

	if err := gdataManager.SaveItem("settings", data); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
		return err
	}
	return nil
}

// ApplySavedSettings writes loaded settings into the global config,
// clamping the interpolation delay to its supported range.
func ApplySavedSettings(saved *SavedSettings) {
	if saved == nil {
		return
	}

	if saved.PlayerName != "" {
		cfg.Settings.DefaultPlayerName = saved.PlayerName
	}
	if saved.ServerAddr != "" {
		cfg.Settings.DefaultServerAddr = saved.ServerAddr
	}
	cfg.Settings.PredictionEnabled = saved.PredictionEnabled
	if saved.InterpolationDelayMs > 0 {
		ms := saved.InterpolationDelayMs
		if ms < cfg.Settings.MinInterpDelayMs {
			ms = cfg.Settings.MinInterpDelayMs
		}
		if ms > cfg.Settings.MaxInterpDelayMs {
			ms = cfg.Settings.MaxInterpDelayMs
		}
		cfg.Net.InterpolationDelay = time.Duration(ms) * time.Millisecond
	}
}
