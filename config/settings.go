package config

// SettingsConfig contains defaults for user-adjustable client settings.
type SettingsConfig struct {
	DefaultPlayerName string
	DefaultServerAddr string

	// PredictionEnabled false turns the client into a dumb terminal
	// that renders authoritative state directly.
	PredictionEnabled bool

	// Bounds for the interpolation delay slider (ms)
	MinInterpDelayMs int
	MaxInterpDelayMs int
}

// Settings is the global settings configuration
var Settings SettingsConfig

func init() {
	Settings = SettingsConfig{
		DefaultPlayerName: "brawler",
		DefaultServerAddr: "localhost:7777",

		PredictionEnabled: true,

		MinInterpDelayMs: 50,
		MaxInterpDelayMs: 250,
	}
}
