package config

import "path/filepath"

// UIConfig contains terminal presentation and logging settings
type UIConfig struct {
	JsonLogs bool   `json:"json_logs"` // Write the log file as JSON lines
	Debug    bool   `json:"debug"`     // Log ignored events
	Theme    string `json:"theme"`     // Name of a theme in ThemesDir
	Mouse    bool   `json:"mouse"`     // Enable mouse wheel scrolling in the terminal host
}

// DefaultUIConfig returns sensible defaults for UI configuration
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		JsonLogs: false,
		Debug:    false,
		Theme:    "default",
		Mouse:    true,
	}
}

// ThemesDir returns the directory themes are loaded from for a config file
// directory
func (c *UIConfig) ThemesDir(configDir string) string {
	if configDir == "" {
		configDir = DirName
	}
	return filepath.Join(configDir, "themes")
}
