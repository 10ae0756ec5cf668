package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alantheprice/dropdown/pkg/dropdown"
)

const (
	// DirName is the per-project and per-user configuration directory
	DirName = ".dropdown"
	// FileName is the configuration file inside DirName
	FileName = "config.json"
	// EnvPrefix prefixes environment overrides, e.g. DROPDOWN_CAPACITY
	EnvPrefix = "DROPDOWN_"
)

// WidgetConfig holds the default widget props used by every host
type WidgetConfig struct {
	Mode              dropdown.Mode `json:"mode"`
	Searchable        bool          `json:"searchable"`
	Placeholder       string        `json:"placeholder"`
	SearchPlaceholder string        `json:"search_placeholder"`
	EmptyText         string        `json:"empty_text"`
	ItemExtent        float64       `json:"item_extent"` // pixels per row for web hosts
	Capacity          int           `json:"capacity"`    // rows materialized at once
}

// ServerConfig configures the websocket host
type ServerConfig struct {
	Host            string `json:"host"`
	Port            int    `json:"port"`
	PingIntervalSec int    `json:"ping_interval_sec"`
	ReadTimeoutSec  int    `json:"read_timeout_sec"`
}

// Config is the dropdown configuration file
type Config struct {
	Widget  WidgetConfig `json:"widget"`
	Server  ServerConfig `json:"server"`
	UI      UIConfig     `json:"ui"`
	Catalog string       `json:"catalog"` // default catalog name or file; empty means fruits

	path string
}

func getHomeConfigPath() (string, string) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	configDir := filepath.Join(home, DirName)
	return configDir, filepath.Join(configDir, FileName)
}

func getCurrentConfigPath() (string, string) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", ""
	}
	configDir := filepath.Join(cwd, DirName)
	return configDir, filepath.Join(configDir, FileName)
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{Widget: WidgetConfig{Searchable: true}, UI: *DefaultUIConfig()}
	cfg.setDefaultValues()
	return cfg
}

func (cfg *Config) setDefaultValues() {
	if cfg.Widget.Placeholder == "" {
		cfg.Widget.Placeholder = dropdown.DefaultPlaceholder
	}
	if cfg.Widget.SearchPlaceholder == "" {
		cfg.Widget.SearchPlaceholder = dropdown.DefaultSearchPlaceholder
	}
	if cfg.Widget.EmptyText == "" {
		cfg.Widget.EmptyText = dropdown.DefaultEmptyText
	}
	if cfg.Widget.ItemExtent <= 0 {
		cfg.Widget.ItemExtent = dropdown.DefaultItemExtent
	}
	if cfg.Widget.Capacity <= 0 {
		cfg.Widget.Capacity = dropdown.DefaultCapacity
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 54321
	}
	if cfg.Server.PingIntervalSec <= 0 {
		cfg.Server.PingIntervalSec = 30
	}
	if cfg.Server.ReadTimeoutSec <= 0 {
		cfg.Server.ReadTimeoutSec = 60
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = "default"
	}
}

func loadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	// Searchable and mouse support default to true for files that do not
	// mention them
	cfg := Config{Widget: WidgetConfig{Searchable: true}, UI: *DefaultUIConfig()}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filePath, err)
	}
	cfg.setDefaultValues()
	cfg.path = filePath
	return &cfg, nil
}

func saveConfig(filePath string, cfg *Config) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}

// Load reads .dropdown/config.json from the working directory, then from the
// home directory, and otherwise returns defaults. Environment overrides are
// applied last.
func Load() (*Config, error) {
	_, currentConfigPath := getCurrentConfigPath()
	_, homeConfigPath := getHomeConfigPath()

	var cfg *Config
	for _, path := range []string{currentConfigPath, homeConfigPath} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		loaded, err := loadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		break
	}
	if cfg == nil {
		cfg = Default()
	}

	if err := cfg.applyEnvironment(os.Getenv); err != nil {
		return nil, err
	}
	if result := cfg.Validate(); !result.IsValid() {
		return nil, result.CombinedError()
	}
	return cfg, nil
}

// LoadFile reads one explicit configuration file
func LoadFile(path string) (*Config, error) {
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnvironment(os.Getenv); err != nil {
		return nil, err
	}
	if result := cfg.Validate(); !result.IsValid() {
		return nil, result.CombinedError()
	}
	return cfg, nil
}

// InitConfig writes a default configuration into the working directory and
// returns its path
func InitConfig() (string, error) {
	_, currentConfigPath := getCurrentConfigPath()
	if currentConfigPath == "" {
		return "", fmt.Errorf("could not determine working directory")
	}
	if _, err := os.Stat(currentConfigPath); err == nil {
		return currentConfigPath, fmt.Errorf("config already exists at %s", currentConfigPath)
	}
	if err := saveConfig(currentConfigPath, Default()); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return currentConfigPath, nil
}

// Path returns the file the configuration came from, or "" for defaults
func (cfg *Config) Path() string {
	return cfg.path
}

// applyEnvironment overlays DROPDOWN_* variables on the loaded values
func (cfg *Config) applyEnvironment(getenv func(string) string) error {
	if v := getenv(EnvPrefix + "MODE"); v != "" {
		mode, err := dropdown.ParseMode(v)
		if err != nil {
			return fmt.Errorf("invalid %sMODE: %w", EnvPrefix, err)
		}
		cfg.Widget.Mode = mode
	}
	if v := getenv(EnvPrefix + "SEARCHABLE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sSEARCHABLE: %w", EnvPrefix, err)
		}
		cfg.Widget.Searchable = b
	}
	if v := getenv(EnvPrefix + "CAPACITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sCAPACITY: %w", EnvPrefix, err)
		}
		cfg.Widget.Capacity = n
	}
	if v := getenv(EnvPrefix + "ITEM_EXTENT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %sITEM_EXTENT: %w", EnvPrefix, err)
		}
		cfg.Widget.ItemExtent = f
	}
	if v := getenv(EnvPrefix + "PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sPORT: %w", EnvPrefix, err)
		}
		cfg.Server.Port = n
	}
	if v := getenv(EnvPrefix + "THEME"); v != "" {
		cfg.UI.Theme = strings.TrimSpace(v)
	}
	return nil
}

// Settings converts the widget section into controller settings
func (w WidgetConfig) Settings() dropdown.Settings {
	return dropdown.Settings{
		Mode:              w.Mode,
		Searchable:        w.Searchable,
		Placeholder:       w.Placeholder,
		SearchPlaceholder: w.SearchPlaceholder,
		EmptyText:         w.EmptyText,
		ItemExtent:        w.ItemExtent,
		Capacity:          w.Capacity,
	}
}

// Viewport returns the widget geometry
func (w WidgetConfig) Viewport() dropdown.Viewport {
	return dropdown.Viewport{ItemExtent: w.ItemExtent, Capacity: w.Capacity}
}

// Addr returns the listen address of the websocket host
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
