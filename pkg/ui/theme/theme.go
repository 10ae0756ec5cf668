package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// Colors names the colour of each dropdown element
type Colors struct {
	Header      string `json:"header"`
	Placeholder string `json:"placeholder"`
	Cursor      string `json:"cursor"`
	Selected    string `json:"selected"`
	Muted       string `json:"muted"`
	Inserted    string `json:"inserted"`
	Deleted     string `json:"deleted"`
	Error       string `json:"error"`
}

// Theme represents a color theme configuration
type Theme struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Colors      Colors `json:"colors"`
}

// ThemeManager manages color themes for the application
type ThemeManager struct {
	CurrentTheme *Theme
	ThemesDir    string
}

// NewThemeManager creates a new theme manager
func NewThemeManager(themesDir string) *ThemeManager {
	return &ThemeManager{
		ThemesDir: themesDir,
	}
}

// LoadDefaultTheme loads the default theme
func (tm *ThemeManager) LoadDefaultTheme() *Theme {
	return &Theme{
		Name:        "default",
		Description: "Default theme",
		Colors: Colors{
			Header:      "hiWhite",
			Placeholder: "hiBlack",
			Cursor:      "magenta",
			Selected:    "green",
			Muted:       "hiBlack",
			Inserted:    "green",
			Deleted:     "red",
			Error:       "red",
		},
	}
}

// LoadThemeFromFile loads a theme from a JSON file. Colours the file leaves
// empty keep their default.
func (tm *ThemeManager) LoadThemeFromFile(themePath string) (*Theme, error) {
	data, err := os.ReadFile(themePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	theme := tm.LoadDefaultTheme()
	if err := json.Unmarshal(data, theme); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	return theme, nil
}

// LoadTheme loads a theme by name and makes it current. Unknown names fall
// back to the default theme.
func (tm *ThemeManager) LoadTheme(themeName string) (*Theme, error) {
	tm.CurrentTheme = tm.LoadDefaultTheme()
	if tm.ThemesDir == "" || themeName == "" || themeName == "default" {
		return tm.CurrentTheme, nil
	}

	themePath := filepath.Join(tm.ThemesDir, themeName+".json")
	if _, err := os.Stat(themePath); err != nil {
		return tm.CurrentTheme, nil
	}
	theme, err := tm.LoadThemeFromFile(themePath)
	if err != nil {
		return tm.CurrentTheme, err
	}
	tm.CurrentTheme = theme
	return theme, nil
}

// GetColor returns a color based on the theme
func (tm *ThemeManager) GetColor(element string) *color.Color {
	if tm.CurrentTheme == nil {
		tm.CurrentTheme = tm.LoadDefaultTheme()
	}

	c := tm.CurrentTheme.Colors
	var colorValue string
	switch element {
	case "header":
		colorValue = c.Header
	case "placeholder":
		colorValue = c.Placeholder
	case "cursor":
		colorValue = c.Cursor
	case "selected":
		colorValue = c.Selected
	case "muted":
		colorValue = c.Muted
	case "inserted":
		colorValue = c.Inserted
	case "deleted":
		colorValue = c.Deleted
	case "error":
		colorValue = c.Error
	default:
		colorValue = "white"
	}

	return getColorFromName(colorValue)
}

// Sprint formats text in the colour of element
func (tm *ThemeManager) Sprint(element, text string) string {
	return tm.GetColor(element).Sprint(text)
}

// getColorFromName converts a color name to a color.Color instance
func getColorFromName(colorName string) *color.Color {
	switch colorName {
	case "black":
		return color.New(color.FgBlack)
	case "red":
		return color.New(color.FgRed)
	case "green":
		return color.New(color.FgGreen)
	case "yellow":
		return color.New(color.FgYellow)
	case "blue":
		return color.New(color.FgBlue)
	case "magenta":
		return color.New(color.FgMagenta)
	case "cyan":
		return color.New(color.FgCyan)
	case "white":
		return color.New(color.FgWhite)
	case "hiBlack":
		return color.New(color.FgHiBlack)
	case "hiRed":
		return color.New(color.FgHiRed)
	case "hiGreen":
		return color.New(color.FgHiGreen)
	case "hiYellow":
		return color.New(color.FgHiYellow)
	case "hiBlue":
		return color.New(color.FgHiBlue)
	case "hiMagenta":
		return color.New(color.FgHiMagenta)
	case "hiCyan":
		return color.New(color.FgHiCyan)
	case "hiWhite":
		return color.New(color.FgHiWhite)
	default:
		return color.New(color.FgWhite)
	}
}
