package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alantheprice/dropdown/pkg/catalog"
	"github.com/alantheprice/dropdown/pkg/config"
	"github.com/alantheprice/dropdown/pkg/dropdown"
	"github.com/alantheprice/dropdown/pkg/ui/theme"
	"github.com/alantheprice/dropdown/pkg/utils"
)

// defaultCatalog is used when neither --options nor the config name one
const defaultCatalog = "fruits"

// widgetFlags are the widget props shared by the host commands. Flags the
// user did not set leave the config value alone.
type widgetFlags struct {
	options     string
	mode        string
	searchable  bool
	capacity    int
	itemExtent  float64
	placeholder string
	value       []string
}

func (f *widgetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.options, "options", "o", "", `Option catalog: "fruits", "items:N" or a YAML/JSON file`)
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "", "Selection mode: single or multiple")
	cmd.Flags().BoolVarP(&f.searchable, "searchable", "s", false, "Show the search input")
	cmd.Flags().IntVarP(&f.capacity, "capacity", "c", 0, "Rows visible at once")
	cmd.Flags().Float64Var(&f.itemExtent, "item-extent", 0, "Height of one row in the host's units")
	cmd.Flags().StringVar(&f.placeholder, "placeholder", "", "Header text while nothing is selected")
	cmd.Flags().StringSliceVar(&f.value, "value", nil, "Initially selected option keys")
}

// settings merges the flags over the config's widget section
func (f *widgetFlags) settings(cmd *cobra.Command, cfg *config.Config) (dropdown.Settings, error) {
	w := cfg.Widget
	flags := cmd.Flags()
	if flags.Changed("mode") {
		mode, err := dropdown.ParseMode(f.mode)
		if err != nil {
			return dropdown.Settings{}, err
		}
		w.Mode = mode
	}
	if flags.Changed("searchable") {
		w.Searchable = f.searchable
	}
	if flags.Changed("capacity") {
		w.Capacity = f.capacity
	}
	if flags.Changed("item-extent") {
		w.ItemExtent = f.itemExtent
	}
	if flags.Changed("placeholder") {
		w.Placeholder = f.placeholder
	}
	if err := w.Validate(); err != nil {
		return dropdown.Settings{}, err
	}
	return w.Settings(), nil
}

// catalog resolves --options, then the configured catalog, then the fruits
func (f *widgetFlags) catalog(cfg *config.Config) (*dropdown.OptionSet, error) {
	name := f.options
	if name == "" {
		name = cfg.Catalog
	}
	if name == "" {
		name = defaultCatalog
	}
	return catalog.Resolve(name)
}

// initialValue looks up --value keys in set. Keys that parse as integers
// match integer keys first.
func (f *widgetFlags) initialValue(set *dropdown.OptionSet, mode dropdown.Mode) (dropdown.Selection, error) {
	var opts []dropdown.Option
	for _, raw := range f.value {
		opt, ok := lookupKey(set, raw)
		if !ok {
			return dropdown.Selection{}, fmt.Errorf("--value %s: %w", raw, dropdown.ErrUnknownKey)
		}
		opts = append(opts, opt)
	}
	if mode == dropdown.Multiple {
		return dropdown.MultipleOf(opts...), nil
	}
	if len(opts) > 0 {
		return dropdown.SingleOf(opts[len(opts)-1]), nil
	}
	return dropdown.EmptySelection(mode), nil
}

func lookupKey(set *dropdown.OptionSet, raw string) (dropdown.Option, bool) {
	var key dropdown.Key
	if err := key.UnmarshalJSON([]byte(raw)); err == nil && key.IsNumeric() {
		if opt, ok := set.Lookup(key); ok {
			return opt, true
		}
	}
	return set.Lookup(dropdown.StringKey(raw))
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load()
}

func getLogger(cfg *config.Config) *utils.Logger {
	if cfg.UI.JsonLogs && os.Getenv("DROPDOWN_JSON_LOGS") == "" {
		os.Setenv("DROPDOWN_JSON_LOGS", "1")
	}
	return utils.GetLogger(debugLog || cfg.UI.Debug)
}

// loadTheme loads the configured theme from the themes directory next to
// the config file. A broken theme file falls back to the default with a
// warning.
func loadTheme(cfg *config.Config) *theme.ThemeManager {
	dir := config.DirName
	if p := cfg.Path(); p != "" {
		dir = filepath.Dir(p)
	}
	tm := theme.NewThemeManager(cfg.UI.ThemesDir(dir))
	if _, err := tm.LoadTheme(cfg.UI.Theme); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return tm
}
