package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alantheprice/dropdown/pkg/dropdown"
	"github.com/alantheprice/dropdown/pkg/tui"
)

var (
	demoFlags     widgetFlags
	demoRaw       bool
	demoAltScreen bool
	demoTitle     string
	demoJSON      bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Interactive dropdown in the terminal",
	Long: `Runs one dropdown in the terminal and prints the final selection on exit.

Enter or space opens the menu, arrows and page keys move the cursor, typing
filters (with --searchable), enter selects, ctrl+a selects or clears everything
in multiple mode, esc closes the menu and q or ctrl+c quits.

--raw skips bubbletea and drives the widget straight from raw terminal input.

Examples:
  dropdown demo
  dropdown demo -o items:100000 -s
  dropdown demo -o catalog.yaml -m multiple --value apple --value fig`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := getLogger(cfg)

		set, err := demoFlags.catalog(cfg)
		if err != nil {
			return err
		}
		settings, err := demoFlags.settings(cmd, cfg)
		if err != nil {
			return err
		}
		// Terminal hosts scroll in whole lines
		settings.ItemExtent = 1
		initial, err := demoFlags.initialValue(set, settings.Mode)
		if err != nil {
			return err
		}
		logger.Logf("Demo started: %d options, mode %s, raw %v", set.Len(), settings.Mode, demoRaw)

		var sel dropdown.Selection
		if demoRaw {
			sel, err = runRaw(cmd.Context(), os.Stdin, os.Stdout, set, initial, settings, logger)
		} else {
			model := tui.NewModel(demoTitle, set, initial, settings, logger)
			sel, err = tui.Run(cmd.Context(), model, tui.Options{AltScreen: demoAltScreen, Mouse: cfg.UI.Mouse})
		}
		if err != nil {
			logger.LogError(err)
			return err
		}
		return printSelection(sel, demoJSON)
	},
}

func printSelection(sel dropdown.Selection, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sel)
	}
	if sel.Empty() {
		fmt.Println("Nothing selected")
		return nil
	}
	for _, opt := range sel.Options() {
		fmt.Printf("%s\t%s\n", opt.Key, opt.Label)
	}
	return nil
}

func init() {
	demoFlags.register(demoCmd)
	demoCmd.Flags().BoolVar(&demoRaw, "raw", false, "Use the raw terminal host instead of bubbletea")
	demoCmd.Flags().BoolVar(&demoAltScreen, "alt-screen", false, "Run in the alternate screen buffer")
	demoCmd.Flags().StringVarP(&demoTitle, "title", "t", "", "Title shown above the dropdown")
	demoCmd.Flags().BoolVar(&demoJSON, "json", false, "Print the final selection as JSON")
	rootCmd.AddCommand(demoCmd)
}
