package cmd

import (
	"github.com/spf13/cobra"
)

var (
	configPath string
	debugLog   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dropdown",
	Short: "Windowed dropdown engine with terminal, websocket and replay hosts",
	Long: `Dropdown drives a select widget over option catalogs of any size. Only the
rows inside the scroll window are ever materialized, so a catalog of a hundred
thousand options scrolls as cheaply as one of ten.

Available commands:
  demo     - Interactive dropdown in the terminal
  window   - Print the window for a given query and scroll offset
  serve    - Serve dropdown sessions over WebSocket
  replay   - Replay a scripted event sequence and show frame diffs
  init     - Write a default .dropdown/config.json
  log      - Show the dropdown log file`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is .dropdown/config.json, then ~/.dropdown/config.json)")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Log ignored events to .dropdown/dropdown.log")
}
