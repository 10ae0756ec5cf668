package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/alantheprice/dropdown/pkg/replay"
)

var (
	replayStrict  bool
	replayNoColor bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Replay a scripted event sequence and show frame diffs",
	Long: `Replays the steps of a YAML script against a dropdown, draws a text frame after
each step and prints the first frame followed by a diff per step.

Script format:
  name: pick a fruit
  options: fruits          # or items:N, or a list of {key, label}
  mode: single             # or multiple
  searchable: true
  capacity: 5
  value: [apple]           # initial selection
  strict: false            # fail on steps that change nothing
  steps:
    - op: toggle_open
    - op: query
      arg: an
    - op: key              # enter space esc up down pgup pgdown home end backspace ctrl+a
      arg: down
    - op: select
      arg: banana

Other ops: outside, scroll, scroll_by, scroll_to, select_all, disable, enable,
type (text typed into the widget).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := getLogger(cfg)

		script, err := replay.LoadFile(args[0])
		if err != nil {
			return err
		}
		if replayStrict {
			script.Strict = true
		}
		if replayNoColor {
			color.NoColor = true
		}

		res, runErr := replay.Run(cmd.Context(), script, logger)
		if res != nil {
			if err := replay.Write(os.Stdout, res, loadTheme(cfg)); err != nil {
				return err
			}
		}
		if runErr != nil {
			logger.LogError(runErr)
		}
		return runErr
	},
}

func init() {
	replayCmd.Flags().BoolVar(&replayStrict, "strict", false, "Fail on the first step that changes nothing")
	replayCmd.Flags().BoolVar(&replayNoColor, "no-color", false, "Disable coloured diff output")
	rootCmd.AddCommand(replayCmd)
}
