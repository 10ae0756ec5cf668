package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alantheprice/dropdown/pkg/dropdown"
	"github.com/alantheprice/dropdown/pkg/ui/theme"
)

var (
	windowFlags    widgetFlags
	windowQuery    string
	windowScroll   float64
	windowScrollTo int
	windowJSON     bool
)

// windowChrome is the number of terminal lines the window output needs
// besides its rows
const windowChrome = 4

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Print the window for a given query and scroll offset",
	Long: `Opens a dropdown, applies --query and --scroll (or --scroll-to), and prints
the rows the viewport would materialize. Without --capacity the window fills the
terminal height.

Examples:
  dropdown window -o items:10000 --scroll 4000
  dropdown window -o items:1000 -s --query "item 99" --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := getLogger(cfg)

		set, err := windowFlags.catalog(cfg)
		if err != nil {
			return err
		}
		settings, err := windowFlags.settings(cmd, cfg)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("capacity") {
			if _, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && h > windowChrome+1 {
				settings.Capacity = h - windowChrome
			}
		}
		initial, err := windowFlags.initialValue(set, settings.Mode)
		if err != nil {
			return err
		}

		ctl := dropdown.New(set, initial, settings)
		defer ctl.Unmount()
		ctl.ToggleOpen()

		if windowQuery != "" && !ctl.SetQuery(windowQuery) {
			return fmt.Errorf("--query needs a searchable widget (--searchable): %w", dropdown.ErrInvalidTransition)
		}
		if cmd.Flags().Changed("scroll") {
			ctl.SetScroll(windowScroll)
		}
		if cmd.Flags().Changed("scroll-to") {
			if windowScrollTo < 0 || windowScrollTo >= len(ctl.Filtered()) {
				return fmt.Errorf("--scroll-to %d is outside the %d matching rows", windowScrollTo, len(ctl.Filtered()))
			}
			ctl.ScrollToIndex(windowScrollTo)
		}

		d := ctl.Descriptor()
		logger.Logf("Window: query %q scroll %.1f rows [%d, %d) of %d", d.Query, ctl.State().Scroll, d.Window.Start, d.Window.End, d.Window.Len)

		if windowJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(d)
		}
		printWindow(d, set.Len(), loadTheme(cfg))
		return nil
	},
}

func printWindow(d dropdown.Descriptor, total int, tm *theme.ThemeManager) {
	label := tm.Sprint("header", d.DisplayLabel)
	if d.Selection.Empty() {
		label = tm.Sprint("placeholder", d.DisplayLabel)
	}
	fmt.Println(label)

	summary := fmt.Sprintf("rows %d-%d of %d matching (%d options), track %.0f, menu %.0f",
		d.Window.Start, d.Window.End, d.Window.Len, total, d.TotalExtent, d.MenuExtent)
	if d.Query != "" {
		summary += fmt.Sprintf(", query %q", d.Query)
	}
	fmt.Println(tm.Sprint("muted", summary))

	if d.SelectAllLabel != "" {
		fmt.Println(tm.Sprint("cursor", "  "+d.SelectAllLabel))
	}
	if d.Empty {
		fmt.Println(tm.Sprint("muted", "  "+d.EmptyText))
		return
	}
	for _, row := range d.Window.Rows {
		line := fmt.Sprintf("%7d  %s", row.Index, row.Option.Label)
		if row.Selected {
			fmt.Println(tm.Sprint("selected", line+" ✓"))
			continue
		}
		fmt.Println(line)
	}
}

func init() {
	windowFlags.register(windowCmd)
	windowCmd.Flags().StringVarP(&windowQuery, "query", "q", "", "Search text")
	windowCmd.Flags().Float64Var(&windowScroll, "scroll", 0, "Scroll offset in item-extent units")
	windowCmd.Flags().IntVar(&windowScrollTo, "scroll-to", 0, "Scroll the least amount that shows this matching row")
	windowCmd.Flags().BoolVar(&windowJSON, "json", false, "Print the render descriptor as JSON")
	rootCmd.AddCommand(windowCmd)
}
