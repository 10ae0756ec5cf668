package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alantheprice/dropdown/pkg/utils"
)

var logLines int

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Print the dropdown log",
	Long: `Displays the last lines of the log written by the dropdown hosts
(.dropdown/dropdown.log). Start a host with --debug to include ignored events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return displayLog(logLines)
	},
}

func init() {
	logCmd.Flags().IntVarP(&logLines, "lines", "n", 100, "Number of lines to show")
	rootCmd.AddCommand(logCmd)
}

// displayLog prints the last n lines of the log file
func displayLog(n int) error {
	file, err := os.Open(utils.LogFile)
	if os.IsNotExist(err) {
		fmt.Printf("Log file not found at %s. No log entries yet.\n", utils.LogFile)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", utils.LogFile, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if n > 0 && len(lines) > n {
			lines = lines[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read log file: %w", err)
	}

	if len(lines) == 0 {
		fmt.Println("Log file is empty.")
		return nil
	}

	fmt.Printf("Last %d lines of %s:\n", len(lines), utils.LogFile)
	fmt.Println(strings.Repeat("=", 80))
	for _, line := range lines {
		fmt.Println(line)
	}
	fmt.Println(strings.Repeat("=", 80))
	return nil
}
