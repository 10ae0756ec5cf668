package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alantheprice/dropdown/pkg/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new configuration in the current directory",
	Long:  `Creates a .dropdown/config.json file in the current working directory, allowing for project-specific widget, server and theme settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Initializing new configuration in the current directory...")
		path, err := config.InitConfig()
		if err != nil {
			return fmt.Errorf("initializing configuration: %w", err)
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
