package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configPathCmd = &cobra.Command{
	Use:   "config:path",
	Short: "Print the active config file path",
	Long: `Print the path of the config file in use for this invocation.

Examples:
  tresse config:path
  cat $(tresse config:path)`,
	Args: cobra.NoArgs,
	RunE: runConfigPath,
}

func init() {
	rootCmd.AddCommand(configPathCmd)
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	path := viper.ConfigFileUsed()
	if path == "" {
		return fmt.Errorf("no config file in use")
	}
	fmt.Println(path)
	return nil
}
