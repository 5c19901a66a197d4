package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/tresse/internal/config"
)

var configSetDBCmd = &cobra.Command{
	Use:   "config:set-db <path>",
	Short: "Persist the database path in the config file",
	Long: `Persist a database path in the config file so every later invocation
uses it without -d. The value may be a database file, a data directory,
or a project directory; it is resolved the same way as the -d flag.

Comments and other settings in the config file are preserved.

Examples:
  tresse config:set-db /data/project
  tresse config:set-db ~/archive/conversations.db`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigSetDB,
}

func init() {
	rootCmd.AddCommand(configSetDBCmd)
}

func runConfigSetDB(_ *cobra.Command, args []string) error {
	target := viper.ConfigFileUsed()
	if target == "" {
		target = filepath.Join(".tresse", "config.yaml")
	}

	if err := config.SaveDBPath(target, args[0]); err != nil {
		return fmt.Errorf("saving db_path: %w", err)
	}

	fmt.Printf("Saved db_path %q to %s\n", args[0], target)
	return nil
}
