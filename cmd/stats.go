package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/tresse/internal/presentation"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show summary statistics for the conversation index",
	Long: `Show summary statistics for the conversation index: total
conversations, root count, orphans promoted to roots, maximum tree
depth, and the number of distinct agents seen.

Examples:
  tresse stats
  tresse stats --json`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cleanup, err := initLogging()
	if err != nil {
		return err
	}
	defer cleanup()

	idx, db, err := loadIndex()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	dto := presentation.FromStats(idx.Stats())

	formatter := presentation.NewFormatter(os.Stdout)
	if jsonOut {
		return formatter.FormatJSON(dto)
	}
	return formatter.FormatStats(dto)
}
