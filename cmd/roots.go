package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/tresse/internal/presentation"
)

var rootsCmd = &cobra.Command{
	Use:   "roots",
	Short: "List root conversations by effective activity",
	Long: `List root conversations ordered by effective last activity (the latest
activity anywhere in each subtree), most recent first.

Roots are conversations without a parent, plus orphans whose declared
parent is missing from the store.

Examples:
  tresse roots
  tresse roots --json | jq '.[].id'`,
	Args: cobra.NoArgs,
	RunE: runRoots,
}

func init() {
	rootCmd.AddCommand(rootsCmd)
}

func runRoots(_ *cobra.Command, _ []string) error {
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

	formatter := presentation.NewFormatter(os.Stdout)
	dtos := presentation.FromRoots(idx)

	if jsonOut {
		return formatter.FormatJSON(dtos)
	}
	return formatter.FormatRoots(dtos)
}
