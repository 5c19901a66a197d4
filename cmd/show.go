package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/tresse/internal/presentation"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one conversation with its full aggregate",
	Long: `Show one conversation record together with its precomputed aggregate:
effective last activity, activity span, participating agents, descendant
count, and the parent chain up to its root.

Examples:
  tresse show conv-a
  tresse show conv-a --json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
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

	c, ok := idx.Get(args[0])
	if !ok {
		return fmt.Errorf("conversation %q not found", args[0])
	}

	formatter := presentation.NewFormatter(os.Stdout)
	detail := presentation.FromDetail(idx, c)

	if jsonOut {
		return formatter.FormatJSON(detail)
	}
	return formatter.FormatDetail(detail)
}
