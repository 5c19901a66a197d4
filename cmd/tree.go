package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/tresse/internal/hierarchy"
	"github.com/zjrosen/tresse/internal/presentation"
)

var treeCmd = &cobra.Command{
	Use:   "tree [id]",
	Short: "Print the conversation forest as an indented outline",
	Long: `Print the conversation forest as an indented outline: roots in effective
activity order, children most recently active first.

With an id, print only the subtree rooted at that conversation.
Conversations only reachable through a parent cycle do not appear.

Examples:
  tresse tree
  tresse tree conv-a
  tresse tree --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
}

func runTree(_ *cobra.Command, args []string) error {
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

	var entries []hierarchy.OutlineEntry
	if len(args) == 1 {
		if _, ok := idx.Get(args[0]); !ok {
			return fmt.Errorf("conversation %q not found", args[0])
		}
		entries = idx.OutlineFrom(args[0])
	} else {
		entries = idx.Outline()
	}

	formatter := presentation.NewFormatter(os.Stdout)
	dtos := presentation.FromOutline(entries)

	if jsonOut {
		return formatter.FormatJSON(dtos)
	}
	return formatter.FormatOutline(dtos)
}
