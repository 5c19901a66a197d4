package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/tresse/internal/presentation"
)

var agentsDelegationOnly bool

var agentsCmd = &cobra.Command{
	Use:   "agents <id>",
	Short: "List the agents participating in a conversation subtree",
	Long: `List the agents participating in a conversation and its descendants,
de-duplicated by pubkey and sorted by name. Display names are resolved
from stored profiles where available.

With --delegation, list only agents the conversation delegated to
(descendants' authors, excluding the conversation's own pubkey).

Examples:
  tresse agents conv-a
  tresse agents conv-a --delegation
  tresse agents conv-a --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAgents,
}

func init() {
	agentsCmd.Flags().BoolVar(&agentsDelegationOnly, "delegation", false, "only agents the conversation delegated to")
	rootCmd.AddCommand(agentsCmd)
}

func runAgents(cmd *cobra.Command, args []string) error {
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

	if _, ok := idx.Get(args[0]); !ok {
		return fmt.Errorf("conversation %q not found", args[0])
	}

	agg := idx.Data(args[0])
	infos := agg.ParticipatingAgentInfos
	if agentsDelegationOnly {
		infos = agg.DelegationAgentInfos
	}

	dtos := presentation.FromAgentInfos(infos)

	// Fill in profile display names where the store knows the pubkey
	pubkeys := make([]string, len(infos))
	for i, info := range infos {
		pubkeys[i] = info.Pubkey
	}
	resolver := newResolver(db)
	names, err := resolver.ResolveAll(cmd.Context(), pubkeys)
	if err != nil {
		return fmt.Errorf("resolving profiles: %w", err)
	}
	for i := range dtos {
		dtos[i].DisplayName = names[dtos[i].Pubkey]
	}

	formatter := presentation.NewFormatter(os.Stdout)
	if jsonOut {
		return formatter.FormatJSON(dtos)
	}
	return formatter.FormatAgents(dtos)
}
