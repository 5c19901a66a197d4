package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/tresse/internal/ingest"
	"github.com/zjrosen/tresse/internal/log"
	"github.com/zjrosen/tresse/internal/profiles"
)

var importProfilesPath string

var importCmd = &cobra.Command{
	Use:   "import <records.jsonl>",
	Short: "Load conversation records into the store",
	Long: `Load conversation records from a JSONL file into the store.

Each line is one JSON object with the fields id, parent_id (optional),
author, author_pubkey, and last_activity (seconds since epoch). Blank
lines are skipped; malformed lines abort the import with their line
number. Records are written in a single transaction, so a failed import
leaves the store untouched.

Use --profiles to load display-name profiles (pubkey, display_name)
alongside the records.

Examples:
  tresse import conversations.jsonl
  tresse import conversations.jsonl --profiles profiles.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importProfilesPath, "profiles", "", "JSONL file with display-name profiles")
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	cleanup, err := initLogging()
	if err != nil {
		return err
	}
	defer cleanup()

	records, err := ingest.ReadConversationsFile(args[0])
	if err != nil {
		return err
	}

	profileRecords, err := readImportProfiles()
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.ConversationRepository().SaveAll(records); err != nil {
		return fmt.Errorf("saving records: %w", err)
	}
	for _, p := range profileRecords {
		if err := db.ProfileRepository().Save(p); err != nil {
			return fmt.Errorf("saving profile %s: %w", p.Pubkey, err)
		}
	}

	log.Info(log.CatIngest, "import complete", "records", len(records), "profiles", len(profileRecords))

	fmt.Printf("Imported %d conversations", len(records))
	if len(profileRecords) > 0 {
		fmt.Printf(" and %d profiles", len(profileRecords))
	}
	fmt.Println()
	return nil
}

func readImportProfiles() ([]profiles.Profile, error) {
	if importProfilesPath == "" {
		return nil, nil
	}
	return ingest.ReadProfilesFile(importProfilesPath)
}
