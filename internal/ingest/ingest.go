// Package ingest loads conversation and profile records from JSONL
// snapshot files.
package ingest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/zjrosen/tresse/internal/hierarchy"
	"github.com/zjrosen/tresse/internal/log"
	"github.com/zjrosen/tresse/internal/profiles"
)

// conversationRecord is the wire format for one conversation line.
type conversationRecord struct {
	ID           string `json:"id"`
	ParentID     string `json:"parent_id,omitempty"`
	Author       string `json:"author"`
	AuthorPubkey string `json:"author_pubkey"`
	LastActivity uint64 `json:"last_activity"`
}

// profileRecord is the wire format for one profile line.
type profileRecord struct {
	Pubkey      string `json:"pubkey"`
	DisplayName string `json:"display_name"`
}

// ReadConversations parses one conversation per line, skipping blank
// lines. Failures carry the 1-based line number.
func ReadConversations(r io.Reader) ([]hierarchy.Conversation, error) {
	var records []hierarchy.Conversation

	err := scanLines(r, func(line int, raw []byte) error {
		var rec conversationRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if rec.ID == "" {
			return fmt.Errorf("line %d: missing id", line)
		}

		records = append(records, hierarchy.Conversation{
			ID:           rec.ID,
			ParentID:     rec.ParentID,
			Author:       rec.Author,
			AuthorPubkey: rec.AuthorPubkey,
			LastActivity: rec.LastActivity,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// ReadConversationsFile reads a conversation snapshot from path.
func ReadConversationsFile(path string) ([]hierarchy.Conversation, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from the CLI user
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	records, err := ReadConversations(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Debug(log.CatIngest, "conversations loaded", "path", path, "count", len(records))
	return records, nil
}

// ReadProfiles parses one profile per line, skipping blank lines.
// Failures carry the 1-based line number.
func ReadProfiles(r io.Reader) ([]profiles.Profile, error) {
	var records []profiles.Profile

	err := scanLines(r, func(line int, raw []byte) error {
		var rec profileRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if rec.Pubkey == "" {
			return fmt.Errorf("line %d: missing pubkey", line)
		}

		records = append(records, profiles.Profile{
			Pubkey:      rec.Pubkey,
			DisplayName: rec.DisplayName,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// ReadProfilesFile reads a profile snapshot from path.
func ReadProfilesFile(path string) ([]profiles.Profile, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from the CLI user
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	records, err := ReadProfiles(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Debug(log.CatIngest, "profiles loaded", "path", path, "count", len(records))
	return records, nil
}

// scanLines feeds each non-blank line to fn with its 1-based line number.
// Blank lines still advance the count so reported numbers match the file.
func scanLines(r io.Reader, fn func(line int, raw []byte) error) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large lines (64KB initial, 1MB max)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		if err := fn(line, raw); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}
