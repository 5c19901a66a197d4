// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
)

// DBFileName is the conversations database file name inside a data directory.
const DBFileName = "conversations.db"

// DataDirName is the per-project data directory.
const DataDirName = ".tresse"

// ResolveDBPath resolves the conversations database path from user input.
// It normalizes the input, accepting a project directory, a data directory,
// or the database file itself.
//
// Input normalization:
//   - "/path/to/project" -> "/path/to/project/.tresse/conversations.db"
//   - "/path/to/data" (containing conversations.db) -> "/path/to/data/conversations.db"
//   - "/path/to/anything.db" -> "/path/to/anything.db"
//   - "" -> ".tresse/conversations.db"
//
// Returns the resolved database file path (ready to hand to the store).
func ResolveDBPath(path string) string {
	if path == "" {
		path = "."
	}
	path = filepath.Clean(path)

	// An explicit database file is used directly
	if filepath.Ext(path) == ".db" {
		return path
	}

	// If the path contains conversations.db directly, use it as the data directory.
	// This supports TRESSE_DB pointing straight at a data directory.
	dbPath := filepath.Join(path, DBFileName)
	if _, err := os.Stat(dbPath); err == nil {
		return dbPath
	}

	// Otherwise, treat the path as a project directory
	return filepath.Join(path, DataDirName, DBFileName)
}
