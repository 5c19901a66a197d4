package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveDBPath_Empty(t *testing.T) {
	path := ResolveDBPath("")
	require.Equal(t, filepath.Join(".tresse", "conversations.db"), path)
}

func TestResolveDBPath_ProjectDirectory(t *testing.T) {
	dir := t.TempDir()
	path := ResolveDBPath(dir)
	require.Equal(t, filepath.Join(dir, ".tresse", "conversations.db"), path)
}

func TestResolveDBPath_ExplicitFile(t *testing.T) {
	path := ResolveDBPath("/data/custom.db")
	require.Equal(t, "/data/custom.db", path)
}

func TestResolveDBPath_DataDirectory(t *testing.T) {
	// A directory holding conversations.db directly is used as-is
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "conversations.db")
	require.NoError(t, os.WriteFile(dbPath, []byte{}, 0o600))

	path := ResolveDBPath(dir)
	require.Equal(t, dbPath, path)
}

func TestResolveDBPath_CleansInput(t *testing.T) {
	dir := t.TempDir()
	path := ResolveDBPath(dir + string(filepath.Separator))
	require.Equal(t, filepath.Join(dir, ".tresse", "conversations.db"), path)
}
