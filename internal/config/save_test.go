package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveDBPath_CreatesNewFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	err := SaveDBPath(configPath, "/data/conversations.db")
	require.NoError(t, err)

	// Verify file exists
	_, err = os.Stat(configPath)
	require.NoError(t, err)

	// Verify content
	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "db_path: /data/conversations.db")
}

func TestSaveDBPath_PreservesOtherConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	// Create initial config with various settings and a comment
	initial := `# keep this comment
auto_refresh: true
refresh_debounce: 250ms
log:
  debug: true
`
	err := os.WriteFile(configPath, []byte(initial), 0o644)
	require.NoError(t, err)

	err = SaveDBPath(configPath, "/srv/tresse/conversations.db")
	require.NoError(t, err)

	// Verify other settings and comments preserved
	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "# keep this comment")
	assert.Contains(t, content, "auto_refresh: true")
	assert.Contains(t, content, "refresh_debounce: 250ms")
	assert.Contains(t, content, "debug: true")
	// And the new path is there
	assert.Contains(t, content, "db_path: /srv/tresse/conversations.db")
}

func TestSaveDBPath_ReplacesExistingKey(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	initial := `db_path: /old/conversations.db
auto_refresh: true
`
	err := os.WriteFile(configPath, []byte(initial), 0o644)
	require.NoError(t, err)

	err = SaveDBPath(configPath, "/new/conversations.db")
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "db_path: /new/conversations.db")
	assert.NotContains(t, content, "/old/conversations.db")
}

func TestSaveDBPath_Roundtrip(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	err := SaveDBPath(configPath, "/data/conversations.db")
	require.NoError(t, err)

	// Load back using Viper
	v := viper.New()
	v.SetConfigFile(configPath)
	err = v.ReadInConfig()
	require.NoError(t, err)

	assert.Equal(t, "/data/conversations.db", v.GetString("db_path"))
}

func TestSaveDBPath_PreservesDefaultTemplate(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	// Start from the generated default config
	require.NoError(t, WriteDefaultConfig(configPath))

	err := SaveDBPath(configPath, "/data/conversations.db")
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	content := string(data)

	// Template comments survive the edit
	assert.Contains(t, content, "# Tresse Configuration")
	assert.Contains(t, content, "# Distributed tracing configuration")
	assert.Contains(t, content, "db_path: /data/conversations.db")
}

func TestSaveDBPath_CreatesParentDirectory(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, ".tresse", "config.yaml")

	err := SaveDBPath(configPath, "/data/conversations.db")
	require.NoError(t, err)

	_, err = os.Stat(configPath)
	require.NoError(t, err)
}
