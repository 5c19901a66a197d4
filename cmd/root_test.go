package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/tresse/internal/config"
	"github.com/zjrosen/tresse/internal/infrastructure/sqlite"
	"github.com/zjrosen/tresse/internal/paths"
)

// TestActiveDBPath_FlagTakesPriority verifies that a db path merged into the
// config (via the -d flag binding) wins over the TRESSE_DB environment
// variable.
func TestActiveDBPath_FlagTakesPriority(t *testing.T) {
	t.Cleanup(func() { cfg = config.Config{} })
	cfg.DBPath = "/data/project"
	t.Setenv("TRESSE_DB", "/env/project")

	got := activeDBPath()
	require.Equal(t, filepath.Join("/data/project", paths.DataDirName, paths.DBFileName), got)
}

// TestActiveDBPath_EnvFallback verifies that TRESSE_DB is used when neither
// the flag nor the config sets a path.
func TestActiveDBPath_EnvFallback(t *testing.T) {
	t.Cleanup(func() { cfg = config.Config{} })
	cfg.DBPath = ""
	t.Setenv("TRESSE_DB", "/env/project")

	got := activeDBPath()
	require.Equal(t, filepath.Join("/env/project", paths.DataDirName, paths.DBFileName), got)
}

// TestActiveDBPath_DefaultsToWorkingDirectory verifies the final fallback:
// the data directory under the current working directory.
func TestActiveDBPath_DefaultsToWorkingDirectory(t *testing.T) {
	t.Cleanup(func() { cfg = config.Config{} })
	cfg.DBPath = ""
	t.Setenv("TRESSE_DB", "")

	got := activeDBPath()
	require.Equal(t, filepath.Join(paths.DataDirName, paths.DBFileName), got)
}

// TestNoDatabase_StoreCreatesIt verifies that opening a store in a fresh
// directory creates the database, so first-run import works without setup.
func TestNoDatabase_StoreCreatesIt(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, paths.DBFileName)

	db, err := sqlite.NewDB(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = os.Stat(dbPath)
	require.NoError(t, err, "expected database file to be created")
}

// ============================================================================
// Config Startup Integration Tests
// ============================================================================

// TestStartup_DefaultConfigValid verifies that the defaults every invocation
// starts from pass validation.
func TestStartup_DefaultConfigValid(t *testing.T) {
	require.NoError(t, config.Validate(config.Defaults()))
}

// TestStartup_InvalidConfigRejected verifies that bad settings fail
// validation with a message naming the offending key.
func TestStartup_InvalidConfigRejected(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *config.Config)
		errContains string
	}{
		{
			name:        "unknown tracing exporter",
			mutate:      func(c *config.Config) { c.Tracing.Exporter = "jaeger" },
			errContains: "tracing.exporter",
		},
		{
			name:        "sample rate out of range",
			mutate:      func(c *config.Config) { c.Tracing.SampleRate = 2.0 },
			errContains: "tracing.sample_rate",
		},
		{
			name:        "negative debounce",
			mutate:      func(c *config.Config) { c.RefreshDebounce = -1 },
			errContains: "refresh_debounce",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := config.Defaults()
			tt.mutate(&c)
			err := config.Validate(c)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.errContains)
		})
	}
}
