package cmd

import (
	"fmt"
	"os"

	"github.com/zjrosen/tresse/internal/cachemanager"
	"github.com/zjrosen/tresse/internal/config"
	"github.com/zjrosen/tresse/internal/hierarchy"
	"github.com/zjrosen/tresse/internal/infrastructure/sqlite"
	"github.com/zjrosen/tresse/internal/paths"
	"github.com/zjrosen/tresse/internal/profiles"
	"github.com/zjrosen/tresse/internal/tracing"
)

// activeDBPath resolves the database path for this invocation.
//
// Resolution priority:
// 1. -d flag (already in cfg.DBPath via viper binding)
// 2. TRESSE_DB environment variable
// 3. db_path config file setting (already in cfg.DBPath)
// 4. Current working directory
func activeDBPath() string {
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = os.Getenv("TRESSE_DB")
	}
	return paths.ResolveDBPath(dbPath)
}

// openStore opens the conversations database, creating it if needed.
func openStore() (*sqlite.DB, error) {
	path := activeDBPath()
	db, err := sqlite.NewDB(path)
	if err != nil {
		return nil, fmt.Errorf("opening store at %s: %w", path, err)
	}
	return db, nil
}

// loadIndex opens the store, loads the snapshot, and builds the index.
// Read commands build once, query, and exit; the caller closes the db.
func loadIndex() (*hierarchy.Index, *sqlite.DB, error) {
	db, err := openStore()
	if err != nil {
		return nil, nil, err
	}

	records, err := db.ConversationRepository().ListAll()
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("loading snapshot: %w", err)
	}

	return hierarchy.Build(records), db, nil
}

// newResolver builds a profile name resolver over the store's profiles.
func newResolver(db *sqlite.DB) *profiles.Resolver {
	manager := cachemanager.NewInMemoryCacheManager[string, string](
		"profile-names", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
	return profiles.NewResolver(db.ProfileRepository(), manager, cfg.Cache.Disabled)
}

// newTracingProvider creates a tracing provider from user settings.
// Returns nil when tracing is disabled; callers must handle that.
func newTracingProvider() (*tracing.Provider, error) {
	tracingCfg := cfg.Tracing
	if !tracingCfg.Enabled {
		return nil, nil
	}

	// Apply default file path if not specified
	filePath := tracingCfg.FilePath
	if filePath == "" && tracingCfg.Exporter == "file" {
		filePath = config.DefaultTracesFilePath()
	}

	return tracing.NewProvider(tracing.Config{
		Enabled:      tracingCfg.Enabled,
		Exporter:     tracingCfg.Exporter,
		FilePath:     filePath,
		OTLPEndpoint: tracingCfg.OTLPEndpoint,
		SampleRate:   tracingCfg.SampleRate,
		ServiceName:  "tresse",
	})
}
