package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/tresse/internal/config"
	"github.com/zjrosen/tresse/internal/log"
)

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	jsonOut   bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "tresse",
	Short: "A conversation hierarchy index over a local store",
	Long: `Tresse indexes a flat snapshot of conversation records into a queryable
hierarchy: parent/child threads, cycle-safe aggregates (effective
activity, participant sets, descendant counts), and deterministic root
ordering.

Records live in a local SQLite database. Feed it with import, inspect it
with roots, tree, show, agents, and stats, and keep the index fresh with
watch.`,
	Version: version,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .tresse/config.yaml, then ~/.config/tresse/config.yaml)")
	rootCmd.PersistentFlags().StringP("db", "d", "",
		"path to the conversations database or its project directory")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false,
		"output JSON instead of text")

	// Bind flags to viper
	_ = viper.BindPFlag("db_path", rootCmd.PersistentFlags().Lookup("db"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("auto_refresh", defaults.AutoRefresh)
	viper.SetDefault("refresh_debounce", defaults.RefreshDebounce)
	viper.SetDefault("cache.disabled", defaults.Cache.Disabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .tresse/config.yaml (current directory)
		// 2. ~/.config/tresse/config.yaml (user config)
		if _, err := os.Stat(".tresse/config.yaml"); err == nil {
			viper.SetConfigFile(".tresse/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "tresse"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .tresse/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := filepath.Join(".tresse", "config.yaml")
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// initLogging sets up file logging when debug mode is enabled via the
// --debug flag, TRESSE_DEBUG, or log.debug in the config. Returns a
// cleanup that flushes and closes the log file.
func initLogging() (func(), error) {
	debug := debugFlag || os.Getenv("TRESSE_DEBUG") != "" || cfg.Log.Debug
	if !debug {
		return func() {}, nil
	}

	logPath := os.Getenv("TRESSE_LOG")
	if logPath == "" {
		logPath = cfg.Log.Path
	}
	if logPath == "" {
		logPath = "debug.log"
	}

	cleanup, err := log.Init(logPath)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}

	log.Info(log.CatConfig, "tresse starting", "version", version, "logPath", logPath)
	return cleanup, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
