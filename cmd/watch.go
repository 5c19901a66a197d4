package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/tresse/internal/log"
	"github.com/zjrosen/tresse/internal/pubsub"
	"github.com/zjrosen/tresse/internal/refresh"
	"github.com/zjrosen/tresse/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the database and rebuild the index on changes",
	Long: `Watch the conversation database and rebuild the index whenever
records change. Bursts of writes are coalesced, so one rebuild covers
an entire import. Each rebuild is reported on stdout.

Send SIGHUP to force a rebuild. With auto_refresh disabled in the
config, file watching is off and SIGHUP is the only trigger.

Examples:
  tresse watch                      # Watch the resolved database
  tresse watch -d /data/project     # Watch a specific project
  kill -HUP $(pidof tresse)         # Force a rebuild`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(_ *cobra.Command, _ []string) error {
	cleanup, err := initLogging()
	if err != nil {
		return err
	}
	defer cleanup()

	db, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	provider, err := newTracingProvider()
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}

	var tracer trace.Tracer
	if provider != nil {
		tracer = provider.Tracer()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broker := pubsub.NewBroker[refresh.Event]()
	defer broker.Close()

	service := refresh.NewService(db.ConversationRepository(), broker, tracer)

	// File notifications and SIGHUP both funnel into one channel so the
	// service has a single rebuild trigger.
	changes := make(chan struct{}, 1)

	dbPath := activeDBPath()

	if cfg.AutoRefresh {
		watcherCfg := watcher.DefaultConfig(dbPath)
		if cfg.RefreshDebounce > 0 {
			watcherCfg.DebounceDur = cfg.RefreshDebounce
		}

		w, err := watcher.New(watcherCfg)
		if err != nil {
			return fmt.Errorf("creating watcher: %w", err)
		}

		notifications, err := w.Start()
		if err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		defer func() { _ = w.Stop() }()

		go func() {
			for range notifications {
				select {
				case changes <- struct{}{}:
				default:
				}
			}
		}()
	}

	hupCh := make(chan os.Signal, 1)
	signal.Notify(hupCh, syscall.SIGHUP)
	defer signal.Stop(hupCh)
	go func() {
		for range hupCh {
			log.Info(log.CatRefresh, "manual rebuild requested")
			select {
			case changes <- struct{}{}:
			default:
			}
		}
	}()

	// Subscribe before the service runs so the initial rebuild is reported
	listener := pubsub.NewListener(ctx, broker)
	go func() {
		for {
			event, ok := listener.Next()
			if !ok {
				return
			}
			e := event.Payload
			fmt.Printf("%s rebuilt: %d conversations, %d roots (%s)\n",
				e.BuiltAt.Format("15:04:05"),
				e.Conversations, e.Roots,
				e.Duration.Round(time.Millisecond))
		}
	}()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- service.Run(ctx, changes)
	}()

	fmt.Printf("Watching %s\n", dbPath)
	fmt.Println("Press Ctrl+C to stop")

	select {
	case sig := <-sigCh:
		fmt.Printf("\nReceived %s, shutting down...\n", sig)
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("refresh service: %w", err)
		}
	}

	cancel()

	if provider != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			log.ErrorErr(log.CatRefresh, "tracing shutdown failed", err)
		}
	}

	fmt.Println("Stopped")
	return nil
}
