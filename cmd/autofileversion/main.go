package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ngoyal/autofileversion/internal/config"
	"github.com/ngoyal/autofileversion/internal/fs"
	"github.com/ngoyal/autofileversion/internal/logging"
	"github.com/ngoyal/autofileversion/internal/retention"
	"github.com/ngoyal/autofileversion/internal/versioner"
	"github.com/ngoyal/autofileversion/internal/watcher"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatalf("%v", err)
	}
	log.Println("exit complete")
}

func run(configPath string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("shutting down...")
		cancel()
	}()

	// Load config, writing a default one on first run
	cfg, created, err := config.LoadOrCreate(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Logger
	logg := logging.StdLogger{Min: logging.ParseLevel(cfg.Logging.Level)}
	if created {
		logg.Info("created default configuration at %s", configPath)
	}

	filesystem := fs.New()

	// Versioning engine (archive + promote)
	engine := versioner.New(filesystem, logg)

	// Coordinator (watches folders and dispatches matched events)
	coord := watcher.New(cfg, logg, filesystem, engine)

	// Missing watch folders are created up front; failure here is fatal.
	if err := coord.EnsureFolders(); err != nil {
		return fmt.Errorf("preparing watch folders: %w", err)
	}

	// Optional pruning of old versioned files
	if cfg.Retention.Enabled {
		ret := retention.New(filesystem, logg, cfg.Retention.KeepCount)
		cr, err := ret.Schedule(cfg.Retention.Schedule, cfg.Folders)
		if err != nil {
			return fmt.Errorf("scheduling retention: %w", err)
		}
		defer cr.Stop()
	}

	// Start watch loop; its error comes back here so the deferred cleanup
	// above runs on every exit path.
	errCh := make(chan error, 1)
	go func() {
		errCh <- coord.Start(ctx)
	}()

	select {
	case err := <-errCh:
		cancel()
		if err != nil {
			return fmt.Errorf("watcher: %w", err)
		}
	case <-ctx.Done():
	}

	// Let an in-flight promotion finish before exiting.
	coord.Wait()
	return nil
}
