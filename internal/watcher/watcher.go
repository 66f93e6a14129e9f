// Package watcher owns the watched folders, subscribes to filesystem events,
// and feeds them through the debounce → resolve → promote pipeline.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/ngoyal/autofileversion/internal/config"
	"github.com/ngoyal/autofileversion/internal/debounce"
	"github.com/ngoyal/autofileversion/internal/dispatch"
	"github.com/ngoyal/autofileversion/internal/fs"
	"github.com/ngoyal/autofileversion/internal/fsprobe"
	"github.com/ngoyal/autofileversion/internal/logging"
	"github.com/ngoyal/autofileversion/internal/pattern"
	"github.com/ngoyal/autofileversion/internal/resolver"
	"github.com/ngoyal/autofileversion/internal/versioner"
)

// Coordinator watches the configured folders and dispatches qualifying
// events one at a time. Folders are fixed after construction.
type Coordinator struct {
	paths    []string
	mode     string
	interval time.Duration

	fs        fs.FS
	log       logging.Logger
	queue     *dispatch.Queue
	debouncer *debounce.Debouncer
	resolver  *resolver.Resolver
	engine    *versioner.Engine

	wg sync.WaitGroup
}

// New builds a coordinator from configuration, compiling the variant
// patterns for every folder once.
func New(cfg *config.Config, log logging.Logger, filesystem fs.FS, engine *versioner.Engine) *Coordinator {
	if filesystem == nil {
		filesystem = fs.New()
	}

	paths := make([]string, 0, len(cfg.Folders))
	folders := make([]resolver.Folder, 0, len(cfg.Folders))
	for _, fc := range cfg.Folders {
		names := make([]string, 0, len(fc.BaseFilenames))
		for _, b := range fc.BaseFilenames {
			names = append(names, b.Name)
		}
		paths = append(paths, filepath.Clean(fc.Path))
		folders = append(folders, resolver.Folder{
			Path:     fc.Path,
			Variants: pattern.CompileAll(names),
		})
	}

	return &Coordinator{
		paths:     paths,
		mode:      cfg.Watch.Mode,
		interval:  time.Duration(cfg.Watch.PollInterval),
		fs:        filesystem,
		log:       log,
		queue:     dispatch.NewQueue(cfg.Watch.QueueSize),
		debouncer: debounce.New(),
		resolver:  resolver.New(folders),
		engine:    engine,
	}
}

// EnsureFolders creates missing watch directories before watching begins.
// Failure here is fatal to startup.
func (c *Coordinator) EnsureFolders() error {
	for _, dir := range c.paths {
		if c.fs.Exists(dir) {
			continue
		}
		c.log.Warn("folder %s does not exist, creating it", dir)
		if err := c.fs.MkdirAll(dir); err != nil {
			return fmt.Errorf("creating folder %s: %w", dir, err)
		}
	}
	return nil
}

// Start runs the dispatch loop and the watching strategy chosen by config.
// It blocks until ctx is canceled.
func (c *Coordinator) Start(ctx context.Context) error {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.runDispatch(ctx)
	}()

	switch c.mode {
	case "fsnotify":
		return c.startFsNotify(ctx)

	case "poll":
		c.startPolling(ctx)
		return nil

	case "auto":
		if reason, ok := c.fsnotifyUsable(); !ok {
			c.log.Warn("fsnotify disabled: %s", reason)
			c.startPolling(ctx)
			return nil
		}
		return c.startFsNotify(ctx)

	default:
		return fmt.Errorf("unknown watch mode %q", c.mode)
	}
}

// Wait blocks until the dispatch loop has finished its in-flight event.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// fsnotifyUsable probes every watched folder; a single unreliable one
// pushes the whole coordinator to polling.
func (c *Coordinator) fsnotifyUsable() (string, bool) {
	for _, dir := range c.paths {
		res := fsprobe.Probe(dir)
		if !res.FsnotifySupported {
			return fmt.Sprintf("%s: %s", dir, res.Reason), false
		}
	}
	return "", true
}
