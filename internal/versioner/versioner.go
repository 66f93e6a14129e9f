// Package versioner archives the current base file under a dated name and
// promotes a matched variant into its place.
package versioner

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ngoyal/autofileversion/internal/fs"
	"github.com/ngoyal/autofileversion/internal/logging"
	"github.com/ngoyal/autofileversion/internal/resolver"
)

// maxCounter bounds the collision probe so a pathological directory cannot
// spin the loop forever.
const maxCounter = 1000

type Engine struct {
	fs  fs.FS
	log logging.Logger
	now func() time.Time
}

func New(filesystem fs.FS, log logging.Logger) *Engine {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Engine{
		fs:  filesystem,
		log: log,
		now: time.Now,
	}
}

// Promote archives any existing base file under a dated name, then moves the
// variant onto the base filename. Archive always happens before promote so
// the old content survives on disk even if the second rename fails.
func (e *Engine) Promote(ctx context.Context, m resolver.Match) error {
	basePath := filepath.Join(m.Folder, m.BaseFilename)

	if e.fs.Exists(basePath) {
		versionedName, err := e.versionedName(m.Folder, m.BaseFilename)
		if err != nil {
			return err
		}

		versionedPath := filepath.Join(m.Folder, versionedName)
		if err := e.fs.Rename(ctx, basePath, versionedPath); err != nil {
			return fmt.Errorf("archiving %s: %w", m.BaseFilename, err)
		}
		e.log.Info("Versioned: %s → %s", m.BaseFilename, versionedName)
	}

	if err := e.fs.Rename(ctx, m.Path, basePath); err != nil {
		return fmt.Errorf("promoting %s: %w", m.Filename, err)
	}
	e.log.Info("Updated: %s → %s", m.Filename, m.BaseFilename)

	return nil
}

// versionedName probes for a free dated filename, appending a counter on
// collision. Names are never reused.
func (e *Engine) versionedName(folder, baseFilename string) (string, error) {
	ext := filepath.Ext(baseFilename)
	name := strings.TrimSuffix(baseFilename, ext)
	date := e.now().Format("2006-01-02")

	candidate := fmt.Sprintf("%s_v%s%s", name, date, ext)
	if !e.fs.Exists(filepath.Join(folder, candidate)) {
		return candidate, nil
	}

	for counter := 1; counter <= maxCounter; counter++ {
		candidate = fmt.Sprintf("%s_v%s_%d%s", name, date, counter, ext)
		if !e.fs.Exists(filepath.Join(folder, candidate)) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no free versioned name for %s after %d attempts", baseFilename, maxCounter)
}
