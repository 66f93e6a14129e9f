// Package retention prunes old versioned files so a long-running watcher
// does not accumulate archives without bound. It only ever removes files
// that carry the versioning engine's own date suffix.
package retention

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ngoyal/autofileversion/internal/config"
	"github.com/ngoyal/autofileversion/internal/fs"
	"github.com/ngoyal/autofileversion/internal/logging"
)

type Engine struct {
	fs   fs.FS
	log  logging.Logger
	keep int
}

func New(filesystem fs.FS, log logging.Logger, keep int) *Engine {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Engine{
		fs:   filesystem,
		log:  log,
		keep: keep,
	}
}

// versioned is one archived file found on disk.
type versioned struct {
	path    string
	date    string
	counter int
}

// ApplyAll prunes every folder, logging failures and continuing.
func (e *Engine) ApplyAll(folders []config.FolderConfig) {
	for _, f := range folders {
		names := make([]string, 0, len(f.BaseFilenames))
		for _, b := range f.BaseFilenames {
			names = append(names, b.Name)
		}
		if err := e.Apply(f.Path, names); err != nil {
			e.log.Error("retention: %s: %v", f.Path, err)
		}
	}
}

// Apply keeps the newest keep versioned files per base filename in folder
// and removes the rest. The live base file is never touched.
func (e *Engine) Apply(folder string, baseFilenames []string) error {
	entries, err := e.fs.ReadDir(folder)
	if err != nil {
		return fmt.Errorf("reading folder: %w", err)
	}

	for _, base := range baseFilenames {
		re := versionedRe(base)

		var found []versioned
		for _, ent := range entries {
			if ent.IsDir() {
				continue
			}
			m := re.FindStringSubmatch(ent.Name())
			if m == nil {
				continue
			}
			counter := 0
			if m[2] != "" {
				counter, _ = strconv.Atoi(m[2])
			}
			found = append(found, versioned{
				path:    filepath.Join(folder, ent.Name()),
				date:    m[1],
				counter: counter,
			})
		}

		if len(found) <= e.keep {
			continue
		}

		// Newest first: later date wins, then higher counter within a date.
		sort.Slice(found, func(i, j int) bool {
			if found[i].date != found[j].date {
				return found[i].date > found[j].date
			}
			return found[i].counter > found[j].counter
		})

		for _, v := range found[e.keep:] {
			if err := e.fs.Remove(v.path); err != nil {
				e.log.Error("retention: removing %s: %v", v.path, err)
				continue
			}
			e.log.Info("retention: removed %s", v.path)
		}
	}

	return nil
}

// versionedRe matches the archive names the versioning engine produces for
// one base filename: {name}_v{date}.ext and {name}_v{date}_{counter}.ext.
func versionedRe(baseFilename string) *regexp.Regexp {
	ext := filepath.Ext(baseFilename)
	name := strings.TrimSuffix(baseFilename, ext)
	return regexp.MustCompile(
		`^` + regexp.QuoteMeta(name) + `_v(\d{4}-\d{2}-\d{2})(?:_(\d+))?` + regexp.QuoteMeta(ext) + `$`,
	)
}
