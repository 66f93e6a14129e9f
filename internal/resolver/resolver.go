// Package resolver decides whether a filesystem event names a variant of a
// tracked base file in a watched folder.
package resolver

import (
	"path/filepath"
	"strings"

	"github.com/ngoyal/autofileversion/internal/pattern"
)

// Folder is one watched directory with its compiled variant patterns, in
// configuration order.
type Folder struct {
	Path     string
	Variants []pattern.Variant
}

// Match identifies a variant file and the base file it should replace.
type Match struct {
	Folder       string // watched directory containing the variant
	Path         string // full path of the variant
	Filename     string // variant filename
	BaseFilename string // tracked name the variant resolves to
}

type Resolver struct {
	folders []Folder
}

func New(folders []Folder) *Resolver {
	normalized := make([]Folder, len(folders))
	for i, f := range folders {
		normalized[i] = Folder{
			Path:     filepath.Clean(f.Path),
			Variants: f.Variants,
		}
	}
	return &Resolver{folders: normalized}
}

// suffixes browsers use for in-progress downloads; never final artifacts.
var incompleteSuffixes = []string{".crdownload", ".download"}

// Resolve checks an event path against the watched folders and their
// patterns. It reports no match for hidden files, unfinished downloads,
// paths outside the watched folders (subfolders included), the versioning
// engine's own output, and files already named exactly like their base.
func (r *Resolver) Resolve(eventPath string) (Match, bool) {
	dir := filepath.Dir(eventPath)
	filename := filepath.Base(eventPath)

	if strings.HasPrefix(filename, ".") {
		return Match{}, false
	}
	for _, suffix := range incompleteSuffixes {
		if strings.HasSuffix(filename, suffix) {
			return Match{}, false
		}
	}

	if pattern.HasVersionMarker(filename) {
		return Match{}, false
	}

	folder := r.folderFor(dir)
	if folder == nil {
		return Match{}, false
	}

	// First matching pattern decides; the walk never falls through to later
	// specs. A live base file matches its own catch-all here and stops the
	// walk, so it can never resolve as a variant of an overlapping spec.
	for _, v := range folder.Variants {
		if !v.Match(filename) {
			continue
		}
		if filename == v.Base {
			// The base file itself never triggers versioning.
			return Match{}, false
		}
		return Match{
			Folder:       folder.Path,
			Path:         eventPath,
			Filename:     filename,
			BaseFilename: v.Base,
		}, true
	}

	return Match{}, false
}

// folderFor returns the watched folder whose path equals dir exactly.
// Matching is non-recursive: files in subfolders never resolve.
func (r *Resolver) folderFor(dir string) *Folder {
	clean := filepath.Clean(dir)
	for i := range r.folders {
		if r.folders[i].Path == clean {
			return &r.folders[i]
		}
	}
	return nil
}
