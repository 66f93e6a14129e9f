// Package fsprobe checks whether fsnotify works reliably for a directory.
// Some filesystems (network mounts, certain containers) accept watches but
// never deliver events; the probe performs a real create+rename round trip.
package fsprobe

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Result reports whether fsnotify is usable and why not.
type Result struct {
	FsnotifySupported bool
	Reason            string
}

// Probe tests whether fsnotify reliably reports create/rename events in dir.
func Probe(dir string) Result {
	st, err := os.Stat(dir)
	if err != nil {
		return Result{false, fmt.Sprintf("stat failed: %v", err)}
	}
	if !st.IsDir() {
		return Result{false, "not a directory"}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return Result{false, fmt.Sprintf("fsnotify unavailable: %v", err)}
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return Result{false, fmt.Sprintf("cannot watch directory: %v", err)}
	}

	tmp := filepath.Join(dir, ".fsprobe_tmp")
	final := filepath.Join(dir, ".fsprobe_final")

	if f, err := os.Create(tmp); err == nil {
		f.Close()
	} else {
		return Result{false, fmt.Sprintf("cannot create temp file: %v", err)}
	}

	// Rename tmp → final; a move-in is exactly the event class the watcher
	// depends on.
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return Result{false, fmt.Sprintf("rename failed: %v", err)}
	}
	defer os.Remove(final)

	timeout := time.After(200 * time.Millisecond)
	for {
		select {
		case ev := <-w.Events:
			if ev.Op&(fsnotify.Rename|fsnotify.Create|fsnotify.Write) != 0 {
				return Result{true, ""}
			}
		case <-timeout:
			return Result{false, "no events received (rename not reported)"}
		}
	}
}
