package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngoyal/autofileversion/internal/config"
	"github.com/ngoyal/autofileversion/internal/fs"
	"github.com/ngoyal/autofileversion/internal/fsprobe"
	"github.com/ngoyal/autofileversion/internal/logging"
	"github.com/ngoyal/autofileversion/internal/versioner"
)

func newTestCoordinator(t *testing.T, dir string, mode string) *Coordinator {
	t.Helper()

	cfg := &config.Config{
		Folders: []config.FolderConfig{{
			Path: dir,
			BaseFilenames: []config.BaseFileSpec{
				{Name: "invoice.pdf"},
			},
		}},
		Watch: config.WatchConfig{
			Mode:         mode,
			PollInterval: config.Duration(20 * time.Millisecond),
			QueueSize:    16,
		},
	}

	log := logging.StdLogger{Min: logging.LevelError}
	filesystem := fs.New()
	return New(cfg, log, filesystem, versioner.New(filesystem, log))
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestEnsureFolders_CreatesMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "inbox")
	c := newTestCoordinator(t, dir, "poll")

	require.NoError(t, c.EnsureFolders())

	st, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, st.IsDir())
}

func TestHandleEvent_PromotesVariant(t *testing.T) {
	dir := t.TempDir()
	c := newTestCoordinator(t, dir, "poll")

	write(t, filepath.Join(dir, "invoice.pdf"), "old")
	variant := filepath.Join(dir, "invoice (1).pdf")
	write(t, variant, "new")

	c.handleEvent(variant)

	date := time.Now().Format("2006-01-02")
	archived, err := os.ReadFile(filepath.Join(dir, "invoice_v"+date+".pdf"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(archived))

	promoted, err := os.ReadFile(filepath.Join(dir, "invoice.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(promoted))

	assert.NoFileExists(t, variant)
}

func TestHandleEvent_DebouncesSamePath(t *testing.T) {
	dir := t.TempDir()
	c := newTestCoordinator(t, dir, "poll")

	write(t, filepath.Join(dir, "invoice.pdf"), "old")
	variant := filepath.Join(dir, "invoice (1).pdf")
	write(t, variant, "new")

	c.handleEvent(variant)

	// The same path fires again inside the cooldown; nothing happens even
	// though a fresh variant file is sitting there.
	write(t, variant, "newer")
	c.handleEvent(variant)

	date := time.Now().Format("2006-01-02")
	assert.NoFileExists(t, filepath.Join(dir, "invoice_v"+date+"_1.pdf"))
	assert.FileExists(t, variant)
}

func TestHandleEvent_IgnoresUntracked(t *testing.T) {
	dir := t.TempDir()
	c := newTestCoordinator(t, dir, "poll")

	path := filepath.Join(dir, "notes.txt")
	write(t, path, "text")

	c.handleEvent(path)

	assert.FileExists(t, path)
}

// Feeding the promoted base path back through resolves to nothing.
func TestHandleEvent_PromotionIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	c := newTestCoordinator(t, dir, "poll")

	variant := filepath.Join(dir, "invoice (1).pdf")
	write(t, variant, "new")
	c.handleEvent(variant)

	base := filepath.Join(dir, "invoice.pdf")
	require.FileExists(t, base)

	c.handleEvent(base)

	date := time.Now().Format("2006-01-02")
	assert.NoFileExists(t, filepath.Join(dir, "invoice_v"+date+".pdf"))
	assert.FileExists(t, base)
}

func TestScan_EnqueuesNewAndModifiedFiles(t *testing.T) {
	dir := t.TempDir()
	c := newTestCoordinator(t, dir, "poll")

	path := filepath.Join(dir, "invoice (1).pdf")
	write(t, path, "new")

	seen := make(map[string]time.Time)

	c.scan(seen)
	assert.Equal(t, 1, c.queue.Len())

	// Unchanged files do not re-enqueue.
	c.scan(seen)
	assert.Equal(t, 1, c.queue.Len())

	// A newer mtime does.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))
	c.scan(seen)
	assert.Equal(t, 2, c.queue.Len())
}

func TestStart_UnknownMode(t *testing.T) {
	c := newTestCoordinator(t, t.TempDir(), "bogus")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := c.Start(ctx)
	assert.Error(t, err)
}

func TestStart_FsNotifyEndToEnd(t *testing.T) {
	dir := t.TempDir()
	if res := fsprobe.Probe(dir); !res.FsnotifySupported {
		t.Skipf("fsnotify not usable here: %s", res.Reason)
	}

	c := newTestCoordinator(t, dir, "fsnotify")
	write(t, filepath.Join(dir, "invoice.pdf"), "old")

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- c.Start(ctx) }()

	// Give the watch subscription a moment to attach.
	time.Sleep(200 * time.Millisecond)

	write(t, filepath.Join(dir, "invoice (1).pdf"), "new")

	date := time.Now().Format("2006-01-02")
	archived := filepath.Join(dir, "invoice_v"+date+".pdf")

	deadline := time.After(3 * time.Second)
	for {
		if _, err := os.Stat(archived); err == nil {
			break
		}
		select {
		case <-deadline:
			t.Fatal("variant was never promoted")
		case <-time.After(50 * time.Millisecond):
		}
	}

	promoted, err := os.ReadFile(filepath.Join(dir, "invoice.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(promoted))

	cancel()
	require.NoError(t, <-errCh)
	c.Wait()
}
