package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ParsesYAML(t *testing.T) {
	path := writeConfig(t, `
folders:
  - path: /srv/inbox
    baseFilenames:
      - name: invoice.pdf
      - name: report.pdf
watch:
  mode: poll
  pollInterval: 10s
  queueSize: 32
retention:
  enabled: true
  keepCount: 5
  schedule: "30 2 * * *"
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Folders, 1)
	assert.Equal(t, "/srv/inbox", cfg.Folders[0].Path)
	assert.Equal(t, []BaseFileSpec{{Name: "invoice.pdf"}, {Name: "report.pdf"}}, cfg.Folders[0].BaseFilenames)
	assert.Equal(t, "poll", cfg.Watch.Mode)
	assert.Equal(t, Duration(10*time.Second), cfg.Watch.PollInterval)
	assert.Equal(t, 32, cfg.Watch.QueueSize)
	assert.True(t, cfg.Retention.Enabled)
	assert.Equal(t, 5, cfg.Retention.KeepCount)
	assert.Equal(t, "30 2 * * *", cfg.Retention.Schedule)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("AFV_TEST_ROOT", "/srv/files")

	path := writeConfig(t, `
folders:
  - path: $(AFV_TEST_ROOT)/inbox
    baseFilenames:
      - name: invoice.pdf
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/files/inbox", cfg.Folders[0].Path)
}

func TestLoad_ExpandsHome(t *testing.T) {
	path := writeConfig(t, `
folders:
  - path: ~/Downloads
    baseFilenames:
      - name: invoice.pdf
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Downloads"), cfg.Folders[0].Path)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
folders:
  - path: /srv/inbox
    baseFilenames:
      - name: invoice.pdf
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "auto", cfg.Watch.Mode)
	assert.Equal(t, Duration(5*time.Second), cfg.Watch.PollInterval)
	assert.Equal(t, 64, cfg.Watch.QueueSize)
	assert.False(t, cfg.Retention.Enabled)
	assert.Equal(t, 10, cfg.Retention.KeepCount)
	assert.Equal(t, "0 3 * * *", cfg.Retention.Schedule)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadOrCreate_WritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, created, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.True(t, created)
	assert.FileExists(t, path)

	require.Len(t, cfg.Folders, 1)
	assert.Len(t, cfg.Folders[0].BaseFilenames, 3)

	// Second call loads the file it just wrote.
	_, created, err = LoadOrCreate(path)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"no folders", `watch: {mode: poll}`},
		{"empty path", `
folders:
  - path: ""
    baseFilenames:
      - name: invoice.pdf
`},
		{"no base filenames", `
folders:
  - path: /srv/inbox
    baseFilenames: []
`},
		{"empty base filename", `
folders:
  - path: /srv/inbox
    baseFilenames:
      - name: ""
`},
		{"duplicate base filename", `
folders:
  - path: /srv/inbox
    baseFilenames:
      - name: invoice.pdf
      - name: invoice.pdf
`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, c.yaml))
			assert.Error(t, err)
		})
	}
}
