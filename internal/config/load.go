package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// matches $(VAR_NAME)
var envPattern = regexp.MustCompile(`\$\(([A-Za-z0-9_]+)\)`)

// replaces $(VAR) with os.Getenv(VAR)
func expandEnvVars(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(m string) string {
		key := mapEnvKey(envPattern.FindStringSubmatch(m)[1])
		return os.Getenv(key)
	})
}

// expandHome replaces a leading ~ with the current user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func Load(path string) (*Config, error) {
	// read raw YAML file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// expand $(ENV_VAR) placeholders
	expanded := expandEnvVars(string(data))

	// unmarshal into struct
	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}

	cfg.applyDefaults()

	for i := range cfg.Folders {
		cfg.Folders[i].Path = expandHome(cfg.Folders[i].Path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrCreate loads the config file, writing a default one first when the
// file does not exist. The second return value reports whether a default
// config was created.
func LoadOrCreate(path string) (*Config, bool, error) {
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, false, fmt.Errorf("checking config file: %w", err)
		}
		if err := writeDefault(path); err != nil {
			return nil, false, err
		}
		cfg, err := Load(path)
		return cfg, true, err
	}

	cfg, err := Load(path)
	return cfg, false, err
}

// Default is the configuration written when none exists yet.
func Default() *Config {
	cfg := &Config{
		Folders: []FolderConfig{
			{
				Path: "~/Downloads",
				BaseFilenames: []BaseFileSpec{
					{Name: "statement.pdf"},
					{Name: "invoice.pdf"},
					{Name: "report.pdf"},
				},
			},
		},
	}
	cfg.applyDefaults()
	return cfg
}

func writeDefault(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshalling default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Watch.Mode == "" {
		c.Watch.Mode = "auto"
	}
	if c.Watch.PollInterval <= 0 {
		c.Watch.PollInterval = Duration(5 * time.Second)
	}
	if c.Watch.QueueSize <= 0 {
		c.Watch.QueueSize = 64
	}
	if c.Retention.KeepCount <= 0 {
		c.Retention.KeepCount = 10
	}
	if c.Retention.Schedule == "" {
		c.Retention.Schedule = "0 3 * * *"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate rejects configs the watcher cannot act on.
func (c *Config) Validate() error {
	if len(c.Folders) == 0 {
		return errors.New("config: no folders configured")
	}

	for _, f := range c.Folders {
		if f.Path == "" {
			return errors.New("config: folder with empty path")
		}
		if len(f.BaseFilenames) == 0 {
			return fmt.Errorf("config: folder %s has no base filenames", f.Path)
		}

		seen := make(map[string]bool, len(f.BaseFilenames))
		for _, b := range f.BaseFilenames {
			if b.Name == "" {
				return fmt.Errorf("config: folder %s has an empty base filename", f.Path)
			}
			if seen[b.Name] {
				return fmt.Errorf("config: folder %s lists %s twice", f.Path, b.Name)
			}
			seen[b.Name] = true
		}
	}
	return nil
}
