package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Folders   []FolderConfig  `yaml:"folders"`
	Watch     WatchConfig     `yaml:"watch"`
	Retention RetentionConfig `yaml:"retention"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// FolderConfig describes one watched directory and the base filenames
// tracked inside it. Folders are fixed for the lifetime of the process.
type FolderConfig struct {
	Path          string         `yaml:"path"`
	BaseFilenames []BaseFileSpec `yaml:"baseFilenames"`
}

// BaseFileSpec names one tracked file, e.g. "invoice.pdf". Variants of this
// name (browser renames, manual copies) are promoted back onto it.
type BaseFileSpec struct {
	Name string `yaml:"name"`
}

type WatchConfig struct {
	Mode         string   `yaml:"mode"`         // "auto", "poll", "fsnotify"
	PollInterval Duration `yaml:"pollInterval"` // e.g. 5s
	QueueSize    int      `yaml:"queueSize"`
}

// Duration wraps time.Duration so YAML can carry values like "5s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// RetentionConfig controls pruning of archived versioned files.
// Disabled by default; Schedule is a cron expression.
type RetentionConfig struct {
	Enabled   bool   `yaml:"enabled"`
	KeepCount int    `yaml:"keepCount"`
	Schedule  string `yaml:"schedule"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // "info", "debug", etc.
}
