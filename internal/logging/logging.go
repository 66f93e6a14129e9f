package logging

import (
	"log"
	"strings"
)

// Provides a simple leveled logger interface for the application

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config string to a Level. Unknown strings mean info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// StdLogger writes leveled lines through the standard log package.
type StdLogger struct {
	Min Level
}

func (l StdLogger) Debug(msg string, args ...any) { l.printf(LevelDebug, "DEBUG: "+msg, args...) }
func (l StdLogger) Info(msg string, args ...any)  { l.printf(LevelInfo, "INFO: "+msg, args...) }
func (l StdLogger) Warn(msg string, args ...any)  { l.printf(LevelWarn, "WARN: "+msg, args...) }
func (l StdLogger) Error(msg string, args ...any) { l.printf(LevelError, "ERROR: "+msg, args...) }

func (l StdLogger) printf(lv Level, format string, args ...any) {
	if lv < l.Min {
		return
	}
	log.Printf(format, args...)
}
