// Package logger provides the leveled logger shared by every component.
// Levels are off, normal (info/warn/error) and verbose (adds debug).
// Safe for concurrent use.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level controls the verbosity of the logger.
type Level int

const (
	// LevelOff disables all log output.
	LevelOff Level = iota
	// LevelNormal enables info, warn, and error output.
	LevelNormal
	// LevelVerbose enables all output including debug.
	LevelVerbose
)

// String returns the level's config name.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelNormal:
		return "normal"
	case LevelVerbose:
		return "verbose"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel maps a config value to a level. Accepts the level names plus
// the aliases quiet, info and debug.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "quiet", "none":
		return LevelOff, nil
	case "", "normal", "info":
		return LevelNormal, nil
	case "verbose", "debug":
		return LevelVerbose, nil
	}
	return LevelNormal, fmt.Errorf("unknown log level %q", s)
}

// core is shared by a logger and every logger derived from it with Named.
type core struct {
	mu    sync.RWMutex
	level Level
	out   *log.Logger
}

// Logger is a leveled logger. All methods are safe for concurrent use.
type Logger struct {
	core   *core
	prefix string
}

// New creates a logger with the given level, writing to the given output.
// If out is nil, os.Stderr is used.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		core: &core{
			level: level,
			out:   log.New(out, "", log.Ltime),
		},
	}
}

// Named returns a logger that tags every line with the component name.
// It shares level and output with its parent.
func (l *Logger) Named(name string) *Logger {
	return &Logger{core: l.core, prefix: l.prefix + name + ": "}
}

// SetLevel changes the log level at runtime.
func (l *Logger) SetLevel(level Level) {
	l.core.mu.Lock()
	defer l.core.mu.Unlock()
	l.core.level = level
}

// GetLevel returns the current log level.
func (l *Logger) GetLevel() Level {
	l.core.mu.RLock()
	defer l.core.mu.RUnlock()
	return l.core.level
}

// Debug logs a message at debug level (only visible in verbose mode).
func (l *Logger) Debug(format string, args ...any) {
	l.output(LevelVerbose, "[DBG] ", format, args)
}

// Info logs a message at info level.
func (l *Logger) Info(format string, args ...any) {
	l.output(LevelNormal, "[INF] ", format, args)
}

// Warn logs a message at warn level.
func (l *Logger) Warn(format string, args ...any) {
	l.output(LevelNormal, "[WRN] ", format, args)
}

// Error logs a message at error level.
func (l *Logger) Error(format string, args ...any) {
	l.output(LevelNormal, "[ERR] ", format, args)
}

func (l *Logger) output(min Level, tag, format string, args []any) {
	l.core.mu.RLock()
	defer l.core.mu.RUnlock()
	if l.core.level < min {
		return
	}
	l.core.out.Output(3, tag+l.prefix+fmt.Sprintf(format, args...))
}
