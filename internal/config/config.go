// Package config loads runtime settings from a .env file and the
// environment. Values set in the environment win over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/ottomenu/internal/logger"
)

// Env var names.
const (
	EnvConfirmDelay      = "OTTOMENU_CONFIRM_DELAY"
	EnvConsumablePresets = "OTTOMENU_CONSUMABLE_PRESETS"
	EnvTwoStepCustoms    = "OTTOMENU_TWO_STEP_CUSTOMS"
	EnvLogLevel          = "OTTOMENU_LOG_LEVEL"
	EnvLogFile           = "OTTOMENU_LOG_FILE"
)

// DefaultEnvFile is read when Load is called without files.
const DefaultEnvFile = ".env"

// Config holds the settings main wires into the components.
type Config struct {
	ConfirmDelay      time.Duration
	ConsumablePresets bool
	TwoStepCustoms    bool
	LogLevel          logger.Level
	LogFile           string // "stderr" logs to the console
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		ConfirmDelay: 2 * time.Second,
		LogLevel:     logger.LevelNormal,
		LogFile:      ".ottomenu-logs/ottomenu.log",
	}
}

// Load reads the given .env files (missing files are skipped) and overlays
// the process environment.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}

	fileVars := make(map[string]string)
	for _, f := range files {
		vars, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", f, err)
		}
		for k, v := range vars {
			fileVars[k] = v
		}
	}

	return FromLookup(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	})
}

// FromLookup builds a Config from a key lookup such as os.LookupEnv. Unset
// keys keep their defaults; malformed values are errors.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookupTrim(lookup, EnvConfirmDelay); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvConfirmDelay, err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("%s: negative delay %s", EnvConfirmDelay, d)
		}
		cfg.ConfirmDelay = d
	}

	var err error
	if cfg.ConsumablePresets, err = lookupBool(lookup, EnvConsumablePresets, cfg.ConsumablePresets); err != nil {
		return Config{}, err
	}
	if cfg.TwoStepCustoms, err = lookupBool(lookup, EnvTwoStepCustoms, cfg.TwoStepCustoms); err != nil {
		return Config{}, err
	}

	if v, ok := lookupTrim(lookup, EnvLogLevel); ok {
		lvl, err := logger.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = lvl
	}

	if v, ok := lookupTrim(lookup, EnvLogFile); ok {
		cfg.LogFile = v
	}
	return cfg, nil
}

// lookupTrim treats a blank value as unset.
func lookupTrim(lookup func(string) (string, bool), key string) (string, bool) {
	v, ok := lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func lookupBool(lookup func(string) (string, bool), key string, def bool) (bool, error) {
	v, ok := lookupTrim(lookup, key)
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
