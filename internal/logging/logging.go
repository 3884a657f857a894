// Package logging configures the zerolog logger shared by the shim, its
// flat C API, and the CLI. Level and destination come from the environment
// so a host application can turn on diagnostics without a rebuild.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvLogLevel   = "UCSHIM_LOG_LEVEL"
	EnvLogFile    = "UCSHIM_LOG_FILE"
	EnvLogNoColor = "UCSHIM_LOG_NOCOLOR"
)

type Profile int

const (
	// ProfileLibrary is used inside the DLL. Legacy hosts have no console,
	// so logging is off unless the environment asks for it.
	ProfileLibrary Profile = iota
	// ProfileCLI writes human-readable warnings to stderr.
	ProfileCLI
	// ProfileTest discards everything unless the environment overrides it.
	ProfileTest
)

type config struct {
	level   zerolog.Level
	file    string
	noColor bool
	console bool
}

var (
	configureOnce sync.Once
	mu            sync.RWMutex
	logger        = zerolog.Nop()
)

// Configure installs the logger for the given profile. Only the first call
// has any effect.
func Configure(profile Profile) zerolog.Logger {
	configureOnce.Do(func() {
		cfg := defaultConfig(profile)
		applyEnvOverrides(&cfg)
		set(build(cfg, os.Stderr))
	})
	return L()
}

// L returns the configured logger, or a no-op logger before Configure.
func L() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func set(l zerolog.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

func defaultConfig(profile Profile) config {
	switch profile {
	case ProfileCLI:
		return config{level: zerolog.WarnLevel, console: true}
	case ProfileTest:
		return config{level: zerolog.Disabled}
	default:
		return config{level: zerolog.Disabled}
	}
}

func applyEnvOverrides(cfg *config) {
	if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.level = lvl
	}
	if path := strings.TrimSpace(os.Getenv(EnvLogFile)); path != "" {
		cfg.file = path
		cfg.console = false
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		cfg.noColor = v
	}
}

func build(cfg config, stderr io.Writer) zerolog.Logger {
	if cfg.level == zerolog.Disabled {
		return zerolog.Nop()
	}

	var out io.Writer = stderr
	if cfg.file != "" {
		f, err := os.OpenFile(cfg.file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			out = f
		}
	}
	if cfg.console {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    cfg.noColor,
		}
	}
	return zerolog.New(out).Level(cfg.level).With().Timestamp().Str("app", "ucshim").Logger()
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.Disabled, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.Disabled, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
