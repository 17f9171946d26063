package config

import (
	"log/slog"
	"strings"
)

// Settings is the resolved library configuration used to compose a
// registry at the application's root.
type Settings struct {
	// SnapshotPath is the SQLite database file for presenter snapshots.
	// Empty disables persistence entirely.
	SnapshotPath string

	// Metrics enables OpenTelemetry metrics.
	Metrics bool

	// Tracing enables OpenTelemetry spans around persist/restore.
	Tracing bool

	// LogLevel is the minimum level for structured logging.
	LogLevel slog.Level
}

// DefaultSettings returns the defaults: no persistence, observability off,
// info-level logging.
func DefaultSettings() Settings {
	return Settings{
		LogLevel: slog.LevelInfo,
	}
}

// ParseSettings extracts Settings from a Config, applying defaults for
// missing keys.
//
// Recognized keys:
//
//	snapshot_path: ./presenters.db
//	metrics:       true
//	tracing:       false
//	log_level:     debug | info | warn | error
func ParseSettings(cfg Config) Settings {
	s := DefaultSettings()
	s.SnapshotPath = cfg.String("snapshot_path", s.SnapshotPath)
	s.Metrics = cfg.Bool("metrics", s.Metrics)
	s.Tracing = cfg.Bool("tracing", s.Tracing)
	s.LogLevel = parseLevel(cfg.String("log_level", ""), s.LogLevel)
	return s
}

// LoadSettings reads a config file and resolves it into Settings.
func LoadSettings(path string) (Settings, error) {
	cfg, err := FromFile(path)
	if err != nil {
		return Settings{}, err
	}
	return ParseSettings(cfg), nil
}

// parseLevel maps a level name to slog.Level, falling back for unknown names.
func parseLevel(name string, fallback slog.Level) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}
