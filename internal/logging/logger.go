// Package logging sets up the file logger. The terminal belongs to the UI,
// so nothing is ever written to stdout or stderr from here.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Rorical/RoriMail/internal/config"
)

const defaultFileName = "rorimail.log"

// New opens (or creates) the log file for cfg and returns a logger writing to it.
// The returned closer must be closed on shutdown.
func New(cfg *config.Config) (zerolog.Logger, io.Closer, error) {
	path := Path(cfg)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return zerolog.Nop(), nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	return NewWithWriter(f, cfg.Logging.Level), f, nil
}

// NewWithWriter builds a logger on w at the given level name.
// Unknown levels fall back to info.
func NewWithWriter(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(w).Level(lvl).With().
		Timestamp().
		Str("app", "rorimail").
		Logger()
}

// Path resolves the log file location: logging.file when set, otherwise
// logs/rorimail.log next to the config file.
func Path(cfg *config.Config) string {
	if cfg.Logging.File != "" {
		return cfg.Logging.File
	}
	return filepath.Join(cfg.Dir(), "logs", defaultFileName)
}
