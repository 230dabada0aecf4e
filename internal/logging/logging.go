// Package logging sets up the file logger. The terminal belongs to the UI,
// so nothing is ever written to stdout or stderr.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the log file inside the data directory
const FileName = "artgrip.log"

// Options controls the log file
type Options struct {
	Level      string
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// DefaultOptions returns rotation defaults for dir
func DefaultOptions(dir string) Options {
	return Options{
		Level:      "info",
		Dir:        dir,
		MaxSizeMB:  5,
		MaxBackups: 3,
		MaxAgeDays: 14,
	}
}

// Setup builds the root logger and installs it as the zerolog global. The
// returned closer flushes and closes the log file.
func Setup(opts Options) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return zerolog.Nop(), nil, errors.Wrap(err, "create log directory")
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(opts.Dir, FileName),
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}

	logger := New(w, level)
	log.Logger = logger

	logger.Info().Str("level", level.String()).Str("file", w.Filename).Msg("logger initialized")
	return logger, w, nil
}

// New creates a logger writing JSON lines to w
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
