// Package logging builds the process logger: slog text records written to
// stderr and to a size-rotated log file.
package logging

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"taskman/internal/config"
)

// New returns a logger for cfg and a closer for the log file.
// Records go to errOut and, unless disabled, to cfg.LogPath().
// --debug forces the debug level.
func New(cfg *config.Config, errOut io.Writer) (*slog.Logger, io.Closer) {
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = slog.LevelWarn
	}
	if cfg.Debug {
		level = slog.LevelDebug
	}

	var (
		w      = errOut
		closer io.Closer = nopCloser{}
	)
	if path := cfg.LogPath(); path != "" {
		if cfg.Log.File == "" {
			// default path lives in the config dir
			_ = cfg.EnsureDir()
		}
		lj := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
		}
		w = io.MultiWriter(errOut, lj)
		closer = lj
	}

	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h), closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
