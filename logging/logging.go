// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Options selects where and how log records are written
type Options struct {
	// File, when set, receives a copy of every record and is rotated at 10 MB.
	File   string
	Format string // "json" or "text" (default)
	Level  slog.Level
}

// Setup builds a logger from opts, installs it as the slog default and
// returns it together with a closer for the rotating file.
func Setup(stderr io.Writer, opts Options) (*slog.Logger, io.Closer) {
	if stderr == nil {
		stderr = os.Stderr
	}

	var closer io.Closer = nopCloser{}
	w := stderr
	if opts.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // 10 MB
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		}
		w = io.MultiWriter(stderr, rotating)
		closer = rotating
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	var handler slog.Handler
	if opts.Format == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
