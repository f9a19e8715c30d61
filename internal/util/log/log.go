// Package logutil contains shared utilities for configuring loggers from a cli context.
package logutil

import (
	"io"

	"github.com/urfave/cli/v2"
	"golang.org/x/exp/slog"

	"github.com/wetware/ocap"
)

// New logger from a cli context.  The logger is cached in the app's
// metadata, so that every command shares one instance.
func New(c *cli.Context) *slog.Logger {
	if logger := get(c); logger != nil {
		return logger
	}

	return bind(c)
}

// Level parses the "loglvl" flag.
func Level(c *cli.Context) slog.Level {
	switch c.String("loglvl") {
	case "trace", "t", "debug", "d":
		return slog.LevelDebug
	case "warn", "warning", "w":
		return slog.LevelWarn
	case "error", "err", "e", "fatal", "f":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Handler returns a slog handler whose format is set by the "logfmt"
// flag.
func Handler(c *cli.Context, w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: Level(c)}

	switch c.String("logfmt") {
	case "none":
		return slog.NewTextHandler(io.Discard, opts)
	case "json":
		return slog.NewJSONHandler(w, opts)
	default:
		return slog.NewTextHandler(w, opts)
	}
}

// key with random component to avoid collision
const key = "ocap.util.log:Qz+&(<[.~7}>\\>nU!bzeJZX"

// Bind a global logger instance to the CLI context.
// Future calls to New will return this cached logger.
func bind(c *cli.Context) *slog.Logger {
	logger := slog.New(Handler(c, c.App.ErrWriter)).
		With("version", ocap.Version)

	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}

	c.App.Metadata[key] = func() *slog.Logger {
		return logger
	}

	return logger
}

func get(c *cli.Context) *slog.Logger {
	if logger, ok := c.App.Metadata[key].(func() *slog.Logger); ok {
		return logger()
	}

	return nil
}
