// Package logging builds the zerolog loggers used by the texture tools.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Format selects the log encoding.
type Format string

const (
	// FormatConsole writes human readable, colorized lines.
	FormatConsole Format = "console"
	// FormatJSON writes one JSON object per line.
	FormatJSON Format = "json"
)

// Options configures New.
type Options struct {
	// Level is a zerolog level name such as "debug" or "info". Empty means info.
	Level string
	// Format is the encoding. Empty means console.
	Format Format
	// Writer receives the output. Nil means os.Stderr.
	Writer io.Writer
	// Component is attached to every event when set.
	Component string
}

// New returns a logger configured by opts.
//
// Arguments:
//   - opts: The logger options.
//
// Returns:
//   - zerolog.Logger: The logger, with timestamps.
//   - error: If the level or format is unknown.
func New(opts Options) (zerolog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	switch opts.Format {
	case "", FormatConsole:
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	case FormatJSON:
	default:
		return zerolog.Nop(), errors.Errorf("logging: unknown format %q", opts.Format)
	}

	ctx := zerolog.New(w).Level(level).With().Timestamp()
	if opts.Component != "" {
		ctx = ctx.Str("component", opts.Component)
	}
	return ctx.Logger(), nil
}

// ParseLevel resolves a level name. The empty string is info.
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.NoLevel, errors.Wrapf(err, "logging: level %q", name)
	}
	return level, nil
}
