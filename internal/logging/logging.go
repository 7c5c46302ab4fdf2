// Package logging configures the slog loggers used across rubiksify.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

// nopHandler discards every record. Enabled reports false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// Discard returns a logger that drops all output. Library types use it when
// no logger is configured.
func Discard() *slog.Logger { return slog.New(nopHandler{}) }

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}

// RegisterFlags adds the --loglevel and --logformat persistent flags.
func RegisterFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("loglevel", "warn", "set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("logformat", "text", "set the log format (text, json)")
}

// FromFlags builds a logger writing to w from the flags registered by
// RegisterFlags.
func FromFlags(cmd *cobra.Command, w io.Writer) (*slog.Logger, error) {
	levelFlag := cmd.Flag("loglevel")
	formatFlag := cmd.Flag("logformat")
	if levelFlag == nil || formatFlag == nil {
		return Discard(), nil
	}
	return New(w, levelFlag.Value.String(), formatFlag.Value.String())
}

// New builds a logger for the given level and format names.
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	return slog.New(handler), nil
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("invalid log level: %s", level)
	}
}
