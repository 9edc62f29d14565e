// Package logging configures the zerolog logger shared by the CLI and the
// MCP server. Output always goes to stderr (or a caller supplied writer)
// because stdout carries the stdio transport.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel is used when no level or an unknown level is configured.
const DefaultLevel = zerolog.InfoLevel

// ParseLevel maps a textual level to zerolog, falling back to DefaultLevel.
func ParseLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return DefaultLevel
	}
	return parsed
}

// New builds a console logger writing to w at the given level.
func New(w io.Writer, level string) zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	return zerolog.New(writer).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// NewJSON builds a structured JSON logger, used when the server runs
// unattended behind the HTTP transport.
func NewJSON(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}
