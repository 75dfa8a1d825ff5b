// Package observability configures structured logging for the chrono
// binaries and defines the shared log field names.
package observability

import (
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/voyago/chrono/internal/profile"
)

const (
	// LogFieldRunID is the field name for an agent run ID.
	LogFieldRunID = "run_id"
	// LogFieldAgent is the field name for the agent name.
	LogFieldAgent = "agent"
	// LogFieldTool is the field name for a tool name.
	LogFieldTool = "tool"
	// LogFieldIteration is the field name for the agent loop iteration.
	LogFieldIteration = "iteration"
	// LogFieldDuration is the field name for duration in milliseconds.
	LogFieldDuration = "duration_ms"
	// LogFieldError is the field name for an error message.
	LogFieldError = "error"
)

// Init installs the process-wide slog logger: JSON in prod, text in dev.
// Logs always go to stderr; stdout carries the MCP stdio transport.
func Init(p *profile.Profile) *slog.Logger {
	level := slog.LevelInfo
	if p.IsDev() {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if p.IsDev() {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// NewRunID generates a unique identifier for one agent run.
func NewRunID() string {
	return uuid.NewString()
}
