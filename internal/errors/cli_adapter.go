package errors

import (
	"context"
	"fmt"
	"log/slog"
)

// Exit codes used by the CLI. ExitFindings is returned when broken links were
// found and nothing failed.
const (
	ExitOK         = 0
	ExitFindings   = 1
	ExitValidation = 2
	ExitNotFound   = 3
	ExitConfig     = 7
	ExitInternal   = 10
	ExitFileSystem = 11
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return ExitOK
	}

	classified, ok := AsClassified(err)
	if !ok {
		return ExitFindings
	}

	switch classified.Category() {
	case CategoryValidation:
		return ExitValidation
	case CategoryNotFound:
		return ExitNotFound
	case CategoryConfig:
		return ExitConfig
	case CategoryFileSystem:
		return ExitFileSystem
	case CategoryInternal:
		return ExitInternal
	default:
		return ExitFindings
	}
}

// FormatError formats an error for user-friendly display. Verbose mode keeps
// the full chain; otherwise only the classified message and its context.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	classified, ok := AsClassified(err)
	if !ok || a.verbose {
		return fmt.Sprintf("Error: %v", err)
	}

	msg := classified.Message()
	if path, ok := classified.Context().GetString("path"); ok {
		msg = fmt.Sprintf("%s: %s", msg, path)
	}
	return "Error: " + msg
}

// LogError records err at debug level with its category. The user-facing
// line comes from FormatError.
func (a *CLIErrorAdapter) LogError(err error) {
	if err == nil {
		return
	}
	a.logger.Log(context.Background(), slog.LevelDebug, "Command failed",
		slog.String("category", string(GetCategory(err))),
		slog.String("error", err.Error()))
}
