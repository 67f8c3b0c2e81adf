// Package logging builds the slog logger used by mdlinks from a verbosity
// level and an output format.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Verbosity enumerates the user-facing verbosity ladder.
type Verbosity string

const (
	VerbositySilent  Verbosity = "silent"
	VerbosityErrors  Verbosity = "errors"
	VerbosityWarn    Verbosity = "warn"
	VerbosityInfo    Verbosity = "info"
	VerbosityVerbose Verbosity = "verbose"
	VerbosityTrace   Verbosity = "trace"
)

// LevelTrace sits below slog.LevelDebug and is printed as "TRACE".
const LevelTrace = slog.LevelDebug - 4

var verbosityAliases = map[string]Verbosity{
	"silent":  VerbositySilent,
	"off":     VerbositySilent,
	"errors":  VerbosityErrors,
	"error":   VerbosityErrors,
	"warn":    VerbosityWarn,
	"warning": VerbosityWarn,
	"info":    VerbosityInfo,
	"verbose": VerbosityVerbose,
	"trace":   VerbosityTrace,
	"debug":   VerbosityTrace,
}

// ParseVerbosity normalizes raw (case and surrounding space insensitive).
// "debug" is accepted as an alias for trace.
func ParseVerbosity(raw string) (Verbosity, error) {
	v, ok := verbosityAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", fmt.Errorf("invalid verbosity %q (valid: silent, errors, warn, info, verbose, trace)", raw)
	}
	return v, nil
}

// Level maps the verbosity to the minimum slog level that is emitted.
// Silent has no level; callers should check IsSilent first.
func (v Verbosity) Level() slog.Level {
	switch v {
	case VerbosityErrors:
		return slog.LevelError
	case VerbosityInfo:
		return slog.LevelInfo
	case VerbosityVerbose:
		return slog.LevelDebug
	case VerbosityTrace:
		return LevelTrace
	default:
		return slog.LevelWarn
	}
}

// IsSilent reports whether nothing should be logged.
func (v Verbosity) IsSilent() bool {
	return v == VerbositySilent
}

// Format enumerates supported log output formats.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat normalizes raw; anything other than json is text.
func ParseFormat(raw string) Format {
	if strings.EqualFold(strings.TrimSpace(raw), string(FormatJSON)) {
		return FormatJSON
	}
	return FormatText
}

// New returns a logger writing to w at the given verbosity.
func New(w io.Writer, v Verbosity, format Format) *slog.Logger {
	if v.IsSilent() {
		return slog.New(slog.DiscardHandler)
	}
	opts := &slog.HandlerOptions{
		Level:       v.Level(),
		ReplaceAttr: renameLevels,
	}
	if format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func renameLevels(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if level, ok := a.Value.Any().(slog.Level); ok && level <= LevelTrace {
		a.Value = slog.StringValue("TRACE")
	}
	return a
}
