package errors

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", ".mdlinks.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}

		file, exists := err.Context().GetString("file")
		if !exists || file != ".mdlinks.yaml" {
			t.Errorf("expected context file=.mdlinks.yaml, got %v", file)
		}
	})

	t.Run("Error string is stable", func(t *testing.T) {
		err := NotFoundError("input path does not exist").
			WithContext("path", "docs").
			WithContext("cwd", "/tmp").
			WithCause(fs.ErrNotExist).
			Build()

		want := "input path does not exist cwd=/tmp path=docs: file does not exist"
		if err.Error() != want {
			t.Errorf("expected %q, got %q", want, err.Error())
		}
	})

	t.Run("Error detection through wrapping", func(t *testing.T) {
		err := fmt.Errorf("run: %w", ValidationError("not a file").Build())

		if !HasCategory(err, CategoryValidation) {
			t.Error("expected error to have validation category")
		}
		classified, ok := AsClassified(err)
		if !ok || !classified.IsFatal() {
			t.Error("expected wrapped error to be a fatal classified error")
		}
		if GetCategory(errors.New("plain")) != CategoryInternal {
			t.Error("expected plain errors to default to internal")
		}
	})

	t.Run("Sentinel comparison", func(t *testing.T) {
		sentinel := ValidationError("not a file").Build()
		err := fmt.Errorf("check: %w", ValidationError("not a file").WithContext("path", "x").Build())
		if !errors.Is(err, sentinel) {
			t.Error("expected errors.Is to match on category and message")
		}
		if errors.Is(err, ValidationError("not a directory").Build()) {
			t.Error("expected different messages not to match")
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	originalErr := errors.New("permission denied")
	err := WrapError(originalErr, CategoryFileSystem, "cannot read directory").
		Warning().
		WithContext("path", "docs/private").
		Build()

	if err.Severity() != SeverityWarning {
		t.Errorf("expected severity %s, got %s", SeverityWarning, err.Severity())
	}
	if !errors.Is(err, originalErr) {
		t.Error("expected error to wrap original error")
	}
	if err.Cause() != originalErr {
		t.Error("expected cause to be the original error")
	}
}

func TestErrorContextMerge(t *testing.T) {
	var empty ErrorContext
	if _, ok := empty.Get("x"); ok {
		t.Error("expected nil context lookup to miss")
	}

	a := ErrorContext{"path": "a", "line": 1}
	b := ErrorContext{"path": "b"}
	merged := a.Merge(b)
	if merged["path"] != "b" || merged["line"] != 1 {
		t.Errorf("unexpected merge result: %v", merged)
	}
	if a["path"] != "a" {
		t.Error("expected merge not to mutate the receiver")
	}
}

func TestCLIErrorAdapterExitCodes(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain", errors.New("boom"), ExitFindings},
		{"validation", ValidationError("bad").Build(), ExitValidation},
		{"not found", NotFoundError("missing").Build(), ExitNotFound},
		{"config", ConfigError("bad yaml").Build(), ExitConfig},
		{"filesystem", FileSystemError("unreadable").Build(), ExitFileSystem},
		{"internal", InternalError("bug").Build(), ExitInternal},
		{"wrapped", fmt.Errorf("x: %w", ConfigError("bad").Build()), ExitConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("expected exit code %d, got %d", tt.want, got)
			}
		})
	}
}

func TestCLIErrorAdapterFormat(t *testing.T) {
	err := NotFoundError("input path does not exist").
		WithContext("path", "docs").
		WithCause(fs.ErrNotExist).
		Build()

	quiet := NewCLIErrorAdapter(false, nil)
	if got := quiet.FormatError(err); got != "Error: input path does not exist: docs" {
		t.Errorf("unexpected quiet format: %q", got)
	}

	verbose := NewCLIErrorAdapter(true, nil)
	if got := verbose.FormatError(err); got != "Error: "+err.Error() {
		t.Errorf("unexpected verbose format: %q", got)
	}

	if quiet.FormatError(nil) != "" {
		t.Error("expected empty format for nil error")
	}
}

func TestCLIErrorAdapterLogError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	adapter := NewCLIErrorAdapter(false, logger)

	adapter.LogError(ConfigError("configuration file not found").Build())
	adapter.LogError(nil)

	out := buf.String()
	if !strings.Contains(out, "category=config") {
		t.Errorf("expected category attribute, got %q", out)
	}
	if strings.Count(out, "Command failed") != 1 {
		t.Errorf("expected exactly one record, got %q", out)
	}
}
