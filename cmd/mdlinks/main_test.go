package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdlinks/internal/errors"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// execute runs the CLI inside dir with a clean default logger.
func execute(t *testing.T, dir string, args ...string) result {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	t.Chdir(dir)

	var stdout, stderr bytes.Buffer
	exited := -1
	code := run(context.Background(), args, &stdout, &stderr, func(c int) { exited = c })
	if exited >= 0 {
		code = exited
	}
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func docsTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "docs", "index.md"),
		"# Index\n\nSee [guide](guide.md#setup) and [missing](nope.md).\n")
	writeFile(t, filepath.Join(dir, "docs", "guide.md"),
		"# Guide\n\n## Setup\n\nBack to [index](index.md#index).\n")
	return dir
}

func TestRunCleanFile(t *testing.T) {
	dir := docsTree(t)

	res := execute(t, dir, "docs/guide.md")

	assert.Equal(t, errors.ExitOK, res.code)
	assert.Contains(t, res.stdout, "OK.")
}

func TestRunFindingsExitCode(t *testing.T) {
	dir := docsTree(t)

	res := execute(t, dir, "check", "-r", "docs")

	assert.Equal(t, errors.ExitFindings, res.code)
	assert.Contains(t, res.stdout, "nope.md")
	assert.Contains(t, res.stdout, "Found 1 broken or invalid link!")
	assert.NotContains(t, res.stderr, "Error:")
}

func TestRunNoErrorFlag(t *testing.T) {
	dir := docsTree(t)

	res := execute(t, dir, "check", "-r", "--no-error", "docs")

	assert.Equal(t, errors.ExitOK, res.code)
	assert.Contains(t, res.stdout, "nope.md")
}

func TestRunSilent(t *testing.T) {
	dir := docsTree(t)

	res := execute(t, dir, "-v", "silent", "check", "-r", "docs")

	assert.Equal(t, errors.ExitOK, res.code)
	assert.Empty(t, res.stdout)
	assert.Empty(t, res.stderr)
}

func TestRunJSONFormat(t *testing.T) {
	dir := docsTree(t)

	res := execute(t, dir, "check", "-r", "--format", "json", "docs")
	require.Equal(t, errors.ExitFindings, res.code)

	var out struct {
		FilesChecked int `json:"files_checked"`
		FindingCount int `json:"finding_count"`
		Findings     []struct {
			Kind string `json:"kind"`
			Link string `json:"link"`
		} `json:"findings"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	assert.Equal(t, 2, out.FilesChecked)
	assert.Equal(t, 1, out.FindingCount)
	require.Len(t, out.Findings, 1)
	assert.Equal(t, "missing_file", out.Findings[0].Kind)
	assert.Equal(t, "nope.md", out.Findings[0].Link)
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()

	res := execute(t, dir, "check", "absent.md")

	assert.Equal(t, errors.ExitNotFound, res.code)
	assert.Contains(t, res.stderr, "Error:")
	assert.Contains(t, res.stderr, "absent.md")
}

func TestRunDirectoryWithoutRecursive(t *testing.T) {
	dir := docsTree(t)

	res := execute(t, dir, "check", "docs")

	assert.Equal(t, errors.ExitValidation, res.code)
	assert.Contains(t, res.stderr, "Error:")
}

func TestRunUnknownFlag(t *testing.T) {
	dir := t.TempDir()

	res := execute(t, dir, "check", "--no-such-flag", "x.md")

	assert.Equal(t, errors.ExitValidation, res.code)
	assert.Contains(t, res.stderr, "Error:")
}

func TestRunInvalidConfig(t *testing.T) {
	dir := docsTree(t)
	writeFile(t, filepath.Join(dir, ".mdlinks.yaml"), "version: \"9\"\n")

	res := execute(t, dir, "docs/guide.md")

	assert.Equal(t, errors.ExitConfig, res.code)
	assert.Contains(t, res.stderr, "unsupported configuration version")
}

func TestRunConfigFileEnablesRecursive(t *testing.T) {
	dir := docsTree(t)
	writeFile(t, filepath.Join(dir, ".mdlinks.yaml"),
		"version: \"1\"\ncheck:\n  recursive: true\n  no_error: true\n")

	res := execute(t, dir, "docs")

	assert.Equal(t, errors.ExitOK, res.code)
	assert.Contains(t, res.stdout, "nope.md")
}

func TestRunSlug(t *testing.T) {
	dir := t.TempDir()

	res := execute(t, dir, "slug", "Hello,", "World!")

	assert.Equal(t, errors.ExitOK, res.code)
	assert.Equal(t, "hello-world\n", res.stdout)
}

func TestRunSlugFile(t *testing.T) {
	dir := docsTree(t)

	res := execute(t, dir, "slug", "--file", "docs/guide.md")

	require.Equal(t, errors.ExitOK, res.code)
	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	assert.Equal(t, []string{"1\t# Guide\t#guide", "3\t## Setup\t#setup"}, lines)
}

func TestRunSlugRequiresInput(t *testing.T) {
	dir := t.TempDir()

	res := execute(t, dir, "slug")

	assert.Equal(t, errors.ExitValidation, res.code)
}

func TestRunInit(t *testing.T) {
	dir := t.TempDir()

	res := execute(t, dir, "init")
	require.Equal(t, errors.ExitOK, res.code)
	assert.FileExists(t, filepath.Join(dir, ".mdlinks.yaml"))

	again := execute(t, dir, "init")
	assert.Equal(t, errors.ExitConfig, again.code)

	forced := execute(t, dir, "init", "--force")
	assert.Equal(t, errors.ExitOK, forced.code)
}

func TestRunVersion(t *testing.T) {
	dir := t.TempDir()

	res := execute(t, dir, "version")

	assert.Equal(t, errors.ExitOK, res.code)
	assert.True(t, strings.HasPrefix(res.stdout, "mdlinks dev "))
}
