package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/ddlint/internal/cli/config"
	"github.com/leapstack-labs/ddlint/pkg/lint"
)

func writeDDL(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newCheckCmd() (*bytes.Buffer, *bytes.Buffer, func(args ...string) error) {
	cmd := NewCheckCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	return &out, &errOut, func(args ...string) error {
		cmd.SetArgs(args)
		return cmd.Execute()
	}
}

func TestNewCheckCommand(t *testing.T) {
	cmd := NewCheckCommand()

	assert.Equal(t, "check <file|dir> [...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	// Verify flags exist
	flags := []string{"format", "report-file", "severity", "disable", "rule", "watch"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestCheckCleanSchemaSucceeds(t *testing.T) {
	dir := t.TempDir()
	path := writeDDL(t, dir, "schema.sql", `
CREATE TABLE users (
    user_id INT PRIMARY KEY INDEX,
    username VARCHAR(50) NOT NULL UNIQUE
);

CREATE TABLE orders (
    order_id INT PRIMARY KEY INDEX,
    user_id INT INDEX,
    FOREIGN KEY (user_id) REFERENCES users (user_id)
);
`)

	out, _, run := newCheckCmd()
	err := run(path, "--format", "markdown")
	require.NoError(t, err, "no error-severity findings expected")
	assert.Contains(t, out.String(), "Schema Integrity Report")
}

func TestCheckErrorsFailTheRun(t *testing.T) {
	dir := t.TempDir()
	path := writeDDL(t, dir, "schema.sql", `
CREATE TABLE orders (
    order_id INT PRIMARY KEY,
    user_id INT,
    FOREIGN KEY (user_id) REFERENCES users (user_id)
);
`)

	out, _, run := newCheckCmd()
	err := run(path, "--format", "markdown")
	require.Error(t, err, "unresolved foreign key must fail the run")
	assert.Contains(t, err.Error(), "integrity errors")
	assert.Contains(t, out.String(), "non-existent table 'users'")
}

func TestCheckJSONOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeDDL(t, dir, "schema.sql", "CREATE TABLE t (name VARCHAR(20));")

	out, _, run := newCheckCmd()
	err := run(path, "--format", "json")
	require.Error(t, err, "missing primary key is an error")

	var parsed struct {
		Files []struct {
			Path     string `json:"path"`
			Findings []struct {
				RuleID   string `json:"rule_id"`
				Severity string `json:"severity"`
				Message  string `json:"message"`
			} `json:"findings"`
		} `json:"files"`
		Summary struct {
			Errors        int `json:"errors"`
			TotalFindings int `json:"total_findings"`
		} `json:"summary"`
	}
	// The non-zero-exit error must not append usage text after the
	// JSON document.
	assert.NotContains(t, out.String(), "Usage:")

	require.NoError(t, json.Unmarshal(out.Bytes(), &parsed))
	require.Len(t, parsed.Files, 1)
	assert.Equal(t, path, parsed.Files[0].Path)
	assert.GreaterOrEqual(t, parsed.Summary.Errors, 1)
	assert.Equal(t, "SC01", parsed.Files[0].Findings[0].RuleID)
}

func TestCheckPlainFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeDDL(t, dir, "schema.sql", "CREATE TABLE t (name VARCHAR(20));")

	out, _, run := newCheckCmd()
	err := run(path, "--format", "plain")
	require.Error(t, err)
	assert.Contains(t, out.String(), "Table 't' has no PRIMARY KEY defined (ERROR)")
}

func TestCheckHTMLReportFile(t *testing.T) {
	dir := t.TempDir()
	path := writeDDL(t, dir, "schema.sql", "CREATE TABLE t (name VARCHAR(20));")
	reportPath := filepath.Join(dir, "report.html")

	_, _, run := newCheckCmd()
	err := run(path, "--format", "html", "--report-file", reportPath)
	require.Error(t, err)

	data, readErr := os.ReadFile(reportPath)
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "<h2 class=\"error\">Errors</h2>")
}

func TestCheckStdin(t *testing.T) {
	cmd := NewCheckCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader("CREATE TABLE t (id INT PRIMARY KEY INDEX);"))
	cmd.SetArgs([]string{"-", "--format", "markdown"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Schema Integrity Report")
}

func TestCheckDirectoryWalk(t *testing.T) {
	dir := t.TempDir()
	writeDDL(t, dir, "a.sql", "CREATE TABLE a (id INT PRIMARY KEY INDEX);")
	writeDDL(t, dir, "b.sql", "CREATE TABLE b (id INT PRIMARY KEY INDEX);")
	writeDDL(t, dir, "notes.txt", "not ddl")

	out, _, run := newCheckCmd()
	err := run(dir, "--format", "json")
	require.NoError(t, err)

	var parsed struct {
		Summary struct {
			FilesAnalyzed int `json:"files_analyzed"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &parsed))
	assert.Equal(t, 2, parsed.Summary.FilesAnalyzed)
}

func TestCheckSeverityThreshold(t *testing.T) {
	dir := t.TempDir()
	// Clean except for warnings and info.
	path := writeDDL(t, dir, "schema.sql", `
CREATE TABLE users (user_id INT PRIMARY KEY);
CREATE TABLE orders (
    order_id INT PRIMARY KEY,
    user_id INT,
    FOREIGN KEY (user_id) REFERENCES users (user_id)
);
`)

	out, _, run := newCheckCmd()
	err := run(path, "--severity", "error", "--format", "plain")
	require.NoError(t, err, "only warnings and info present, all filtered out")
	assert.Empty(t, out.String())
}

// syncBuffer guards a bytes.Buffer for the watch tests, where the
// debounced re-run writes from another goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitForOutput(t *testing.T, out *syncBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(out.String(), want) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for output containing %q", want)
}

func TestCheckWatchPicksUpNewFiles(t *testing.T) {
	dir := t.TempDir()
	writeDDL(t, dir, "a.sql", "CREATE TABLE a (id INT PRIMARY KEY INDEX);")

	cmd := NewCheckCommand()
	out := &syncBuffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{dir, "--watch", "--format", "markdown"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cmd.SetContext(ctx)

	done := make(chan error, 1)
	go func() { done <- cmd.Execute() }()

	waitForOutput(t, out, "Schema Integrity Report")

	// A file created after the watch started must be analyzed on the
	// next run.
	writeDDL(t, dir, "b.sql", "CREATE TABLE latecomer (name VARCHAR(20));")
	waitForOutput(t, out, "Table 'latecomer' has no PRIMARY KEY defined")

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestCheckWatchRejectsStdin(t *testing.T) {
	_, _, run := newCheckCmd()
	err := run("-", "--watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stdin")
}

func TestCheckMissingFile(t *testing.T) {
	_, _, run := newCheckCmd()
	err := run(filepath.Join(t.TempDir(), "absent.sql"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read")
}

func TestBuildLintConfig(t *testing.T) {
	t.Run("empty options", func(t *testing.T) {
		cfg := buildLintConfig(nil, &CheckOptions{})
		require.NotNil(t, cfg)
		assert.False(t, cfg.IsDisabled("SC01"))
	})

	t.Run("disable rules", func(t *testing.T) {
		cfg := buildLintConfig(nil, &CheckOptions{Disable: []string{"SC01", "SC04"}})
		assert.True(t, cfg.IsDisabled("SC01"))
		assert.True(t, cfg.IsDisabled("SC04"))
		assert.False(t, cfg.IsDisabled("SC02"))
	})

	t.Run("enable only specific rules", func(t *testing.T) {
		cfg := buildLintConfig(nil, &CheckOptions{Rules: []string{"SC01"}})
		assert.False(t, cfg.IsDisabled("SC01"))
		for _, rule := range lint.GetAll() {
			if rule.ID != "SC01" {
				assert.True(t, cfg.IsDisabled(rule.ID), "rule %q should be disabled", rule.ID)
			}
		}
	})

	t.Run("project config is applied", func(t *testing.T) {
		projectCfg := &config.Config{
			Lint: &config.LintConfig{
				Disabled: []string{"SC03"},
				Severity: map[string]string{"SC05": "error"},
			},
		}
		cfg := buildLintConfig(projectCfg, &CheckOptions{})
		assert.True(t, cfg.IsDisabled("SC03"))
		assert.Equal(t, lint.SeverityError, cfg.GetSeverity("SC05", lint.SeverityWarning))
	})
}
