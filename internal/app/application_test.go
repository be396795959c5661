package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/kk-code-lab/ff/internal/shellsetup"
)

type fakeActions struct {
	copied  []string
	opened  []string
	copyErr error
	openErr error
}

func (f *fakeActions) CopyToClipboard(text string) error {
	f.copied = append(f.copied, text)
	return f.copyErr
}

func (f *fakeActions) OpenShellAt(path string) error {
	f.opened = append(f.opened, path)
	return f.openErr
}

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		full := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("content of "+name+"\n"), 0o644))
	}
}

func newTestApp(t *testing.T, opts Options) (*Application, *bytes.Buffer, *fakeActions) {
	t.Helper()
	if opts.ConfigPath == "" {
		opts.ConfigPath = filepath.Join(t.TempDir(), "ff-config.toml")
	}
	if opts.Limit == 0 {
		opts.Limit = 10
	}

	var out bytes.Buffer
	actions := &fakeActions{}
	app := NewApplication(opts)
	app.Out = &out
	app.Progress = io.Discard
	app.In = strings.NewReader("")
	app.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	app.Actions = actions
	app.detectShell = func() string { return "bash" }
	return app, &out, actions
}

func TestRunWithoutPatternShowsWelcome(t *testing.T) {
	app, out, _ := newTestApp(t, Options{})
	require.NoError(t, app.Run(context.Background()))
	assert.Contains(t, out.String(), "USAGE:")
}

func TestRunWithBlankPatternPrintsError(t *testing.T) {
	app, out, _ := newTestApp(t, Options{PatternSet: true, Pattern: "   "})
	require.NoError(t, app.Run(context.Background()))
	assert.Contains(t, out.String(), "Search pattern cannot be empty")
	assert.Contains(t, out.String(), "ff config.json")
}

func TestRunRejectsConflictingFilters(t *testing.T) {
	app, _, _ := newTestApp(t, Options{PatternSet: true, Pattern: "x", FilesOnly: true, DirsOnly: true, Root: t.TempDir()})
	assert.ErrorIs(t, app.Run(context.Background()), ErrConflictingFilters)
}

func TestRunReportsMissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	app, out, _ := newTestApp(t, Options{PatternSet: true, Pattern: "x", Root: missing})
	app.getwd = func() (string, error) { return "/work/here", nil }

	err := app.Run(context.Background())
	require.ErrorIs(t, err, ErrRootNotFound)
	assert.Contains(t, out.String(), "Path does not exist: "+missing)
	assert.Contains(t, out.String(), "Current directory: /work/here")
}

func TestRunRejectsUnknownMatchMode(t *testing.T) {
	app, _, _ := newTestApp(t, Options{PatternSet: true, Pattern: "x", Root: t.TempDir(), MatchMode: "regex"})
	assert.Error(t, app.Run(context.Background()))
}

func TestRunSequentialSearch(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "src/main.rs", "src/lib.rs", "README.md")
	cfgPath := filepath.Join(t.TempDir(), "ff-config.toml")

	app, out, actions := newTestApp(t, Options{PatternSet: true, Pattern: "main", Root: root, ConfigPath: cfgPath})
	require.NoError(t, app.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "🔎 SEARCH SUMMARY")
	assert.Contains(t, text, filepath.Join(root, "src", "main.rs"))
	assert.NotContains(t, text, "lib.rs")
	assert.Contains(t, text, "Search completed in")
	assert.Contains(t, text, "--terminal")
	assert.Empty(t, actions.copied)

	require.FileExists(t, cfgPath)
	assert.Equal(t, 1.0, testutil.ToFloat64(app.Metrics.ConfigLoads.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(app.Metrics.Searches.WithLabelValues("sequential", "filename", "completed")))

	// The second run reads the file written by the first.
	app2, _, _ := newTestApp(t, Options{PatternSet: true, Pattern: "main", Root: root, ConfigPath: cfgPath})
	require.NoError(t, app2.Run(context.Background()))
	assert.Equal(t, 1.0, testutil.ToFloat64(app2.Metrics.ConfigLoads.WithLabelValues("file")))
}

func TestRunParallelContentSearch(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	root := t.TempDir()
	writeFiles(t, root, "a.txt", "b.md", "c.rs")

	app, out, _ := newTestApp(t, Options{Content: "content of b", Root: root, Parallel: true, Threads: 2})
	require.NoError(t, app.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "parallel, 2 threads")
	assert.Contains(t, text, "b.md [CONTENT]")
	assert.Contains(t, text, "L1: content of b.md")
	assert.Equal(t, 1.0, testutil.ToFloat64(app.Metrics.Searches.WithLabelValues("parallel", "content", "completed")))
}

func TestRunCancelledContext(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "main.go")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	app, _, _ := newTestApp(t, Options{PatternSet: true, Pattern: "main", Root: root})
	require.NoError(t, app.Run(ctx))
	assert.Equal(t, 1.0, testutil.ToFloat64(app.Metrics.Searches.WithLabelValues("sequential", "filename", "cancelled")))
}

func TestRunCopiesSingleResult(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "docs/guide.md", "src/app.go")

	app, out, actions := newTestApp(t, Options{PatternSet: true, Pattern: "guide", Root: root, Copy: true})
	require.NoError(t, app.Run(context.Background()))

	want := filepath.Join(root, "docs", "guide.md")
	assert.Equal(t, []string{want}, actions.copied)
	assert.Contains(t, out.String(), "Auto-selecting the only match")
	assert.Contains(t, out.String(), "Copied to clipboard: "+want)
	assert.NotContains(t, out.String(), "Use these flags for actions")
	assert.Equal(t, 1.0, testutil.ToFloat64(app.Metrics.Actions.WithLabelValues("copy", "ok")))
}

func TestRunTerminalUsesPickerChoice(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "one/notes.txt", "two/notes.txt")

	app, _, actions := newTestApp(t, Options{PatternSet: true, Pattern: "notes", Root: root, Terminal: true})
	picker := &fakePicker{choice: 1, ok: true}
	app.Picker = picker
	require.NoError(t, app.Run(context.Background()))

	require.Len(t, picker.items, 2)
	require.Len(t, actions.opened, 1)
	assert.True(t, strings.HasSuffix(picker.items[1], " "+actions.opened[0]))
}

func TestRunTerminalFailurePrintsCdFallback(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "settings.gradle")

	app, out, actions := newTestApp(t, Options{PatternSet: true, Pattern: "settings.gradle", Root: root, Terminal: true})
	actions.openErr = ErrNoTerminal
	require.NoError(t, app.Run(context.Background()))
	require.Len(t, actions.opened, 1, "the fixture must survive the default ignore lists")

	assert.Contains(t, out.String(), "Could not open a new terminal window")
	assert.Contains(t, out.String(), shellsetup.CdCommand("bash", root))
	assert.Equal(t, 1.0, testutil.ToFloat64(app.Metrics.Actions.WithLabelValues("terminal", "error")))
}

func TestRunWritesMetricsFile(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "main.go")
	metricsPath := filepath.Join(t.TempDir(), "ff.prom")

	app, _, _ := newTestApp(t, Options{PatternSet: true, Pattern: "main", Root: root, MetricsFile: metricsPath})
	require.NoError(t, app.Run(context.Background()))

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ff_search_runs_total")
}
