package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/kk-code-lab/ff/internal/config"
	"github.com/kk-code-lab/ff/internal/display"
	"github.com/kk-code-lab/ff/internal/metrics"
	"github.com/kk-code-lab/ff/internal/search"
	"github.com/kk-code-lab/ff/internal/shellsetup"
)

var (
	ErrRootNotFound       = errors.New("search path does not exist")
	ErrConflictingFilters = errors.New("--files-only and --dirs-only cannot be combined")
)

// Options is one ff invocation as parsed from the command line.
type Options struct {
	// PatternSet records that a positional pattern was given, even an empty one.
	PatternSet    bool
	Pattern       string
	Content       string
	Root          string
	IncludeHidden bool
	FilesOnly     bool
	DirsOnly      bool
	// MatchMode overrides the configured default when non-empty.
	MatchMode string
	Limit     int
	Details   bool
	Copy      bool
	Terminal  bool
	Parallel  bool
	Threads   int
	MaxCPU    bool

	ConfigPath  string
	MetricsFile string
}

// Application wires the search core to the terminal. Every collaborator is a
// field so tests can replace it.
type Application struct {
	Options  Options
	Out      io.Writer
	Progress io.Writer
	In       io.Reader
	Logger   *slog.Logger
	Actions  Actions
	Picker   Picker
	Metrics  *metrics.Recorder
	// Color enables ANSI styling when the configured theme allows it.
	Color bool

	getwd       func() (string, error)
	detectShell func() string
	now         func() time.Time
}

// NewApplication returns an Application bound to the process's stdio.
func NewApplication(opts Options) *Application {
	return &Application{
		Options:     opts,
		Out:         os.Stdout,
		Progress:    os.Stderr,
		In:          os.Stdin,
		Logger:      slog.Default(),
		Actions:     NewActions(runtime.GOOS),
		Metrics:     metrics.New(),
		getwd:       os.Getwd,
		detectShell: shellsetup.DetectShell,
		now:         time.Now,
	}
}

func (a *Application) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}

// Run performs one search and the requested follow-up action. Problems the
// user can fix from the command line are printed and reported as nil, in line
// with a finder that is mostly used interactively.
func (a *Application) Run(ctx context.Context) error {
	opts := a.Options
	logger := a.logger()

	cfg, source := a.loadConfig()
	if a.Metrics != nil {
		a.Metrics.ConfigLoads.WithLabelValues(source).Inc()
	}

	printer := display.NewPrinter(a.Out, display.PaletteFor(cfg.OutputOptions.ColorTheme, a.Color), display.Options{
		ShowDetails:       opts.Details || cfg.OutputOptions.ShowDetails,
		MaxContentMatches: cfg.OutputOptions.MaxContentMatches,
		MaxLineLength:     cfg.OutputOptions.MaxLineLength,
	})

	pattern := opts.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = ""
	}
	switch {
	case !opts.PatternSet && opts.Content == "":
		printer.Welcome()
		return nil
	case pattern == "" && opts.Content == "":
		printer.Error("Search pattern cannot be empty", "Example: ff config.json")
		return nil
	case opts.FilesOnly && opts.DirsOnly:
		printer.Error(ErrConflictingFilters.Error(), "")
		return ErrConflictingFilters
	}

	mode := cfg.DefaultMatchMode()
	if opts.MatchMode != "" {
		parsed, err := search.ParseMatchMode(opts.MatchMode)
		if err != nil {
			return err
		}
		mode = parsed
	}

	root, err := a.resolveRoot(opts.Root)
	if err != nil {
		printer.Error(fmt.Sprintf("Path does not exist: %s", opts.Root), "")
		if wd, wdErr := a.getwd(); wdErr == nil {
			printer.Info("📂", "Current directory:", wd)
		}
		return fmt.Errorf("%w: %s", ErrRootNotFound, opts.Root)
	}

	threads := 0
	if opts.Parallel {
		threads = cfg.EffectiveThreadCount(opts.Threads, opts.MaxCPU)
	}

	printer.SearchHeader(display.Header{
		FilenamePattern: pattern,
		ContentPattern:  opts.Content,
		Root:            root,
		Mode:            mode,
		DirsOnly:        opts.DirsOnly,
		FilesOnly:       opts.FilesOnly,
		IncludeHidden:   opts.IncludeHidden,
		Parallel:        opts.Parallel,
		Threads:         threads,
	})

	params := search.Params{
		Root:            root,
		FilenamePattern: pattern,
		ContentPattern:  opts.Content,
		IncludeHidden:   opts.IncludeHidden,
		DirsOnly:        opts.DirsOnly,
		FilesOnly:       opts.FilesOnly,
		Limit:           opts.Limit,
		WantDetails:     opts.Details || cfg.OutputOptions.ShowDetails,
		Mode:            mode,
		Threads:         threads,
		Progress:        a.Progress,
		Logger:          logger,
	}

	token := search.NewToken()
	stop := search.WatchContext(ctx, token)
	started := a.now()
	var results []search.SearchResult
	executor := "sequential"
	if opts.Parallel {
		executor = "parallel"
		results = search.SearchParallel(params, cfg.SearchOptions(), token)
	} else {
		results = search.Search(params, cfg.SearchOptions(), token)
	}
	elapsed := a.now().Sub(started)
	stop()

	st, _ := search.DeriveSearchType(pattern, opts.Content)
	logger.Debug("search finished",
		"executor", executor,
		"type", st.String(),
		"results", len(results),
		"cancelled", token.Cancelled(),
		"elapsed", elapsed)
	if a.Metrics != nil {
		a.Metrics.ObserveSearch(executor, strings.ToLower(st.String()), token.Cancelled(), elapsed, len(results))
	}

	printer.Results(results)
	printer.Elapsed(elapsed)

	if len(results) > 0 {
		if opts.Copy || opts.Terminal {
			a.runActions(printer, results)
		} else {
			printer.ActionHints(len(results))
		}
	}

	a.writeMetrics()
	return nil
}

func (a *Application) loadConfig() (*config.Config, string) {
	path := a.Options.ConfigPath
	if path == "" {
		path = config.DefaultPath
	}
	source := "created"
	if _, err := os.Stat(path); err == nil {
		source = "file"
	}
	return config.LoadWithSafeguard(path, a.logger()), source
}

func (a *Application) resolveRoot(root string) (string, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		return "", err
	}
	return abs, nil
}

func (a *Application) runActions(printer *display.Printer, results []search.SearchResult) {
	selector := Selector{Picker: a.Picker, In: a.In, Out: a.Out}
	chosen, err := selector.Select(results)
	if err != nil {
		if !errors.Is(err, ErrSelectionCancelled) {
			a.logger().Warn("selection failed", "err", err)
		}
		return
	}

	if a.Options.Copy {
		err := a.Actions.CopyToClipboard(chosen.Path)
		a.observeAction("copy", err)
		if err != nil {
			printer.Error(fmt.Sprintf("Failed to copy to clipboard: %v", err), "")
			printer.Info("📋", "Path:", chosen.Path)
		} else {
			printer.Info("✅", "Copied to clipboard:", chosen.Path)
		}
	}

	if a.Options.Terminal {
		err := a.Actions.OpenShellAt(chosen.Path)
		a.observeAction("terminal", err)
		dir := TargetDir(chosen.Path)
		if err != nil {
			a.logger().Debug("open terminal failed", "path", dir, "err", err)
			printer.Error("Could not open a new terminal window", "Run this instead:")
			printer.Info("  ", shellsetup.CdCommand(a.detectShell(), dir), "")
		} else {
			printer.Info("🖥️ ", "Opened terminal in", dir)
		}
	}
}

func (a *Application) observeAction(action string, err error) {
	if a.Metrics != nil {
		a.Metrics.ObserveAction(action, err)
	}
}

func (a *Application) writeMetrics() {
	if a.Metrics == nil || a.Options.MetricsFile == "" {
		return
	}
	if err := a.Metrics.WriteToTextfile(a.Options.MetricsFile); err != nil {
		a.logger().Warn("could not write metrics", "path", a.Options.MetricsFile, "err", err)
	}
}
