package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/kk-code-lab/ff/internal/app"
	"github.com/kk-code-lab/ff/internal/config"
	"github.com/kk-code-lab/ff/internal/ui/picker"
)

func main() {
	// UTF-8 fallback keeps icons and non-ASCII paths intact in the picker.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	ff := newCLI()
	if err := ff.Run(reorderArgs(ff.Flags, os.Args)); err != nil {
		if !errors.Is(err, app.ErrRootNotFound) {
			fmt.Fprintf(os.Stderr, "ff: %v\n", err)
		}
		os.Exit(1)
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:      "ff",
		Usage:     "Fast file finder with fuzzy name and content search",
		ArgsUsage: "[pattern]",
		// The welcome screen replaces the generated help when no pattern is given.
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "Directory to search in",
				Value:   ".",
			},
			&cli.StringFlag{
				Name:    "content",
				Aliases: []string{"C"},
				Usage:   "Search inside file contents for `TEXT`",
			},
			&cli.BoolFlag{
				Name:  "hidden",
				Usage: "Include hidden files and directories",
			},
			&cli.BoolFlag{
				Name:    "files-only",
				Aliases: []string{"f"},
				Usage:   "Only report files",
			},
			&cli.BoolFlag{
				Name:    "dirs-only",
				Aliases: []string{"d"},
				Usage:   "Only report directories",
			},
			&cli.StringFlag{
				Name:    "match-mode",
				Aliases: []string{"m"},
				Usage:   "Matching strategy (fuzzy, exact); defaults to the config value",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "Maximum number of results",
				Value:   10,
			},
			&cli.BoolFlag{
				Name:  "details",
				Usage: "Show size, modification time and score",
			},
			&cli.BoolFlag{
				Name:    "copy",
				Aliases: []string{"c"},
				Usage:   "Copy the selected path to the clipboard",
			},
			&cli.BoolFlag{
				Name:    "terminal",
				Aliases: []string{"t"},
				Usage:   "Open a terminal in the selected result's directory",
			},
			&cli.BoolFlag{
				Name:  "pl",
				Usage: "Use the parallel search executor",
			},
			&cli.IntFlag{
				Name:  "th",
				Usage: "Worker threads for --pl (0 = config or CPU count)",
			},
			&cli.BoolFlag{
				Name:  "mx",
				Usage: "Use twice the CPU count as worker threads for --pl",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file (.toml, or legacy .json)",
				Value: config.DefaultPath,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Set logging level (debug, info, warn, error)",
				Value: "warn",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write Prometheus metrics of this run to `FILE`",
			},
		},
		Before: setupLogger,
		Action: runSearch,
	}
}

func optionsFromContext(c *cli.Context) app.Options {
	return app.Options{
		PatternSet:    c.NArg() > 0,
		Pattern:       c.Args().First(),
		Content:       c.String("content"),
		Root:          c.String("path"),
		IncludeHidden: c.Bool("hidden"),
		FilesOnly:     c.Bool("files-only"),
		DirsOnly:      c.Bool("dirs-only"),
		MatchMode:     c.String("match-mode"),
		Limit:         c.Int("limit"),
		Details:       c.Bool("details"),
		Copy:          c.Bool("copy"),
		Terminal:      c.Bool("terminal"),
		Parallel:      c.Bool("pl") || c.IsSet("th") || c.Bool("mx"),
		Threads:       c.Int("th"),
		MaxCPU:        c.Bool("mx"),
		ConfigPath:    c.String("config"),
		MetricsFile:   c.String("metrics-file"),
	}
}

func runSearch(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	application := app.NewApplication(optionsFromContext(c))
	application.Out = c.App.Writer

	// color.NoColor already accounts for NO_COLOR, TERM=dumb and a non-tty stdout.
	application.Color = !color.NoColor
	if isTerminal(os.Stdout) && isTerminal(os.Stdin) {
		application.Picker = picker.New(nil)
	}
	return application.Run(ctx)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// reorderArgs moves flags in front of positional arguments so that
// "ff main.go -p src" parses like "ff -p src main.go". Everything after "--"
// stays positional.
func reorderArgs(flags []cli.Flag, args []string) []string {
	if len(args) < 2 {
		return args
	}
	takesValue := make(map[string]bool)
	for _, f := range flags {
		df, ok := f.(cli.DocGenerationFlag)
		if !ok || !df.TakesValue() {
			continue
		}
		for _, name := range f.Names() {
			takesValue[name] = true
		}
	}

	var flagArgs, positional []string
	rest := args[1:]
	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		switch {
		case arg == "--":
			positional = append(positional, rest[i:]...)
			i = len(rest)
		case len(arg) > 1 && arg[0] == '-':
			flagArgs = append(flagArgs, arg)
			name := strings.TrimLeft(arg, "-")
			if !strings.Contains(name, "=") && takesValue[name] && i+1 < len(rest) {
				i++
				flagArgs = append(flagArgs, rest[i])
			}
		default:
			positional = append(positional, arg)
		}
	}

	out := make([]string, 0, len(args))
	out = append(out, args[0])
	out = append(out, flagArgs...)
	return append(out, positional...)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
