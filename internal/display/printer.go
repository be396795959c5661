package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kk-code-lab/ff/internal/search"
	"github.com/kk-code-lab/ff/internal/textutil"
)

const (
	defaultMaxContentMatches = 3
	defaultMaxLineLength     = 100
)

// Options are the output preferences the printer honours.
type Options struct {
	ShowDetails       bool
	MaxContentMatches int
	MaxLineLength     int
}

// Printer writes human-readable search output.
type Printer struct {
	w       io.Writer
	palette Palette
	opts    Options
	now     func() time.Time
}

// NewPrinter returns a printer writing to w. Zero limits in opts fall back to
// three previews per result and 100 cells per preview line.
func NewPrinter(w io.Writer, palette Palette, opts Options) *Printer {
	if opts.MaxContentMatches <= 0 {
		opts.MaxContentMatches = defaultMaxContentMatches
	}
	if opts.MaxLineLength <= 0 {
		opts.MaxLineLength = defaultMaxLineLength
	}
	return &Printer{w: w, palette: palette, opts: opts, now: time.Now}
}

func (p *Printer) println(parts ...string) {
	_, _ = fmt.Fprintln(p.w, strings.Join(parts, ""))
}

// Welcome prints the short usage shown when ff runs without a pattern.
func (p *Printer) Welcome() {
	pl := p.palette
	p.println(render(pl.Accent, "🚀 Fast File Finder"))
	p.println()
	p.println(render(pl.Heading, "USAGE:"))
	p.println("    ", render(pl.Success, "ff"), " ", render(pl.Placeholder, "<pattern>"), " ", render(pl.HybridTag, "[options]"))
	p.println()
	p.println(render(pl.Heading, "EXAMPLES:"))
	p.println("    ff ", render(pl.Placeholder, "main.rs"), "                 ", render(pl.Hint, "→ Find main.rs files"))
	p.println("    ff ", render(pl.Placeholder, "--content TODO"), "          ", render(pl.Hint, "→ Find files containing TODO"))
	p.println("    ff ", render(pl.Placeholder, "main --path ~/code --pl"), " ", render(pl.Hint, "→ Parallel search in ~/code"))
	p.println()
	p.println(render(pl.Heading, "OPTIONS:"))
	for _, row := range [][2]string{
		{"--path <dir>", "Search in specific directory"},
		{"--content <text>", "Search inside file contents"},
		{"--copy", "Copy path to clipboard"},
		{"--terminal", "Open a terminal at the selected path"},
		{"--hidden", "Include hidden files"},
		{"--dirs-only", "Find only directories"},
		{"--files-only", "Find only files"},
	} {
		p.println("    ", render(pl.FlagName, textutil.PadRight(row[0], 18)), " ", render(pl.Hint, row[1]))
	}
	p.println()
	p.println("   Type ", render(pl.Success, "ff --help"), " for detailed help")
	p.println("⚠️  Press ", render(pl.Emphasis, "Ctrl+C"), " to cancel search anytime")
}

// Header describes the search about to run.
type Header struct {
	FilenamePattern string
	ContentPattern  string
	Root            string
	Mode            search.MatchMode
	DirsOnly        bool
	FilesOnly       bool
	IncludeHidden   bool
	Parallel        bool
	Threads         int
}

// SearchHeader prints the search summary block.
func (p *Printer) SearchHeader(h Header) {
	pl := p.palette
	p.println(render(pl.Heading, "🔎 SEARCH SUMMARY"))
	if h.FilenamePattern != "" {
		p.println("   Pattern: ", render(pl.Value, textutil.SanitizeTerminalText(h.FilenamePattern)))
	}
	if h.ContentPattern != "" {
		p.println("   Content: ", render(pl.Value, textutil.SanitizeTerminalText(h.ContentPattern)))
	}
	p.println("   Path: ", render(pl.Accent, textutil.SanitizeTerminalText(h.Root)))
	switch {
	case h.DirsOnly:
		p.println("   Filter: ", render(pl.FlagName, "directories"), " only")
	case h.FilesOnly:
		p.println("   Filter: ", render(pl.FlagName, "files"), " only")
	}
	if h.IncludeHidden {
		p.println("   Including: ", render(pl.FlagName, "hidden"), " files")
	}
	mode := h.Mode.String()
	if h.Parallel {
		mode += fmt.Sprintf(" | parallel, %d threads", h.Threads)
	}
	p.println("   Mode: ", render(pl.FlagName, mode), " | Press ", render(pl.Emphasis, "Ctrl+C"), " to cancel")
	p.println()
}

// Results prints the ranked list with optional details and content previews.
func (p *Printer) Results(results []search.SearchResult) {
	pl := p.palette
	p.println()
	if len(results) == 0 {
		p.println(render(pl.Error, "No files found matching the pattern"))
		return
	}

	p.println("✅ Found ", render(pl.Success, fmt.Sprintf("%d", len(results))), " match(es):")
	for i, result := range results {
		p.println()
		p.println(p.resultLine(i, result))
		p.contentPreviews(result)
	}
}

func (p *Printer) resultLine(index int, result search.SearchResult) string {
	pl := p.palette
	pathColor := pl.Path
	if result.Entry.IsDir {
		pathColor = pl.Directory
	}

	var b strings.Builder
	b.WriteString(render(pl.Index, fmt.Sprintf("%2d", index+1)))
	b.WriteString(" ")
	b.WriteString(Icon(result))
	b.WriteString(" ")
	b.WriteString(render(pathColor, textutil.SanitizeTerminalText(result.Path)))

	switch result.SearchType {
	case search.SearchContent:
		b.WriteString(" " + render(pl.ContentTag, "[CONTENT]"))
	case search.SearchHybrid:
		b.WriteString(" " + render(pl.HybridTag, "[HYBRID]"))
	}

	if p.opts.ShowDetails {
		if result.HasDetails {
			if !result.Entry.IsDir {
				b.WriteString(" " + render(pl.Detail, FormatSize(result.Entry.Size)))
			}
			if !result.Entry.Modified.IsZero() {
				b.WriteString(" " + render(pl.Detail, FormatTimeAgo(p.now().Sub(result.Entry.Modified))))
			}
		}
		b.WriteString(" " + render(pl.Score, fmt.Sprintf("(%d)", result.Score)))
	}
	return b.String()
}

func (p *Printer) contentPreviews(result search.SearchResult) {
	pl := p.palette
	for i, m := range result.ContentMatches {
		if i >= p.opts.MaxContentMatches {
			rest := len(result.ContentMatches) - p.opts.MaxContentMatches
			p.println("    ", render(pl.Detail, "..."), " ", render(pl.Detail, fmt.Sprintf("%d", rest)), " more matches...")
			return
		}
		p.println("    ", render(pl.LineNumber, fmt.Sprintf("L%d", m.LineNumber)), ": ", render(pl.Preview, p.previewLine(m.Line)))
	}
}

func (p *Printer) previewLine(line string) string {
	line = textutil.ExpandTabs(line, textutil.DefaultTabWidth)
	line = textutil.SanitizeTerminalText(line)
	return textutil.Truncate(line, p.opts.MaxLineLength)
}

// Elapsed prints how long the search took.
func (p *Printer) Elapsed(d time.Duration) {
	p.println()
	p.println("⚡ Search completed in ", render(p.palette.Value, FormatDuration(d)))
}

// ActionHints reminds the user of the selection flags when none was given.
func (p *Printer) ActionHints(count int) {
	pl := p.palette
	p.println()
	p.println("💡 Found ", render(pl.Success, FormatCompactNumber(count)), " results. Use these flags for actions:")
	p.println("   ", render(pl.FlagName, "--terminal"), " - Open selected file's directory in new terminal")
	p.println("   ", render(pl.FlagName, "--copy"), " - Copy selected file's path to clipboard")
}

// Error prints a failure message with an optional hint line.
func (p *Printer) Error(msg, hint string) {
	p.println("❌ ", render(p.palette.Error, msg))
	if hint != "" {
		p.println("💡 ", hint)
	}
}

// Info prints a neutral status line.
func (p *Printer) Info(icon, msg, value string) {
	if value != "" {
		p.println(icon, " ", msg, " ", render(p.palette.Accent, textutil.SanitizeTerminalText(value)))
		return
	}
	p.println(icon, " ", msg)
}
