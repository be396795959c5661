package search

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	progressInterval     = time.Second
	progressPollInterval = 500 * time.Millisecond
	progressLineWidth    = 80
)

// progressPrinter rewrites a single status line on w at most once per interval.
type progressPrinter struct {
	w        io.Writer
	interval time.Duration
	lastEmit time.Time
	emitted  bool
	clock    func() time.Time
}

func newProgressPrinter(w io.Writer, start time.Time) *progressPrinter {
	return &progressPrinter{
		w:        w,
		interval: progressInterval,
		lastEmit: start,
		clock:    time.Now,
	}
}

func (pp *progressPrinter) withClock(clock func() time.Time) *progressPrinter {
	pp.clock = clock
	return pp
}

// update prints the line produced by render if a full interval has elapsed.
// render is only called when a line is actually emitted.
func (pp *progressPrinter) update(render func() string) bool {
	now := pp.clock()
	if now.Sub(pp.lastEmit) < pp.interval {
		return false
	}
	_, _ = fmt.Fprintf(pp.w, "\r%s", render())
	pp.lastEmit = now
	pp.emitted = true
	return true
}

// finish clears the status line, if one was printed, and writes summary.
func (pp *progressPrinter) finish(summary string) {
	if pp.emitted {
		_, _ = fmt.Fprintf(pp.w, "\r%s\r", strings.Repeat(" ", progressLineWidth))
	}
	if summary != "" {
		_, _ = fmt.Fprintln(pp.w, summary)
	}
}

func scannedLine(files, dirs int64) string {
	return fmt.Sprintf("Scanned %d files, %d dirs... (Ctrl+C to cancel)", files, dirs)
}

func scannedSummary(files, dirs int64) string {
	return fmt.Sprintf("Scanned %d files and %d directories total", files, dirs)
}
