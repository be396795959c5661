package search

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	fsutil "github.com/kk-code-lab/ff/internal/fs"
)

type FileEntry = fsutil.Entry

// ErrNoPattern is returned when neither a filename nor a content pattern is supplied.
var ErrNoPattern = errors.New("search: no filename or content pattern")

// MatchMode selects the scoring algorithm for both filename and content matching.
type MatchMode int

const (
	MatchFuzzy MatchMode = iota
	MatchExact
)

func (m MatchMode) String() string {
	switch m {
	case MatchExact:
		return "Exact"
	default:
		return "Fuzzy"
	}
}

// ParseMatchMode accepts "fuzzy" or "exact" in any case.
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fuzzy", "":
		return MatchFuzzy, nil
	case "exact":
		return MatchExact, nil
	default:
		return MatchFuzzy, fmt.Errorf("invalid match mode %q: must be fuzzy or exact", s)
	}
}

// SearchType is derived from which patterns were supplied for a run.
type SearchType int

const (
	SearchFileName SearchType = iota
	SearchContent
	SearchHybrid
)

func (st SearchType) String() string {
	switch st {
	case SearchContent:
		return "Content"
	case SearchHybrid:
		return "Hybrid"
	default:
		return "FileName"
	}
}

// DeriveSearchType maps the supplied patterns to a SearchType.
func DeriveSearchType(filenamePattern, contentPattern string) (SearchType, error) {
	switch {
	case filenamePattern != "" && contentPattern != "":
		return SearchHybrid, nil
	case filenamePattern != "":
		return SearchFileName, nil
	case contentPattern != "":
		return SearchContent, nil
	default:
		return SearchFileName, ErrNoPattern
	}
}

// ContentMatch is one occurrence of the content pattern inside a file.
// Start and End are byte offsets into Line.
type ContentMatch struct {
	LineNumber int
	Line       string
	Start      int
	End        int
}

// SearchResult is one ranked entry returned by a search.
type SearchResult struct {
	Path           string
	Entry          FileEntry
	Score          int
	ContentMatches []ContentMatch
	SearchType     SearchType
	HasDetails     bool
}

// Params are the per-invocation search parameters.
type Params struct {
	Root            string
	FilenamePattern string
	ContentPattern  string
	IncludeHidden   bool
	DirsOnly        bool
	FilesOnly       bool
	Limit           int
	WantDetails     bool
	Mode            MatchMode
	// Threads sizes the worker pool of SearchParallel; <= 0 means runtime.NumCPU().
	Threads int
	// Progress receives progress and summary lines; nil discards them.
	Progress io.Writer
	Logger   *slog.Logger
}

func (p Params) progressWriter() io.Writer {
	if p.Progress == nil {
		return io.Discard
	}
	return p.Progress
}

func (p Params) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}
