package search

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	fsutil "github.com/kk-code-lab/ff/internal/fs"
)

// ErrInvalidText is returned when a line of a content-searchable file is not valid UTF-8.
var ErrInvalidText = errors.New("search: file is not valid UTF-8 text")

// ContentScanner finds pattern occurrences inside text files line by line.
type ContentScanner struct {
	fuzzy        *FuzzyMatcher
	pattern      string
	patternLower string
	mode         MatchMode
}

// NewContentScanner prepares pattern for scanning files under mode.
func NewContentScanner(pattern string, mode MatchMode) *ContentScanner {
	return &ContentScanner{
		fuzzy:        NewFuzzyMatcher(),
		pattern:      pattern,
		patternLower: foldSameWidth(pattern),
		mode:         mode,
	}
}

// ScanContent is the one-shot form of ContentScanner.Scan.
func ScanContent(path, pattern string, mode MatchMode) ([]ContentMatch, error) {
	return NewContentScanner(pattern, mode).Scan(path)
}

// Scan reads path and returns every occurrence of the pattern. Any open, read
// or decode error discards the matches collected so far; callers treat it as
// zero matches for that file.
func (cs *ContentScanner) Scan(path string) ([]ContentMatch, error) {
	if cs.pattern == "" {
		return nil, nil
	}

	tf, err := fsutil.OpenText(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tf.Close()
	}()

	matches, err := cs.scanReader(tf)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return matches, nil
}

func (cs *ContentScanner) scanReader(r io.Reader) ([]ContentMatch, error) {
	reader := bufio.NewReader(r)
	var matches []ContentMatch

	for lineNumber := 1; ; lineNumber++ {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, readErr
		}
		if line == "" && readErr != nil {
			break
		}

		line = trimLineEnding(line)
		if !utf8.ValidString(line) {
			return nil, ErrInvalidText
		}
		matches = cs.appendLineMatches(matches, lineNumber, line)

		if readErr != nil {
			break
		}
	}

	return matches, nil
}

// appendLineMatches records each occurrence of the pattern in line. The search
// cursor advances one byte past every found start, so overlapping occurrences
// ("aa" in "aaa") are all reported.
func (cs *ContentScanner) appendLineMatches(matches []ContentMatch, lineNumber int, line string) []ContentMatch {
	lower := foldSameWidth(line)
	if !cs.lineHit(lower, line) {
		return matches
	}

	for start := 0; start <= len(lower); {
		idx := strings.Index(lower[start:], cs.patternLower)
		if idx < 0 {
			break
		}
		pos := start + idx
		matches = append(matches, ContentMatch{
			LineNumber: lineNumber,
			Line:       line,
			Start:      pos,
			End:        pos + len(cs.pattern),
		})
		start = pos + 1
	}
	return matches
}

// lineHit decides whether a line is considered at all. In fuzzy mode a line
// whose only hit is a subsequence contributes no occurrences.
func (cs *ContentScanner) lineHit(lower, line string) bool {
	if strings.Contains(lower, cs.patternLower) {
		return true
	}
	return cs.mode == MatchFuzzy && cs.fuzzy.Matches(cs.pattern, line)
}

func trimLineEnding(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
