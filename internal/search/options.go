package search

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultContentBasenames are extensionless files that are always content-searchable.
var DefaultContentBasenames = []string{"README", "Makefile", "Dockerfile", "LICENSE"}

// Options is the read-only view of persisted configuration consumed by the executors.
type Options struct {
	IgnoreDirectories  []string
	IgnoreFilePatterns []string
	// MaxFileSizeBytes excludes larger regular files from traversal; <= 0 disables the ceiling.
	MaxFileSizeBytes int64
	// MaxCandidates bounds phase 1 of SearchParallel; <= 0 means unbounded.
	MaxCandidates  int
	FollowSymlinks bool
	IncludeHidden  bool
	// ContentExtensions lists dotted extensions (".md") whose files may be content-scanned.
	ContentExtensions []string
	// ContentBasenames lists extensionless names that may be content-scanned.
	// Nil means DefaultContentBasenames.
	ContentBasenames []string
}

// IgnoresDirectory reports whether name contains any ignored directory fragment.
func (o Options) IgnoresDirectory(name string) bool {
	for _, fragment := range o.IgnoreDirectories {
		if fragment != "" && strings.Contains(name, fragment) {
			return true
		}
	}
	return false
}

// IgnoresFile reports whether name matches an ignored file pattern.
// "*.ext" is a suffix test, other glob patterns go through doublestar, and
// anything else is a substring test.
func (o Options) IgnoresFile(name string) bool {
	for _, pattern := range o.IgnoreFilePatterns {
		if matchIgnorePattern(pattern, name) {
			return true
		}
	}
	return false
}

func matchIgnorePattern(pattern, name string) bool {
	if pattern == "" {
		return false
	}
	if ext, ok := simpleExtensionPattern(pattern); ok {
		return strings.HasSuffix(name, ext)
	}
	if strings.ContainsAny(pattern, "*?[{") {
		matched, err := doublestar.Match(pattern, name)
		return err == nil && matched
	}
	return strings.Contains(name, pattern)
}

// simpleExtensionPattern recognises "*.ext" and returns ".ext".
func simpleExtensionPattern(pattern string) (string, bool) {
	if !strings.HasPrefix(pattern, "*.") {
		return "", false
	}
	ext := pattern[1:]
	if len(ext) < 2 || strings.ContainsAny(ext[1:], "*?[{/") {
		return "", false
	}
	return ext, true
}

// ContentSearchable reports whether the file at path is on the content allow-list.
func (o Options) ContentSearchable(path string) bool {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	if ext == name {
		// ".bashrc" has no extension in the allow-list sense.
		ext = ""
	}

	if ext != "" {
		for _, allowed := range o.ContentExtensions {
			if strings.EqualFold(allowed, ext) {
				return true
			}
		}
		return false
	}

	basenames := o.ContentBasenames
	if basenames == nil {
		basenames = DefaultContentBasenames
	}
	for _, allowed := range basenames {
		if allowed == name {
			return true
		}
	}
	return false
}
