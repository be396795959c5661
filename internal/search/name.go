package search

import "strings"

const (
	substringScore = 100
	prefixScore    = 150
)

// NameMatcher scores filenames against a filename pattern.
type NameMatcher struct {
	fuzzy        *FuzzyMatcher
	pattern      string
	patternLower string
	mode         MatchMode
}

// NewNameMatcher prepares pattern for repeated scoring under mode.
func NewNameMatcher(pattern string, mode MatchMode) *NameMatcher {
	return &NameMatcher{
		fuzzy:        NewFuzzyMatcher(),
		pattern:      pattern,
		patternLower: foldSameWidth(pattern),
		mode:         mode,
	}
}

// Score returns the filename score, or false when the name does not match.
//
// Exact mode is case-insensitive containment scored 100. Fuzzy mode keeps the
// best of a subsequence score (< 100), containment (100) and prefix (150).
func (nm *NameMatcher) Score(name string) (int, bool) {
	if nm.pattern == "" {
		return 0, false
	}
	lower := foldSameWidth(name)

	if nm.mode == MatchExact {
		if strings.Contains(lower, nm.patternLower) {
			return substringScore, true
		}
		return 0, false
	}

	if strings.HasPrefix(lower, nm.patternLower) {
		return prefixScore, true
	}
	if strings.Contains(lower, nm.patternLower) {
		return substringScore, true
	}
	return nm.fuzzy.Score(nm.pattern, name)
}

// ScoreName is the one-shot form of NameMatcher.Score.
func ScoreName(name, pattern string, mode MatchMode) (int, bool) {
	return NewNameMatcher(pattern, mode).Score(name)
}
