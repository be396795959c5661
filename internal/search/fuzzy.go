package search

import (
	"math"
	"unicode"
	"unicode/utf8"
)

const (
	// Subsequence-only matches never reach the substring score.
	maxFuzzyScore = 99
	minFuzzyScore = 1
)

// FuzzyMatcher scores how well a pattern's characters appear, in order but
// not necessarily contiguous, inside a text.
// Scoring:
//   - every matched character: +charScore
//   - character at a word boundary (start, after separator, camelCase hump): +boundaryBonus
//   - character directly after the previous match: +consecutiveBonus
//   - gap between two matched characters: -gapStart, then -gapExtension per skipped char
type FuzzyMatcher struct {
	charScore        int
	boundaryBonus    int
	firstCharBonus   int
	consecutiveBonus int
	gapStart         int
	gapExtension     int
}

// NewFuzzyMatcher creates a matcher with default weights.
func NewFuzzyMatcher() *FuzzyMatcher {
	return &FuzzyMatcher{
		charScore:        16,
		boundaryBonus:    8,
		firstCharBonus:   4,
		consecutiveBonus: 4,
		gapStart:         3,
		gapExtension:     1,
	}
}

// Score returns the subsequence score of pattern in text, case-insensitively.
// The raw alignment score is scaled against the best score a pattern of that
// length could reach and lands in [1, 99]; matched is false when pattern is
// not a subsequence of text.
func (fm *FuzzyMatcher) Score(pattern, text string) (score int, matched bool) {
	if pattern == "" {
		return 0, false
	}

	p := foldRunes(pattern)
	t := []rune(text)
	lowered := foldRunes(text)
	if len(p) > len(t) {
		return 0, false
	}

	raw, ok := fm.bestAlignment(p, lowered, t)
	if !ok {
		return 0, false
	}
	return fm.normalize(raw, len(p)), true
}

// maxAttainable is the raw score of a pattern of length n whose characters all
// sit on word boundaries in one consecutive run starting the text.
func (fm *FuzzyMatcher) maxAttainable(n int) int {
	first := fm.charScore + fm.boundaryBonus + fm.firstCharBonus
	rest := fm.charScore + fm.boundaryBonus + fm.consecutiveBonus
	return first + (n-1)*rest
}

func (fm *FuzzyMatcher) normalize(raw, n int) int {
	return clampInt(raw*maxFuzzyScore/fm.maxAttainable(n), minFuzzyScore, maxFuzzyScore)
}

// Matches reports whether pattern is a case-insensitive subsequence of text.
// Any subsequence match has a positive score, so this is the cheap form of Score > 0.
func (fm *FuzzyMatcher) Matches(pattern, text string) bool {
	if pattern == "" {
		return false
	}
	p := foldRunes(pattern)
	i := 0
	for _, r := range text {
		if unicode.ToLower(r) == p[i] {
			i++
			if i == len(p) {
				return true
			}
		}
	}
	return false
}

// bestAlignment runs a row-by-row DP over pattern positions. curr[j] holds the
// best score with pattern[i] placed at text[j].
func (fm *FuzzyMatcher) bestAlignment(pattern, lowered, original []rune) (int, bool) {
	m, n := len(pattern), len(lowered)
	negInf := math.MinInt / 2

	prev := make([]int, n)
	curr := make([]int, n)

	found := false
	for j := 0; j < n; j++ {
		prev[j] = negInf
		if lowered[j] != pattern[0] || n-j < m {
			continue
		}
		s := fm.charScore + fm.boundaryScore(original, j)
		if j == 0 {
			s += fm.firstCharBonus
		}
		prev[j] = s
		found = true
	}
	if !found {
		return 0, false
	}

	for i := 1; i < m; i++ {
		found = false
		// best score of any placement of pattern[i-1] strictly before j-1,
		// already charged for the gap up to j.
		gapBest := negInf
		for j := 0; j < n; j++ {
			curr[j] = negInf
			if j >= 2 && prev[j-2] > negInf {
				candidate := prev[j-2] - fm.gapStart
				if gapBest > negInf {
					gapBest -= fm.gapExtension
				}
				if candidate > gapBest {
					gapBest = candidate
				}
			} else if gapBest > negInf {
				gapBest -= fm.gapExtension
			}

			if lowered[j] != pattern[i] || n-j < m-i {
				continue
			}

			best := negInf
			if j >= 1 && prev[j-1] > negInf {
				best = prev[j-1] + fm.consecutiveBonus
			}
			if gapBest > best {
				best = gapBest
			}
			if best == negInf {
				continue
			}
			curr[j] = best + fm.charScore + fm.boundaryScore(original, j)
			found = true
		}
		if !found {
			return 0, false
		}
		prev, curr = curr, prev
	}

	best := negInf
	for _, s := range prev {
		if s > best {
			best = s
		}
	}
	return best, best > negInf
}

func (fm *FuzzyMatcher) boundaryScore(text []rune, idx int) int {
	if isWordBoundaryRune(text, idx) {
		return fm.boundaryBonus
	}
	return 0
}

func isWordBoundaryRune(text []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	prev := text[idx-1]
	switch prev {
	case '/', '\\', '_', '-', '.', ' ', ':':
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(text[idx])
}

func foldRunes(s string) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		out = append(out, unicode.ToLower(r))
	}
	return out
}

// foldSameWidth lowercases s rune by rune, keeping any rune whose lowercase
// form has a different UTF-8 length. Byte offsets found in the result are
// therefore valid offsets into s.
func foldSameWidth(s string) string {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		buf := []byte(s)
		for i, b := range buf {
			if 'A' <= b && b <= 'Z' {
				buf[i] = b + ('a' - 'A')
			}
		}
		return string(buf)
	}

	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		lower := unicode.ToLower(r)
		if r == utf8.RuneError || utf8.RuneLen(lower) != size {
			buf = append(buf, s[i:i+size]...)
		} else {
			buf = utf8.AppendRune(buf, lower)
		}
		i += size
	}
	return string(buf)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
