package search

import (
	"path/filepath"
	"slices"
	"strings"
)

// rankResults sorts by score descending and truncates to limit. Ties are broken
// by path depth and then lexically so repeated runs return the same order.
func rankResults(results []SearchResult, limit int) []SearchResult {
	slices.SortFunc(results, compareResults)
	if limit < 0 {
		limit = 0
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func compareResults(a, b SearchResult) int {
	if a.Score != b.Score {
		if a.Score > b.Score {
			return -1
		}
		return 1
	}
	if diff := compareInt(countPathSegments(a.Path), countPathSegments(b.Path)); diff != 0 {
		return diff
	}
	return strings.Compare(a.Path, b.Path)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func countPathSegments(path string) int {
	if path == "" || path == "." {
		return 1
	}
	normalized := filepath.ToSlash(path)
	normalized = strings.Trim(normalized, "/")
	if normalized == "" {
		return 1
	}
	return strings.Count(normalized, "/") + 1
}
