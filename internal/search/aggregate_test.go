package search

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestAggregate(t *testing.T) {
	one := []ContentMatch{{LineNumber: 1, Line: "foo", Start: 0, End: 3}}

	tests := []struct {
		desc        string
		st          SearchType
		nameScore   int
		nameMatched bool
		matches     []ContentMatch
		wantMatched bool
		wantScore   int
	}{
		{"filename hit", SearchFileName, 150, true, nil, true, 150},
		{"filename miss", SearchFileName, 0, false, nil, false, 0},
		{"content hit", SearchContent, 0, false, one, true, 100},
		{"content miss", SearchContent, 0, false, nil, false, 0},
		{"hybrid both", SearchHybrid, 150, true, one, true, 200},
		{"hybrid name only", SearchHybrid, 40, true, nil, true, 40},
		{"hybrid content only", SearchHybrid, 0, false, one, true, 50},
		{"hybrid neither", SearchHybrid, 0, false, nil, false, 0},
	}

	for _, tt := range tests {
		matched, score := Aggregate(tt.st, tt.nameScore, tt.nameMatched, tt.matches)
		if matched != tt.wantMatched || score != tt.wantScore {
			t.Errorf("%s: Aggregate = (%v, %d), want (%v, %d)", tt.desc, matched, score, tt.wantMatched, tt.wantScore)
		}
	}
}

func TestDeriveSearchType(t *testing.T) {
	tests := []struct {
		name, content string
		want          SearchType
	}{
		{"main", "", SearchFileName},
		{"", "TODO", SearchContent},
		{"main", "TODO", SearchHybrid},
	}
	for _, tt := range tests {
		got, err := DeriveSearchType(tt.name, tt.content)
		if err != nil || got != tt.want {
			t.Fatalf("DeriveSearchType(%q, %q) = %v, %v; want %v", tt.name, tt.content, got, err, tt.want)
		}
	}
	if _, err := DeriveSearchType("", ""); !errors.Is(err, ErrNoPattern) {
		t.Fatalf("expected ErrNoPattern, got %v", err)
	}
}

func TestRankResultsOrdersAndTruncates(t *testing.T) {
	root := filepath.Join("tmp", "root")
	results := []SearchResult{
		{Path: filepath.Join(root, "deep", "nested", "b.rs"), Score: 100},
		{Path: filepath.Join(root, "z.rs"), Score: 100},
		{Path: filepath.Join(root, "a.rs"), Score: 100},
		{Path: filepath.Join(root, "main.rs"), Score: 150},
		{Path: filepath.Join(root, "weak.rs"), Score: 12},
	}

	got := rankResults(results, 4)
	want := []string{
		filepath.Join(root, "main.rs"),
		filepath.Join(root, "a.rs"),
		filepath.Join(root, "z.rs"),
		filepath.Join(root, "deep", "nested", "b.rs"),
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Path != want[i] {
			t.Fatalf("position %d: got %s want %s", i, got[i].Path, want[i])
		}
	}
}

func TestRankResultsLimitEdges(t *testing.T) {
	results := []SearchResult{{Path: "a", Score: 1}, {Path: "b", Score: 2}}

	if got := rankResults(append([]SearchResult(nil), results...), 0); len(got) != 0 {
		t.Fatalf("limit 0 must return nothing, got %d", len(got))
	}
	if got := rankResults(append([]SearchResult(nil), results...), -3); len(got) != 0 {
		t.Fatalf("negative limit must return nothing, got %d", len(got))
	}
	got := rankResults(append([]SearchResult(nil), results...), 10)
	if len(got) != 2 || got[0].Path != "b" {
		t.Fatalf("unexpected ranking %+v", got)
	}
}
