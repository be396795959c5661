package search

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	fsutil "github.com/kk-code-lab/ff/internal/fs"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestScanContentReportsOverlappingOccurrences(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", []byte("aaa\n"))

	matches, err := ScanContent(path, "aa", MatchExact)
	if err != nil {
		t.Fatalf("ScanContent: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 overlapping matches, got %d: %+v", len(matches), matches)
	}
	if matches[0].Start != 0 || matches[1].Start != 1 {
		t.Fatalf("unexpected starts: %d, %d", matches[0].Start, matches[1].Start)
	}
	for _, m := range matches {
		if m.End-m.Start != 2 || m.LineNumber != 1 || m.Line != "aaa" {
			t.Fatalf("unexpected match %+v", m)
		}
	}
}

func TestScanContentLineNumbersAndCase(t *testing.T) {
	body := "first line\r\nTODO: one\nnothing here\nsee todo and TODO\n"
	path := writeFile(t, t.TempDir(), "notes.md", []byte(body))

	matches, err := ScanContent(path, "todo", MatchFuzzy)
	if err != nil {
		t.Fatalf("ScanContent: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d: %+v", len(matches), matches)
	}

	if matches[0].LineNumber != 2 || matches[0].Start != 0 || matches[0].End != 4 {
		t.Fatalf("unexpected first match %+v", matches[0])
	}
	for _, m := range matches[1:] {
		if m.LineNumber != 4 {
			t.Fatalf("expected line 4, got %+v", m)
		}
		if got := strings.ToLower(m.Line[m.Start:m.End]); got != "todo" {
			t.Fatalf("offsets do not select the occurrence: %q", got)
		}
	}
	if strings.HasSuffix(matches[0].Line, "\r") {
		t.Fatalf("line ending not trimmed: %q", matches[0].Line)
	}
}

func TestScanContentFuzzyOnlyLineHasNoRecords(t *testing.T) {
	path := writeFile(t, t.TempDir(), "f.txt", []byte("t o d o\n"))

	matches, err := ScanContent(path, "todo", MatchFuzzy)
	if err != nil {
		t.Fatalf("ScanContent: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("subsequence-only line must not produce records, got %+v", matches)
	}
}

func TestScanContentExactIgnoresSubsequence(t *testing.T) {
	path := writeFile(t, t.TempDir(), "f.txt", []byte("t o d o\nxx todo\n"))

	matches, err := ScanContent(path, "todo", MatchExact)
	if err != nil {
		t.Fatalf("ScanContent: %v", err)
	}
	if len(matches) != 1 || matches[0].LineNumber != 2 || matches[0].Start != 3 {
		t.Fatalf("unexpected matches %+v", matches)
	}
}

func TestScanContentDecodesUTF16(t *testing.T) {
	data := []byte{0xFF, 0xFE}
	for _, r := range "line\nhas TODO\n" {
		data = append(data, byte(r), 0x00)
	}
	path := writeFile(t, t.TempDir(), "utf16.txt", data)

	matches, err := ScanContent(path, "todo", MatchFuzzy)
	if err != nil {
		t.Fatalf("ScanContent: %v", err)
	}
	if len(matches) != 1 || matches[0].LineNumber != 2 || matches[0].Start != 4 {
		t.Fatalf("unexpected matches %+v", matches)
	}
}

func TestScanContentRejectsInvalidUTF8(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.txt", []byte("todo\n\xff\xfe\xfd broken todo\n"))

	matches, err := ScanContent(path, "todo", MatchFuzzy)
	if !errors.Is(err, ErrInvalidText) {
		t.Fatalf("expected ErrInvalidText, got %v", err)
	}
	if matches != nil {
		t.Fatalf("matches must be discarded on decode failure, got %+v", matches)
	}
}

func TestScanContentRejectsBinary(t *testing.T) {
	path := writeFile(t, t.TempDir(), "blob.txt", []byte("todo\x00\x01\x02"))

	_, err := ScanContent(path, "todo", MatchFuzzy)
	if !errors.Is(err, fsutil.ErrBinaryContent) {
		t.Fatalf("expected ErrBinaryContent, got %v", err)
	}
}

func TestScanContentMissingFile(t *testing.T) {
	if _, err := ScanContent(filepath.Join(t.TempDir(), "missing.txt"), "x", MatchExact); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestScanContentWithoutTrailingNewline(t *testing.T) {
	path := writeFile(t, t.TempDir(), "f.txt", []byte("one\ntwo foo"))

	matches, err := ScanContent(path, "foo", MatchExact)
	if err != nil {
		t.Fatalf("ScanContent: %v", err)
	}
	if len(matches) != 1 || matches[0].LineNumber != 2 || matches[0].Line != "two foo" {
		t.Fatalf("unexpected matches %+v", matches)
	}
}
