package app

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fsutil "github.com/kk-code-lab/ff/internal/fs"
	"github.com/kk-code-lab/ff/internal/search"
)

type fakePicker struct {
	items  []string
	choice int
	ok     bool
	err    error
}

func (p *fakePicker) Pick(items []string) (int, bool, error) {
	p.items = items
	return p.choice, p.ok, p.err
}

func sampleResults(paths ...string) []search.SearchResult {
	results := make([]search.SearchResult, len(paths))
	for i, p := range paths {
		results[i] = search.SearchResult{Path: p, Entry: fsutil.Entry{Name: p[strings.LastIndex(p, "/")+1:]}}
	}
	return results
}

func TestPromptSelect(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr error
	}{
		{name: "valid", input: "3\n", want: 2},
		{name: "whitespace", input: "  1 \n", want: 0},
		{name: "answer without newline", input: "2", want: 1},
		{name: "quit", input: "q\n", wantErr: ErrSelectionCancelled},
		{name: "exit uppercase", input: "EXIT\n", wantErr: ErrSelectionCancelled},
		{name: "eof", input: "", wantErr: ErrSelectionCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := PromptSelect(strings.NewReader(tt.input), &out, 3)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPromptSelectRepromptsOnInvalidInput(t *testing.T) {
	var out bytes.Buffer
	got, err := PromptSelect(strings.NewReader("abc\n9\n2\n"), &out, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
	assert.Equal(t, 2, strings.Count(out.String(), "Invalid selection"))
}

func TestSelectorSingleResultIsAutoSelected(t *testing.T) {
	var out bytes.Buffer
	picker := &fakePicker{}
	got, err := Selector{Picker: picker, Out: &out}.Select(sampleResults("/a/only.go"))
	require.NoError(t, err)
	assert.Equal(t, "/a/only.go", got.Path)
	assert.Nil(t, picker.items)
	assert.Contains(t, out.String(), "Auto-selecting the only match")
}

func TestSelectorUsesPicker(t *testing.T) {
	picker := &fakePicker{choice: 1, ok: true}
	results := sampleResults("/a/one.go", "/a/two.rs")

	got, err := Selector{Picker: picker, Out: &bytes.Buffer{}}.Select(results)
	require.NoError(t, err)
	assert.Equal(t, "/a/two.rs", got.Path)
	assert.Equal(t, []string{"🐹 /a/one.go", "🦀 /a/two.rs"}, picker.items)

	picker = &fakePicker{ok: false}
	_, err = Selector{Picker: picker, Out: &bytes.Buffer{}}.Select(results)
	assert.ErrorIs(t, err, ErrSelectionCancelled)
}

func TestSelectorFallsBackToPrompt(t *testing.T) {
	picker := &fakePicker{err: errors.New("no tty")}
	var out bytes.Buffer
	got, err := Selector{Picker: picker, In: strings.NewReader("1\n"), Out: &out}.Select(sampleResults("/a/one.go", "/a/two.rs"))
	require.NoError(t, err)
	assert.Equal(t, "/a/one.go", got.Path)
	assert.Contains(t, out.String(), "Enter number (1-2)")
}

func TestSelectorNoResults(t *testing.T) {
	_, err := Selector{Out: &bytes.Buffer{}}.Select(nil)
	assert.ErrorIs(t, err, ErrSelectionCancelled)
}
