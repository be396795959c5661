package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kk-code-lab/ff/internal/display"
	"github.com/kk-code-lab/ff/internal/search"
)

// ErrSelectionCancelled is returned when the user quits the selection.
var ErrSelectionCancelled = errors.New("selection cancelled")

// Picker chooses one of items interactively. An error means the picker could
// not run at all and the caller should fall back to the line prompt.
type Picker interface {
	Pick(items []string) (int, bool, error)
}

// Selector resolves which result an action applies to.
type Selector struct {
	Picker Picker
	In     io.Reader
	Out    io.Writer
}

// Select returns the chosen result. A single result is chosen without asking.
func (s Selector) Select(results []search.SearchResult) (search.SearchResult, error) {
	switch len(results) {
	case 0:
		return search.SearchResult{}, ErrSelectionCancelled
	case 1:
		_, _ = fmt.Fprintln(s.Out, "\nAuto-selecting the only match...")
		return results[0], nil
	}

	if s.Picker != nil {
		idx, ok, err := s.Picker.Pick(pickerItems(results))
		if err == nil {
			if !ok {
				return search.SearchResult{}, ErrSelectionCancelled
			}
			return results[idx], nil
		}
	}

	idx, err := PromptSelect(s.In, s.Out, len(results))
	if err != nil {
		return search.SearchResult{}, err
	}
	return results[idx], nil
}

func pickerItems(results []search.SearchResult) []string {
	items := make([]string, len(results))
	for i, r := range results {
		items[i] = display.Icon(r) + " " + r.Path
	}
	return items
}

// PromptSelect asks for a 1-based number on in until a valid answer, q, quit
// or exit is read. It returns the 0-based index.
func PromptSelect(in io.Reader, out io.Writer, count int) (int, error) {
	reader := bufio.NewReader(in)
	_, _ = fmt.Fprintln(out)
	for {
		_, _ = fmt.Fprintf(out, "❓ Enter number (1-%d) or 'q' to quit: ", count)

		line, err := reader.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		switch answer {
		case "q", "quit", "exit":
			_, _ = fmt.Fprintln(out, "Selection cancelled")
			return 0, ErrSelectionCancelled
		}
		if n, convErr := strconv.Atoi(answer); convErr == nil && n >= 1 && n <= count {
			return n - 1, nil
		}
		if err != nil {
			// EOF before a valid answer.
			return 0, ErrSelectionCancelled
		}
		_, _ = fmt.Fprintf(out, "❌ Invalid selection. Please enter a number between 1-%d or 'q' to quit.\n", count)
	}
}
