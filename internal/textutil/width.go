package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const DefaultTabWidth = 4

// Ellipsis is appended to lines shortened by Truncate.
const Ellipsis = "..."

// ExpandTabs replaces tab characters with spaces respecting terminal column width.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var b strings.Builder
	column := 0
	for _, r := range text {
		if r == '\t' {
			spaces := tabWidth - column%tabWidth
			b.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		b.WriteRune(r)
		column += max(runewidth.RuneWidth(r), 1)
	}
	return b.String()
}

// DisplayWidth reports the number of terminal cells text occupies.
func DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// Truncate shortens text to at most maxWidth cells, ending it with Ellipsis
// when anything was cut. A maxWidth of zero or less disables truncation.
func Truncate(text string, maxWidth int) string {
	if maxWidth <= 0 || runewidth.StringWidth(text) <= maxWidth {
		return text
	}
	if maxWidth <= len(Ellipsis) {
		return runewidth.Truncate(text, maxWidth, "")
	}
	return runewidth.Truncate(text, maxWidth, Ellipsis)
}

// PadRight pads text with spaces to width cells.
func PadRight(text string, width int) string {
	return runewidth.FillRight(text, width)
}
