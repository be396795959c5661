package picker

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const footerText = "↑/↓ j/k move  Enter select  q/Esc cancel"

// Theme holds the picker colours.
type Theme struct {
	Title    tcell.Style
	Item     tcell.Style
	Index    tcell.Style
	Selected tcell.Style
	Footer   tcell.Style
}

// DefaultTheme matches the blue selection bar of the file browser view.
func DefaultTheme() Theme {
	base := tcell.StyleDefault
	return Theme{
		Title:    base.Bold(true),
		Item:     base,
		Index:    base.Foreground(tcell.ColorLightSlateGray),
		Selected: base.Background(tcell.Color33).Foreground(tcell.ColorWhite),
		Footer:   base.Foreground(tcell.ColorLightSlateGray),
	}
}

// listHeight is the number of rows left for items between title and footer.
func listHeight(screenHeight int) int {
	return screenHeight - 2
}

func (p *Picker) draw(screen tcell.Screen, m *model) {
	screen.Clear()
	w, h := screen.Size()

	title := fmt.Sprintf("%s (%d/%d)", p.title, m.selected+1, len(m.items))
	drawText(screen, 0, 0, w, title, p.theme.Title)

	rows := listHeight(h)
	for row := 0; row < rows; row++ {
		idx := m.offset + row
		if idx >= len(m.items) {
			break
		}
		y := row + 1
		style := p.theme.Item
		indexStyle := p.theme.Index
		if idx == m.selected {
			style = p.theme.Selected
			indexStyle = p.theme.Selected
			for x := 0; x < w; x++ {
				screen.SetContent(x, y, ' ', nil, style)
			}
		}
		x := drawText(screen, 0, y, w, fmt.Sprintf("%2d ", idx+1), indexStyle)
		drawText(screen, x, y, w-x, runewidth.Truncate(m.items[idx], w-x, "…"), style)
	}

	if h > 1 {
		drawText(screen, 0, h-1, w, footerText, p.theme.Footer)
	}
	screen.Show()
}

// drawText writes text from startX and returns the column after the last
// cell written. Zero-width runes are attached to the preceding cell.
func drawText(screen tcell.Screen, startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		if x-startX >= maxWidth {
			break
		}
		mainc := runes[i]
		i++

		var combc []rune
		for i < len(runes) && runewidth.RuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}

		width := runewidth.RuneWidth(mainc)
		if width < 1 {
			width = 1
		}
		if x-startX+width > maxWidth {
			break
		}
		screen.SetContent(x, y, mainc, combc, style)
		x += width
	}
	return x
}
