package display

import (
	"strings"

	"github.com/fatih/color"
)

// Palette assigns a colour to every element the printer draws. A nil entry
// prints text unchanged.
type Palette struct {
	Index       *color.Color
	Path        *color.Color
	Directory   *color.Color
	ContentTag  *color.Color
	HybridTag   *color.Color
	Detail      *color.Color
	Score       *color.Color
	LineNumber  *color.Color
	Preview     *color.Color
	Heading     *color.Color
	Accent      *color.Color
	Value       *color.Color
	Success     *color.Color
	Error       *color.Color
	Hint        *color.Color
	Emphasis    *color.Color
	FlagName    *color.Color
	Placeholder *color.Color
}

// DefaultPalette is the colour scheme used for the "default" theme.
func DefaultPalette() Palette {
	return Palette{
		Index:       color.New(color.FgHiBlue, color.Bold),
		Path:        color.New(color.FgWhite),
		Directory:   color.New(color.FgHiBlue),
		ContentTag:  color.New(color.FgGreen),
		HybridTag:   color.New(color.FgYellow),
		Detail:      color.New(color.Faint),
		Score:       color.New(color.FgHiBlack),
		LineNumber:  color.New(color.FgBlue),
		Preview:     color.New(color.Faint),
		Heading:     color.New(color.FgYellow, color.Bold),
		Accent:      color.New(color.FgCyan),
		Value:       color.New(color.FgHiWhite, color.Bold),
		Success:     color.New(color.FgHiGreen, color.Bold),
		Error:       color.New(color.FgHiRed),
		Hint:        color.New(color.Faint),
		Emphasis:    color.New(color.FgRed, color.Bold),
		FlagName:    color.New(color.FgBlue),
		Placeholder: color.New(color.FgWhite),
	}
}

// PlainPalette disables colour entirely.
func PlainPalette() Palette {
	return Palette{}
}

// PaletteFor resolves the configured color_theme. Unknown themes fall back to
// the default palette; colour is off whenever enabled is false.
func PaletteFor(theme string, enabled bool) Palette {
	if !enabled {
		return PlainPalette()
	}
	switch strings.ToLower(strings.TrimSpace(theme)) {
	case "none", "plain", "mono", "off":
		return PlainPalette()
	case "bright":
		p := DefaultPalette()
		p.Path = color.New(color.FgHiWhite)
		p.Accent = color.New(color.FgHiCyan)
		p.Preview = color.New(color.FgWhite)
		return p
	default:
		return DefaultPalette()
	}
}

func render(c *color.Color, text string) string {
	if c == nil || text == "" {
		return text
	}
	return c.Sprint(text)
}
