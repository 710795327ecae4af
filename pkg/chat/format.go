package chat

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// colors maps chat color names to the 16 standard terminal colors.
// 0-7 render as SGR 30-37, 8-15 as SGR 90-97.
var colors = map[string]lipgloss.ANSIColor{
	"black":        0,
	"dark_red":     1,
	"dark_green":   2,
	"gold":         3,
	"dark_blue":    4,
	"dark_purple":  5,
	"dark_aqua":    6,
	"gray":         7,
	"dark_gray":    8,
	"red":          9,
	"green":        10,
	"yellow":       11,
	"blue":         12,
	"light_purple": 13,
	"aqua":         14,
	"white":        15,
}

// Formatter renders messages as terminal text. The zero value is not usable;
// construct with NewFormatter.
type Formatter struct {
	renderer *lipgloss.Renderer
}

// NewFormatter returns a Formatter that always emits ANSI escapes, whatever
// w is connected to.
func NewFormatter(w io.Writer) *Formatter {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI)
	return &Formatter{renderer: r}
}

// Format renders m with its style. Styling is reset at the end of the line.
func (f *Formatter) Format(m Message) string {
	if m.Text == "" {
		return ""
	}
	style := f.renderer.NewStyle().
		Bold(m.Style.Bold).
		Italic(m.Style.Italic).
		Underline(m.Style.Underlined).
		Strikethrough(m.Style.Strikethrough)
	if c, ok := colors[m.Style.Color]; ok {
		style = style.Foreground(c)
	}
	return style.Render(m.Text)
}
