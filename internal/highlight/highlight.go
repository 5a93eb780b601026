// Package highlight renders C source for the terminal with Chroma.
package highlight

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"
)

// Highlight returns an ANSI-highlighted version of C source using the given
// Chroma theme. The theme background is re-applied after every reset so it
// is never lost mid-line.
func Highlight(text, theme string) string {
	lex := lexers.Get("c")
	if lex == nil {
		return text
	}
	lex = chroma.Coalesce(lex)
	fmtr := formatters.Get("terminal16m")
	if fmtr == nil {
		fmtr = formatters.Fallback
	}
	it, err := lex.Tokenise(nil, text)
	if err != nil {
		return text
	}
	var buf strings.Builder
	if err := fmtr.Format(&buf, styles.Get(theme), it); err != nil {
		return text
	}
	raw := strings.TrimRight(buf.String(), "\n")

	bg := styles.Get(theme).Get(chroma.Background).Background
	if !bg.IsSet() {
		return raw
	}
	seq := fmt.Sprintf("\x1b[48;2;%d;%d;%dm", bg.Red(), bg.Green(), bg.Blue())
	return seq + strings.ReplaceAll(raw, "\x1b[0m", "\x1b[0m"+seq) + "\x1b[0m"
}

// Excerpt highlights the lines of src within radius of line (1-indexed),
// numbers them, marks line with '>' and truncates each to width columns.
// Lines are highlighted one at a time, so a comment opened above the
// excerpt is not carried into it.
func Excerpt(src []byte, line, radius, width int, theme string) string {
	lines := strings.Split(strings.TrimRight(string(src), "\n"), "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	from := max(line-radius, 1)
	to := min(line+radius, len(lines))
	numWidth := len(fmt.Sprint(to))

	var b strings.Builder
	for n := from; n <= to; n++ {
		mark := " "
		if n == line {
			mark = ">"
		}
		prefix := fmt.Sprintf("%s %*d | ", mark, numWidth, n)
		b.WriteString(ansi.Truncate(prefix+Highlight(lines[n-1], theme), width, "…"))
		b.WriteString("\x1b[0m\n")
	}
	return b.String()
}

// Palette holds CLI colors derived from a Chroma theme.
type Palette struct {
	Fg     string
	Dim    string // 40% from bg toward fg
	Accent string // most saturated token color
	Error  string
}

// ThemePalette derives CLI colors from a Chroma theme name. The same theme
// always yields the same palette.
func ThemePalette(theme string) Palette {
	sty := styles.Get(theme)
	entry := sty.Get(chroma.Background)
	bg, fg := chroma.NewColour(0, 0, 0), chroma.NewColour(0xc8, 0xc8, 0xc8)
	if entry.Background.IsSet() {
		bg = entry.Background
	}
	if entry.Colour.IsSet() {
		fg = entry.Colour
	}

	p := Palette{
		Fg:     fg.String(),
		Dim:    mix(bg, fg, 0.40).String(),
		Accent: pickAccent(sty, fg).String(),
		Error:  fg.String(),
	}
	if e := sty.Get(chroma.Error); e.Colour.IsSet() {
		p.Error = e.Colour.String()
	}
	return p
}

// pickAccent returns the most saturated foreground color across all tokens.
func pickAccent(sty *chroma.Style, fallback chroma.Colour) chroma.Colour {
	best, bestSat := fallback, 0.0
	for tt := chroma.TokenType(0); tt < 2000; tt++ {
		e := sty.Get(tt)
		if !e.Colour.IsSet() {
			continue
		}
		if sat := saturation(e.Colour); sat > bestSat {
			best, bestSat = e.Colour, sat
		}
	}
	return best
}

func saturation(c chroma.Colour) float64 {
	r, g, b := float64(c.Red()), float64(c.Green()), float64(c.Blue())
	hi := max(r, g, b)
	if hi == 0 {
		return 0
	}
	return (hi - min(r, g, b)) / hi
}

// mix moves from a toward b by fraction t.
func mix(a, b chroma.Colour, t float64) chroma.Colour {
	ch := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return chroma.NewColour(ch(a.Red(), b.Red()), ch(a.Green(), b.Green()), ch(a.Blue(), b.Blue()))
}
