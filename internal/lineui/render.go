package lineui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/joeycumines/linkterm/internal/output"
)

// clearScreen homes the cursor and erases the display.
const clearScreen = "\x1b[H\x1b[2J"

// Renderer writes outputs as plain terminal lines, coloured with the basic
// ANSI palette. Themes only apply to the full-screen front-end.
type Renderer struct {
	w       io.Writer
	noColor bool
	colors  map[output.Style]*color.Color
}

// NewRenderer returns a Renderer writing to w. With noColor set no escape
// sequences are written at all, and Clear is ignored.
func NewRenderer(w io.Writer, noColor bool) *Renderer {
	r := &Renderer{
		w:       w,
		noColor: noColor,
		colors: map[output.Style]*color.Color{
			output.Directory: color.New(color.FgBlue, color.Bold),
			output.Error:     color.New(color.FgRed),
			output.Info:      color.New(color.FgCyan),
			output.Success:   color.New(color.FgGreen),
			output.Warning:   color.New(color.FgYellow),
			output.Accent:    color.New(color.FgMagenta),
			output.Muted:     color.New(color.FgHiBlack),
			output.Heading:   color.New(color.FgHiWhite, color.Bold),
			output.Echo:      color.New(color.FgWhite),
		},
	}
	for _, c := range r.colors {
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return r
}

// Line renders one line without a trailing newline.
func (r *Renderer) Line(l output.Line) string {
	if len(l.Segments) == 0 {
		return r.paint(l.Style, l.Text)
	}
	var b strings.Builder
	for _, seg := range l.Segments {
		b.WriteString(r.paint(seg.Style, seg.Text))
	}
	return b.String()
}

func (r *Renderer) paint(style output.Style, text string) string {
	c, ok := r.colors[style]
	if !ok || text == "" {
		return text
	}
	return c.Sprint(text)
}

// Render writes every line of out, clearing the screen first if asked to.
func (r *Renderer) Render(out output.Output) error {
	var b strings.Builder
	if out.Clear && !r.noColor {
		b.WriteString(clearScreen)
	}
	for _, l := range out.Lines {
		b.WriteString(r.Line(l))
		b.WriteByte('\n')
	}
	if b.Len() == 0 {
		return nil
	}
	if _, err := io.WriteString(r.w, b.String()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
