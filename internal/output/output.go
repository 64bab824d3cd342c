// Package output defines the structured result of executing a terminal
// command: styled lines, or a signal to clear the display.
package output

import (
	"fmt"
	"strings"
)

// Style tags a line for the display sink. Sinks map tags to colours; the
// text itself never carries escape sequences.
type Style uint8

const (
	Plain Style = iota
	Directory
	Error
	Info
	Success
	Warning
	Accent
	Muted
	Heading
	Echo
)

var styleNames = [...]string{
	Plain:     "plain",
	Directory: "directory",
	Error:     "error",
	Info:      "info",
	Success:   "success",
	Warning:   "warning",
	Accent:    "accent",
	Muted:     "muted",
	Heading:   "heading",
	Echo:      "echo",
}

func (s Style) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return fmt.Sprintf("Style(%d)", uint8(s))
}

// Line is one row of output. A line built from Segments carries their
// concatenation in Text; Style then applies to any gaps a sink renders.
type Line struct {
	Text     string
	Style    Style
	Segments []Segment
}

// Segment is a styled run within a Line.
type Segment struct {
	Text  string
	Style Style
}

// Segmented joins segs into one line.
func Segmented(segs ...Segment) Line {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return Line{Text: b.String(), Segments: segs}
}

// Output is the result of one command. When Clear is set the sink discards
// everything displayed so far before rendering Lines. Failed is set by the
// interpreter when the command returned an error; line styles never imply it.
type Output struct {
	Clear  bool
	Failed bool
	Lines  []Line
}

// IsEmpty reports whether o has no effect on the display.
func (o Output) IsEmpty() bool { return !o.Clear && len(o.Lines) == 0 }

// Text joins the line texts with newlines, dropping styles.
func (o Output) Text() string {
	var b strings.Builder
	for i, l := range o.Lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.Text)
	}
	return b.String()
}

// ErrorLine returns an Output holding a single error line.
func ErrorLine(text string) Output {
	return Output{Lines: []Line{{Text: text, Style: Error}}}
}

// Append concatenates outputs in order. A clear in a later output discards
// the lines accumulated before it. The result failed if any output did.
func Append(outs ...Output) Output {
	var res Output
	for _, o := range outs {
		if o.Clear {
			res = Output{Clear: true, Failed: res.Failed}
		}
		res.Failed = res.Failed || o.Failed
		res.Lines = append(res.Lines, o.Lines...)
	}
	return res
}
