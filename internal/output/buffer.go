package output

import (
	"fmt"
	"strings"
)

// Buffer accumulates the output of a command. The zero value is ready to
// use.
type Buffer struct {
	out Output
}

// Write adds one line in the given style. Embedded newlines split the text
// into several lines of the same style.
func (b *Buffer) Write(style Style, text string) {
	for _, part := range strings.Split(text, "\n") {
		b.out.Lines = append(b.out.Lines, Line{Text: part, Style: style})
	}
}

// Writef is Write with formatting.
func (b *Buffer) Writef(style Style, format string, args ...any) {
	b.Write(style, fmt.Sprintf(format, args...))
}

// Println writes a plain line.
func (b *Buffer) Println(text string) { b.Write(Plain, text) }

// Blank writes an empty line.
func (b *Buffer) Blank() { b.out.Lines = append(b.out.Lines, Line{}) }

func (b *Buffer) Error(text string)   { b.Write(Error, text) }
func (b *Buffer) Info(text string)    { b.Write(Info, text) }
func (b *Buffer) Success(text string) { b.Write(Success, text) }
func (b *Buffer) Warning(text string) { b.Write(Warning, text) }

// Lines appends pre-built lines verbatim.
func (b *Buffer) Lines(lines ...Line) { b.out.Lines = append(b.out.Lines, lines...) }

// Clear requests a screen clear and drops anything written so far.
func (b *Buffer) Clear() { b.out = Output{Clear: true} }

// Len returns the number of buffered lines.
func (b *Buffer) Len() int { return len(b.out.Lines) }

// Output returns the accumulated output. The buffer must not be reused
// afterwards.
func (b *Buffer) Output() Output { return b.out }
