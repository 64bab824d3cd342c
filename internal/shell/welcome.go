package shell

import (
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/joeycumines/linkterm/internal/output"
)

// Welcome renders the banner shown when the terminal opens.
func (s *Session) Welcome() output.Output {
	inner := min(53, max(40, s.width-8))
	pad := func(text string) string {
		gap := max(0, inner-uniseg.StringWidth(text))
		left := gap / 2
		return "│" + strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left) + "│"
	}

	greeting := "Good evening"
	switch hour := s.now().Hour(); {
	case hour < 12:
		greeting = "Good morning"
	case hour < 18:
		greeting = "Good afternoon"
	}

	var b output.Buffer
	b.Write(output.Accent, "╭"+strings.Repeat("─", inner)+"╮")
	b.Write(output.Success, pad("✨ linkterm ✨"))
	b.Write(output.Accent, pad(""))
	b.Write(output.Plain, pad(greeting+", welcome to "+s.hostname))
	b.Write(output.Plain, pad("A tiny filesystem to explore and a few games"))
	b.Write(output.Accent, pad(""))
	b.Write(output.Info, pad("Type help to list commands, games for games"))
	b.Write(output.Accent, pad(""))
	b.Write(output.Muted, pad("Session: "+strconv.Itoa(len(s.history))+" commands | CWD: "+s.DisplayPath()))
	b.Write(output.Accent, "╰"+strings.Repeat("─", inner)+"╯")
	b.Blank()
	return b.Output()
}
