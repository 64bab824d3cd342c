package builtin

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/rivo/uniseg"

	"github.com/joeycumines/linkterm/internal/output"
	"github.com/joeycumines/linkterm/internal/shell"
	"github.com/joeycumines/linkterm/internal/theme"
	"github.com/joeycumines/linkterm/internal/vfs"
)

// WhoAmICommand prints the user and a short profile card.
type WhoAmICommand struct {
	*shell.BaseCommand
}

func NewWhoAmICommand() *WhoAmICommand {
	return &WhoAmICommand{shell.NewBaseCommand(
		"whoami",
		"Display user information",
		"whoami",
		shell.SystemInfo,
	)}
}

const cardWidth = 33

func (c *WhoAmICommand) Execute(s *shell.Session, _ shell.Invocation, out *output.Buffer) error {
	out.Write(output.Success, s.User())
	out.Blank()
	out.Write(output.Info, "    ╭"+strings.Repeat("─", cardWidth)+"╮")
	out.Write(output.Info, "    │"+center(strings.ToUpper(s.User()), cardWidth)+"│")
	out.Write(output.Info, "    │"+center("Visitor at "+s.Hostname(), cardWidth)+"│")
	out.Write(output.Info, "    ╰"+strings.Repeat("─", cardWidth)+"╯")
	out.Blank()
	for _, kv := range [][2]string{
		{"🏠 Home:", s.Resolver().Home().String()},
		{"📂 Working in:", s.DisplayPath()},
		{"🖥  Host:", s.Hostname()},
		{"🆔 Session:", s.ID()},
	} {
		out.Lines(field("  ", kv[0], kv[1]))
	}
	out.Blank()
	return nil
}

func field(indent, key, value string) output.Line {
	return output.Segmented(
		output.Segment{Text: indent},
		output.Segment{Text: key, Style: output.Success},
		output.Segment{Text: " " + value},
	)
}

// center pads text with spaces to width display cells.
func center(text string, width int) string {
	gap := width - uniseg.StringWidth(text)
	if gap <= 0 {
		return text
	}
	left := gap / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left)
}

// NeofetchCommand prints a logo beside system information.
type NeofetchCommand struct {
	*shell.BaseCommand
	version string
}

func NewNeofetchCommand(version string) *NeofetchCommand {
	if version == "" {
		version = "dev"
	}
	return &NeofetchCommand{
		BaseCommand: shell.NewBaseCommand(
			"neofetch",
			"Display system information",
			"neofetch",
			shell.SystemInfo,
		),
		version: version,
	}
}

var neofetchLogo = []string{
	"        .--.        ",
	"       |o_o |       ",
	"       |:_/ |       ",
	"      //   \\ \\      ",
	"     (|     | )     ",
	"    /'\\_   _/`\\     ",
	"    \\___)=(___/     ",
	"                    ",
	"     l i n k        ",
	"       t e r m      ",
}

func (c *NeofetchCommand) Execute(s *shell.Session, _ shell.Invocation, out *output.Buffer) error {
	title := s.User() + "@" + s.Hostname()
	var nodes int
	s.FS().Walk(vfs.RootID, func(vfs.NodeID) bool { nodes++; return true })
	info := [][2]string{
		{"", title},
		{"", strings.Repeat("-", uniseg.StringWidth(title))},
		{"OS:", "linkterm " + c.version},
		{"Kernel:", runtime.Version()},
		{"Platform:", runtime.GOOS + "/" + runtime.GOARCH},
		{"Shell:", "linkterm"},
		{"Theme:", theme.MustGet(s.Theme()).Title()},
		{"Terminal:", fmt.Sprintf("%d columns", s.Width())},
		{"Files:", fmt.Sprintf("%d nodes", nodes-1)},
		{"Uptime:", uptime(s.Now().Sub(s.Started()))},
	}
	for i := range max(len(neofetchLogo), len(info)) {
		var logo string
		if i < len(neofetchLogo) {
			logo = neofetchLogo[i]
		} else {
			logo = strings.Repeat(" ", uniseg.StringWidth(neofetchLogo[0]))
		}
		segs := []output.Segment{{Text: logo + "  ", Style: output.Directory}}
		if i < len(info) {
			switch kv := info[i]; {
			case kv[0] == "":
				segs = append(segs, output.Segment{Text: kv[1], Style: output.Success})
			default:
				segs = append(segs,
					output.Segment{Text: kv[0], Style: output.Warning},
					output.Segment{Text: " " + kv[1]},
				)
			}
		}
		out.Lines(output.Segmented(segs...))
	}
	return nil
}

func uptime(d time.Duration) string {
	secs := int(max(d, 0) / time.Second)
	h, m, sec := secs/3600, secs%3600/60, secs%60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, sec)
	default:
		return fmt.Sprintf("%ds", sec)
	}
}
