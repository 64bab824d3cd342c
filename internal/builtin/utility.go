package builtin

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/joeycumines/linkterm/internal/output"
	"github.com/joeycumines/linkterm/internal/shell"
	"github.com/joeycumines/linkterm/internal/theme"
)

const bannerWidth = 41

// banner writes a boxed title.
func banner(out *output.Buffer, style output.Style, title string) {
	out.Blank()
	out.Write(style, "╭"+strings.Repeat("─", bannerWidth)+"╮")
	out.Write(style, "│"+center(title, bannerWidth)+"│")
	out.Write(style, "╰"+strings.Repeat("─", bannerWidth)+"╯")
	out.Blank()
}

// HelpCommand lists commands by category, or describes one command.
type HelpCommand struct {
	*shell.BaseCommand
}

func NewHelpCommand() *HelpCommand {
	return &HelpCommand{shell.NewBaseCommand(
		"help",
		"Show this help message",
		"help [command]",
		shell.Utilities,
	)}
}

func (c *HelpCommand) Execute(s *shell.Session, inv shell.Invocation, out *output.Buffer) error {
	reg := s.Registry()
	if name := inv.Arg(0); name != "" {
		cmd, ok := reg.Lookup(name)
		if !ok {
			return cmd.Execute(s, inv, out)
		}
		out.Write(output.Heading, cmd.Name()+" - "+cmd.Description())
		out.Writef(output.Plain, "Usage: %s", cmd.Usage())
		if aliases := reg.AliasesOf(cmd.Name()); len(aliases) > 0 {
			out.Writef(output.Muted, "Aliases: %s", strings.Join(aliases, ", "))
		}
		return nil
	}

	cmds := reg.Commands()
	var width int
	for _, cmd := range cmds {
		width = max(width, uniseg.StringWidth(cmd.Name()))
	}
	width += 2

	banner(out, output.Success, "Available Commands")
	for _, cat := range shell.Categories() {
		var wrote bool
		for _, cmd := range cmds {
			if cmd.Category() != cat {
				continue
			}
			if !wrote {
				out.Write(output.Info, cat.String()+":")
				wrote = true
			}
			name := cmd.Name()
			out.Lines(output.Segmented(
				output.Segment{Text: "  "},
				output.Segment{Text: name + strings.Repeat(" ", width-uniseg.StringWidth(name)), Style: output.Warning},
				output.Segment{Text: cmd.Description()},
			))
		}
		if wrote {
			out.Blank()
		}
	}
	out.Write(output.Muted, "Type 'help <command>' for usage.")
	return nil
}

func (c *HelpCommand) CompleteArg(s *shell.Session, partial string) []string {
	var out []string
	for _, name := range s.Registry().Names() {
		if strings.HasPrefix(name, partial) {
			out = append(out, name)
		}
	}
	return out
}

// ClearCommand clears the display.
type ClearCommand struct {
	*shell.BaseCommand
}

func NewClearCommand() *ClearCommand {
	return &ClearCommand{shell.NewBaseCommand(
		"clear",
		"Clear the terminal",
		"clear",
		shell.Utilities,
	)}
}

func (c *ClearCommand) Execute(_ *shell.Session, _ shell.Invocation, out *output.Buffer) error {
	out.Clear()
	return nil
}

// ThemeCommand lists or switches colour themes.
type ThemeCommand struct {
	*shell.BaseCommand
}

func NewThemeCommand() *ThemeCommand {
	return &ThemeCommand{shell.NewBaseCommand(
		"theme",
		"Change terminal theme",
		"theme [name]",
		shell.Utilities,
	)}
}

func (c *ThemeCommand) Execute(s *shell.Session, inv shell.Invocation, out *output.Buffer) error {
	name := strings.ToLower(inv.Arg(0))
	if name == "" {
		banner(out, output.Info, "Available Themes")
		for _, n := range theme.Names() {
			th := theme.MustGet(n)
			marker := "  "
			if n == s.Theme() {
				marker = "* "
			}
			out.Lines(output.Segmented(
				output.Segment{Text: marker},
				output.Segment{Text: n + strings.Repeat(" ", max(1, 16-len(n))), Style: output.Warning},
				output.Segment{Text: th.Title()},
			))
			out.Write(output.Muted, strings.Repeat(" ", 18)+th.Description)
			out.Blank()
		}
		out.Lines(field("", "Usage:", "theme <name>"))
		out.Lines(field("", "Example:", "theme alien"))
		return nil
	}

	th, ok := theme.Get(name)
	if !ok {
		return shell.WithHint(
			fmt.Errorf("'%s' not found", name),
			"Available themes: "+strings.Join(theme.Names(), ", "),
		)
	}
	s.SetTheme(th.Name)
	out.Success("✓ Theme changed to '" + th.Title() + "'")
	if th.Animated {
		out.Info("Alien interface active: files are now typed out by cat.")
	}
	return nil
}

func (c *ThemeCommand) CompleteArg(_ *shell.Session, partial string) []string {
	var out []string
	for _, n := range theme.Names() {
		if strings.HasPrefix(n, partial) {
			out = append(out, n)
		}
	}
	return out
}

// ExitCommand asks the front-end to close.
type ExitCommand struct {
	*shell.BaseCommand
}

func NewExitCommand() *ExitCommand {
	return &ExitCommand{shell.NewBaseCommand(
		"exit",
		"Close terminal window",
		"exit",
		shell.Utilities,
	)}
}

func (c *ExitCommand) Execute(s *shell.Session, _ shell.Invocation, out *output.Buffer) error {
	out.Blank()
	out.Info("Closing terminal...")
	s.RequestExit()
	return nil
}
