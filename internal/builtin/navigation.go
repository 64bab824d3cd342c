package builtin

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/joeycumines/linkterm/internal/output"
	"github.com/joeycumines/linkterm/internal/shell"
	"github.com/joeycumines/linkterm/internal/vfs"
)

// LSCommand lists a directory, or names a single file.
type LSCommand struct {
	*shell.BaseCommand
}

func NewLSCommand() *LSCommand {
	return &LSCommand{shell.NewBaseCommand(
		"ls",
		"List directory contents",
		"ls [-l|--long] [-a|--all] [path]",
		shell.Navigation,
	)}
}

func (c *LSCommand) Execute(s *shell.Session, inv shell.Invocation, out *output.Buffer) error {
	long := inv.HasFlag('l', "long")
	all := inv.HasFlag('a', "all")
	target := inv.Arg(0)

	_, id, err := s.Resolver().Resolve(s.CurrentPath(), target)
	if err != nil {
		if target == "" {
			target = s.DisplayPath()
		}
		return &describedError{prefix: "cannot access '" + target + "': ", err: err}
	}
	fs := s.FS()
	n := fs.Node(id)
	if !n.IsDir() {
		writeEntries(s, out, []vfs.Node{n}, long)
		return nil
	}

	// Children arrive in name order; directories are listed first.
	var dirs, files []vfs.Node
	for _, child := range fs.Children(id) {
		cn := fs.Node(child)
		if !all && strings.HasPrefix(cn.Name, ".") {
			continue
		}
		if cn.IsDir() {
			dirs = append(dirs, cn)
		} else {
			files = append(files, cn)
		}
	}
	writeEntries(s, out, append(dirs, files...), long)
	return nil
}

func (c *LSCommand) CompleteArg(s *shell.Session, partial string) []string {
	return s.EntriesWithPrefix(partial, false)
}

func entryStyle(n vfs.Node) output.Style {
	if n.IsDir() {
		return output.Directory
	}
	return output.Plain
}

func writeEntries(s *shell.Session, out *output.Buffer, nodes []vfs.Node, long bool) {
	if len(nodes) == 0 {
		return
	}
	if long {
		who := owner(s)
		for _, n := range nodes {
			kind := "-"
			if n.IsDir() {
				kind = "d"
			}
			meta := fmt.Sprintf("%srwxr-xr-x 1 %s staff %8d %s ", kind, who, n.Size, n.Modified)
			out.Lines(output.Segmented(
				output.Segment{Text: meta},
				output.Segment{Text: n.Name, Style: entryStyle(n)},
			))
		}
		return
	}

	var widest int
	for _, n := range nodes {
		widest = max(widest, uniseg.StringWidth(n.Name))
	}
	colWidth := widest + 2
	columns := max(1, s.Width()/colWidth)
	for i := 0; i < len(nodes); i += columns {
		row := nodes[i:min(i+columns, len(nodes))]
		segs := make([]output.Segment, 0, len(row))
		for j, n := range row {
			text := n.Name
			if j < len(row)-1 {
				text += strings.Repeat(" ", colWidth-uniseg.StringWidth(n.Name))
			}
			segs = append(segs, output.Segment{Text: text, Style: entryStyle(n)})
		}
		out.Lines(output.Segmented(segs...))
	}
}

// CDCommand changes the working directory.
type CDCommand struct {
	*shell.BaseCommand
}

func NewCDCommand() *CDCommand {
	return &CDCommand{shell.NewBaseCommand(
		"cd",
		"Change directory",
		"cd [path]",
		shell.Navigation,
	)}
}

func (c *CDCommand) Execute(s *shell.Session, inv shell.Invocation, out *output.Buffer) error {
	p, err := s.Resolver().ResolveDir(s.CurrentPath(), inv.Arg(0))
	if err != nil {
		return err
	}
	s.SetCurrentPath(p)
	return nil
}

func (c *CDCommand) CompleteArg(s *shell.Session, partial string) []string {
	return s.EntriesWithPrefix(partial, true)
}

// PWDCommand prints the absolute working directory.
type PWDCommand struct {
	*shell.BaseCommand
}

func NewPWDCommand() *PWDCommand {
	return &PWDCommand{shell.NewBaseCommand(
		"pwd",
		"Print working directory",
		"pwd",
		shell.Navigation,
	)}
}

func (c *PWDCommand) Execute(s *shell.Session, _ shell.Invocation, out *output.Buffer) error {
	out.Write(output.Warning, s.CurrentPath().String())
	return nil
}
