package shell

import (
	"sort"
	"strings"
)

// Complete tab-completes line. The first token completes against command
// names; later tokens are offered to the command's ArgCompleter. With a
// single candidate the completed line is returned, otherwise line is
// returned unchanged along with every candidate (full lines).
func (s *Session) Complete(line string) (string, []string) {
	candidates := s.completions(line)
	if len(candidates) == 1 {
		return candidates[0], candidates
	}
	return line, candidates
}

func (s *Session) completions(line string) []string {
	parts := strings.Split(line, " ")
	if len(parts) == 1 {
		var out []string
		for _, name := range s.registry.Names() {
			if strings.HasPrefix(name, foldName(line)) {
				out = append(out, name)
			}
		}
		return out
	}
	cmd, ok := s.registry.Lookup(parts[0])
	if !ok {
		return nil
	}
	completer, ok := cmd.(ArgCompleter)
	if !ok {
		return nil
	}
	prefix := strings.Join(parts[:len(parts)-1], " ") + " "
	matches := completer.CompleteArg(s, parts[len(parts)-1])
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = prefix + m
	}
	return out
}

// EntriesWithPrefix lists names in the working directory starting with
// prefix, optionally only directories. Hidden entries are offered only when
// prefix itself starts with ".".
func (s *Session) EntriesWithPrefix(prefix string, dirsOnly bool) []string {
	fs := s.FS()
	dir, ok := fs.Lookup(s.cwd)
	if !ok {
		return nil
	}
	var out []string
	for _, id := range fs.Children(dir) {
		n := fs.Node(id)
		if dirsOnly && !n.IsDir() {
			continue
		}
		if strings.HasPrefix(n.Name, ".") && !strings.HasPrefix(prefix, ".") {
			continue
		}
		if strings.HasPrefix(n.Name, prefix) {
			out = append(out, n.Name)
		}
	}
	sort.Strings(out)
	return out
}
