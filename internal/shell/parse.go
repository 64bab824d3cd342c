package shell

import "strings"

// Invocation is one parsed command line.
type Invocation struct {
	// Line is the trimmed input.
	Line string
	// Name is the lower-cased first token.
	Name string
	// Args are positional arguments in order.
	Args []string
	// Flags are the tokens starting with "-", in order.
	Flags []string
}

// ParseLine splits line on spaces. It returns false for blank input.
func ParseLine(line string) (Invocation, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Invocation{}, false
	}
	var tokens []string
	for _, tok := range strings.Split(line, " ") {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	inv := Invocation{Line: line, Name: foldName(tokens[0])}
	for _, tok := range tokens[1:] {
		if strings.HasPrefix(tok, "-") {
			inv.Flags = append(inv.Flags, tok)
		} else {
			inv.Args = append(inv.Args, tok)
		}
	}
	return inv, true
}

// HasFlag reports whether a flag selects the short letter (alone or
// bundled, as in "-la") or the long name ("--all").
func (inv Invocation) HasFlag(short rune, long string) bool {
	for _, f := range inv.Flags {
		if rest, ok := strings.CutPrefix(f, "--"); ok {
			if long != "" && rest == long {
				return true
			}
			continue
		}
		if short != 0 && strings.ContainsRune(f[1:], short) {
			return true
		}
	}
	return false
}

// Arg returns the i'th positional argument, or "".
func (inv Invocation) Arg(i int) string {
	if i < len(inv.Args) {
		return inv.Args[i]
	}
	return ""
}
