package shell

import (
	"fmt"
	"sort"

	"golang.org/x/text/cases"
)

// Registry maps command names to handlers. Lookups are case-insensitive.
type Registry struct {
	commands map[string]Command
	aliases  map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		aliases:  make(map[string]string),
	}
}

func foldName(name string) string {
	// Caser values are stateful, so one per call.
	return cases.Fold().String(name)
}

// Register adds cmd. Names must be unique across commands and aliases.
func (r *Registry) Register(cmd Command) error {
	name := foldName(cmd.Name())
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if r.taken(name) {
		return fmt.Errorf("command %q already registered", name)
	}
	r.commands[name] = cmd
	return nil
}

// MustRegister is Register for static tables; it panics on conflict.
func (r *Registry) MustRegister(cmds ...Command) {
	for _, cmd := range cmds {
		if err := r.Register(cmd); err != nil {
			panic(err)
		}
	}
}

// Alias makes alias resolve to the registered command target.
func (r *Registry) Alias(alias, target string) error {
	alias, target = foldName(alias), foldName(target)
	if _, ok := r.commands[target]; !ok {
		return fmt.Errorf("alias %q: unknown command %q", alias, target)
	}
	if r.taken(alias) {
		return fmt.Errorf("command %q already registered", alias)
	}
	r.aliases[alias] = target
	return nil
}

func (r *Registry) taken(name string) bool {
	_, cmd := r.commands[name]
	_, alias := r.aliases[name]
	return cmd || alias
}

// Lookup returns the command for name. On a miss it returns an
// *UnknownCommand carrying suggestions, and false.
func (r *Registry) Lookup(name string) (Command, bool) {
	key := foldName(name)
	if target, ok := r.aliases[key]; ok {
		key = target
	}
	if cmd, ok := r.commands[key]; ok {
		return cmd, true
	}
	return &UnknownCommand{name: name, suggestions: Suggest(key, r.Names(), 2)}, false
}

// Commands returns the registered commands sorted by name.
func (r *Registry) Commands() []Command {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Command, len(names))
	for i, name := range names {
		out[i] = r.commands[name]
	}
	return out
}

// Names returns every command name and alias, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands)+len(r.aliases))
	for name := range r.commands {
		names = append(names, name)
	}
	for name := range r.aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AliasesOf returns the aliases that resolve to name, sorted.
func (r *Registry) AliasesOf(name string) []string {
	name = foldName(name)
	var out []string
	for alias, target := range r.aliases {
		if target == name {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}
