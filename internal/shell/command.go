package shell

import (
	"fmt"

	"github.com/joeycumines/linkterm/internal/output"
)

// Category groups commands in help output.
type Category uint8

const (
	Navigation Category = iota
	SystemInfo
	Utilities
	Games
)

func (c Category) String() string {
	switch c {
	case Navigation:
		return "Navigation"
	case SystemInfo:
		return "System Info"
	case Utilities:
		return "Utilities"
	case Games:
		return "Games"
	default:
		return fmt.Sprintf("Category(%d)", uint8(c))
	}
}

// Categories lists every category in display order.
func Categories() []Category { return []Category{Navigation, SystemInfo, Utilities, Games} }

// Command is a terminal command.
type Command interface {
	// Name returns the command name.
	Name() string

	// Description returns a short description of the command.
	Description() string

	// Usage returns the usage string for the command.
	Usage() string

	// Category returns the help grouping.
	Category() Category

	// Execute runs the command against the session, writing to out. A
	// returned error is rendered as a single error line prefixed with the
	// command name.
	Execute(s *Session, inv Invocation, out *output.Buffer) error
}

// ArgCompleter is implemented by commands whose last argument can be
// tab-completed.
type ArgCompleter interface {
	CompleteArg(s *Session, partial string) []string
}

// BaseCommand provides a basic implementation that other commands can embed.
type BaseCommand struct {
	name        string
	description string
	usage       string
	category    Category
}

// NewBaseCommand creates a new BaseCommand.
func NewBaseCommand(name, description, usage string, category Category) *BaseCommand {
	return &BaseCommand{
		name:        name,
		description: description,
		usage:       usage,
		category:    category,
	}
}

// Name returns the command name.
func (c *BaseCommand) Name() string {
	return c.name
}

// Description returns the command description.
func (c *BaseCommand) Description() string {
	return c.description
}

// Usage returns the command usage.
func (c *BaseCommand) Usage() string {
	return c.usage
}

// Category returns the help grouping.
func (c *BaseCommand) Category() Category {
	return c.category
}

// UnknownCommand stands in for any name the registry does not know.
type UnknownCommand struct {
	name        string
	suggestions []string
}

func (c *UnknownCommand) Name() string        { return c.name }
func (c *UnknownCommand) Description() string { return "" }
func (c *UnknownCommand) Usage() string       { return "" }
func (c *UnknownCommand) Category() Category  { return Utilities }

// Execute always fails with a NotFoundError.
func (c *UnknownCommand) Execute(*Session, Invocation, *output.Buffer) error {
	return &NotFoundError{Name: c.name, Suggestions: c.suggestions}
}
