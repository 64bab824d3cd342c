// Package command implements the linkterm CLI subcommands.
package command

import (
	"flag"
	"io"
)

// Command is one CLI subcommand.
type Command interface {
	Name() string
	Description() string
	Usage() string

	// SetupFlags registers the command's flags on fs before parsing.
	SetupFlags(fs *flag.FlagSet)

	// Execute runs the command with the arguments left after flag parsing.
	Execute(args []string, stdout, stderr io.Writer) error
}

// BaseCommand provides the descriptive half of Command for embedding.
type BaseCommand struct {
	name        string
	description string
	usage       string
}

// NewBaseCommand creates a new BaseCommand.
func NewBaseCommand(name, description, usage string) *BaseCommand {
	return &BaseCommand{
		name:        name,
		description: description,
		usage:       usage,
	}
}

func (c *BaseCommand) Name() string        { return c.name }
func (c *BaseCommand) Description() string { return c.description }
func (c *BaseCommand) Usage() string       { return c.usage }

// SetupFlags registers nothing. Commands with flags override it.
func (c *BaseCommand) SetupFlags(*flag.FlagSet) {}
