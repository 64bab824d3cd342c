package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joeycumines/linkterm/internal/command"
	"github.com/joeycumines/linkterm/internal/config"
)

// set via -ldflags at release time
var version = "0.1.0"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRegistry(cfg *config.Config) (*command.Registry, *command.HelpCommand) {
	registry := command.NewRegistry()
	help := command.NewHelpCommand(registry)
	registry.Register(help)
	registry.Register(command.NewVersionCommand(version))
	registry.Register(command.NewConfigCommand(cfg))
	registry.Register(command.NewInitCommand())
	registry.Register(command.NewRunCommand(cfg, version))
	registry.Register(command.NewScoresCommand(cfg))
	registry.Register(command.NewLogCommand(cfg))
	return registry, help
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	registry, help := newRegistry(cfg)

	// bare invocation, or only flags, starts the terminal
	cmdName := "run"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmdName, args = args[0], args[1:]
	} else if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
		return help.Execute(nil, stdout, stderr)
	}

	cmd, err := registry.Get(cmdName)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Unknown command: %s\n", cmdName)
		_, _ = fmt.Fprintln(stderr, "Use 'linkterm help' to see available commands.")
		return err
	}

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: linkterm %s\n", cmd.Usage())
		_, _ = fmt.Fprintf(stderr, "\n%s\n\n", cmd.Description())
		_, _ = fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
	}
	cmd.SetupFlags(fs)
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	return cmd.Execute(fs.Args(), stdout, stderr)
}
