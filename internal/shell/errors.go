package shell

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownCommand is matched by NotFoundError.
	ErrUnknownCommand = errors.New("command not found")
	// ErrMissingArgument is matched by errors from MissingArgument.
	ErrMissingArgument = errors.New("missing argument")
)

// NotFoundError reports a command name with no registered handler.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Command not found: %s. Type 'help' for available commands.", e.Name)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrUnknownCommand }

// Hint lists similar command names, if any.
func (e *NotFoundError) Hint() string {
	if len(e.Suggestions) == 0 {
		return ""
	}
	return "Did you mean: " + strings.Join(e.Suggestions, ", ") + "?"
}

type missingArgError struct{ what string }

func (e *missingArgError) Error() string        { return "missing " + e.what }
func (e *missingArgError) Is(target error) bool { return target == ErrMissingArgument }

// MissingArgument returns an error reading "missing <what>".
func MissingArgument(what string) error { return &missingArgError{what: what} }

type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() }
func (e *hintedError) Unwrap() error { return e.err }
func (e *hintedError) Hint() string  { return e.hint }

// WithHint attaches an informational follow-up line to err.
func WithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return &hintedError{err: err, hint: hint}
}

// HandlerFault is a panic recovered from a command or program.
type HandlerFault struct {
	Command string
	Value   any
}

func (e *HandlerFault) Error() string { return fmt.Sprintf("%s: %v", e.Command, e.Value) }
