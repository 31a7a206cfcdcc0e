// Package command is a small generic flag-binding command framework: a
// settings struct implements FlagBinder, MakeCommand wires it to a
// flag.FlagSet, and Execute parses arguments before calling into the
// command's body. There is no subcommand tree or arity variants — each
// binary in this module has one flat flag set.
package command

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// Command is a decorated function ready to be executed.
type Command interface {
	Name() string
	Synopsis() string
	Execute(ctx context.Context, args ...string) error
}

// FlagBinder binds its fields to a flag.FlagSet's Var methods.
type FlagBinder interface {
	BindFlags(*flag.FlagSet)
}

// ExecuteType constrains T to a pointer type that can bind its own flags.
type ExecuteType[T any] interface {
	*T
	FlagBinder
}

// ExecuteFunc is a command's body, called once flags have been parsed
// into settings.
type ExecuteFunc[T any] func(ctx context.Context, settings T) error

// Option configures a command at construction time.
type Option func(*commandCommon)

type commandCommon struct {
	name, synopsis string
	usageOutput    io.Writer
}

// WithUsageOutput sets the writer usage text is printed to when -h/-help
// is requested or flag parsing fails. Defaults to os.Stderr.
func WithUsageOutput(w io.Writer) Option {
	return func(c *commandCommon) { c.usageOutput = w }
}

// ErrUsage is returned from Execute when arguments don't match the
// command's expectations; callers typically treat it as "usage already
// printed, exit non-zero".
var ErrUsage = errors.New("command called with unexpected arguments")

type boundCommand[T any, PT ExecuteType[T]] struct {
	commandCommon
	executeFn ExecuteFunc[PT]
}

// MakeCommand returns a Command that allocates a new T, binds its flags,
// parses args against them, and calls executeFn with the populated
// settings.
func MakeCommand[T any, PT ExecuteType[T]](
	name, synopsis string,
	executeFn ExecuteFunc[PT],
	options ...Option,
) Command {
	cmd := &boundCommand[T, PT]{
		commandCommon: commandCommon{
			name:        name,
			synopsis:    synopsis,
			usageOutput: os.Stderr,
		},
		executeFn: executeFn,
	}
	for _, opt := range options {
		opt(&cmd.commandCommon)
	}
	return cmd
}

func (c *boundCommand[T, PT]) Name() string     { return c.name }
func (c *boundCommand[T, PT]) Synopsis() string { return c.synopsis }

func (c *boundCommand[T, PT]) Execute(ctx context.Context, args ...string) error {
	var settings T
	ptr := PT(&settings)

	flagSet := flag.NewFlagSet(c.name, flag.ContinueOnError)
	flagSet.SetOutput(c.usageOutput)
	flagSet.Usage = func() {
		fmt.Fprintf(c.usageOutput, "%s\n\nUsage of %s:\n", c.synopsis, c.name)
		flagSet.PrintDefaults()
	}
	ptr.BindFlags(flagSet)

	if err := flagSet.Parse(args); err != nil {
		return ErrUsage
	}
	if extra := flagSet.Args(); len(extra) > 0 {
		fmt.Fprintf(c.usageOutput, "%s: unexpected arguments: %s\n", c.name, strings.Join(extra, " "))
		flagSet.Usage()
		return ErrUsage
	}

	return c.executeFn(ctx, ptr)
}
