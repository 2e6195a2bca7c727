package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
)

const defaultRollCount = 1000

var errUsage = errors.New("usage")

// Command is one devtool subcommand. Usage is the argument synopsis shown
// after the command name in help output.
type Command interface {
	Name() string
	Usage() string
	Description() string
	Run(args []string) error
}

// Registry keeps subcommands in the order they were registered, which is
// the order help lists them.
type Registry struct {
	order  []Command
	byName map[string]Command
}

func NewRegistry(cmds ...Command) *Registry {
	r := &Registry{byName: make(map[string]Command, len(cmds))}
	for _, cmd := range cmds {
		r.order = append(r.order, cmd)
		r.byName[cmd.Name()] = cmd
	}
	return r
}

func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.byName[name]
	return cmd, ok
}

// Dispatch runs the command named by args[0] with the remaining arguments.
// A missing or unknown name prints help to w and returns errUsage.
func (r *Registry) Dispatch(args []string, w io.Writer) error {
	if len(args) == 0 {
		r.PrintHelp(w)
		return errUsage
	}
	cmd, ok := r.Get(args[0])
	if !ok {
		fmt.Fprintf(w, "unknown command %q\n\n", args[0])
		r.PrintHelp(w)
		return errUsage
	}
	if err := cmd.Run(args[1:]); err != nil {
		return fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	return nil
}

func (r *Registry) PrintHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: devtool <command> [args...]")
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, cmd := range r.order {
		fmt.Fprintf(tw, "  %s %s\t%s\n", cmd.Name(), cmd.Usage(), cmd.Description())
	}
	tw.Flush()
}
