package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
)

const (
	defaultAPIURL = "http://localhost:8080"
	confirmYes    = "yes"
)

// Command is one devtool subcommand. Run receives the arguments after the
// command name and a context cancelled on Ctrl+C.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, args []string) error
}

// command is the usual Command: a name, a help line and a func
type command struct {
	name  string
	usage string
	run   func(ctx context.Context, args []string) error
}

func (c command) Name() string        { return c.name }
func (c command) Description() string { return c.usage }

func (c command) Run(ctx context.Context, args []string) error {
	return c.run(ctx, args)
}

type Registry struct {
	commands map[string]Command
}

func NewRegistry(cmds ...Command) *Registry {
	r := &Registry{commands: make(map[string]Command, len(cmds))}
	for _, c := range cmds {
		r.Register(c)
	}
	return r
}

// Register adds cmd, replacing any command with the same name
func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns the commands ordered by name
func (r *Registry) List() []Command {
	cmds := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	slices.SortFunc(cmds, func(a, b Command) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return cmds
}

func (r *Registry) WriteHelp(w io.Writer) {
	fmt.Fprint(w, "Usage: devtool <command> [args...]\n\nCommands:\n")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, cmd := range r.List() {
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.Name(), cmd.Description())
	}
	tw.Flush()
}
