package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"taskman/internal/app"
	"taskman/internal/config"
	"taskman/internal/exitcode"
)

func init() {
	Register(&ShellCmd{})
}

// ShellCmd implements an interactive session: one command per line against a
// single App, with the list re-rendered after every change.
type ShellCmd struct {
	// In is the line source. nil means os.Stdin.
	In io.Reader

	// Registry resolves commands. nil means DefaultRegistry.
	Registry *Registry
}

func (c *ShellCmd) Name() string      { return "shell" }
func (c *ShellCmd) Aliases() []string { return nil }
func (c *ShellCmd) Synopsis() string  { return "Start an interactive session" }
func (c *ShellCmd) Usage() string     { return "taskman shell" }
func (c *ShellCmd) NeedsStore() bool  { return true }

func (c *ShellCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShellCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	in := c.In
	if in == nil {
		in = os.Stdin
	}
	reg := c.Registry
	if reg == nil {
		reg = DefaultRegistry
	}

	lines := newLineReader(in)
	defer lines.stop()

	// edit prompts on the same input as the session
	if cmd, ok := reg.Find("edit"); ok {
		if edit, ok := cmd.(*EditCmd); ok {
			prev := edit.prompter
			edit.SetPrompter(&linePrompter{ctx: ctx, lines: lines, out: out})
			defer edit.SetPrompter(prev)
		}
	}

	renderList(a, cfg.Quiet, out)
	for {
		if ctx.Err() != nil {
			return exitcode.Success
		}
		if !cfg.Quiet {
			fmt.Fprint(out, "> ")
		}
		line, ok := lines.next(ctx)
		if !ok {
			if ctx.Err() != nil {
				return exitcode.Success
			}
			if err := lines.Err(); err != nil {
				fmt.Fprintf(errOut, "error: %v\n", err)
				return exitcode.UserError
			}
			return exitcode.Success
		}

		name, rest := cutField(strings.TrimSpace(line))
		if name == "" {
			continue
		}
		switch name {
		case "quit", "exit":
			return exitcode.Success
		case c.Name():
			fmt.Fprintln(errOut, "error: already in a shell session")
			continue
		}

		cmd, ok := reg.Find(name)
		if !ok {
			fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
			continue
		}
		c.runLine(ctx, cmd, cfg, a, rest, out, errOut)
	}
}

// textCommand is a command whose trailing argument is free text, taken
// verbatim from the line after its leading arguments.
type textCommand interface {
	leadingArgs() int
}

// runLine parses the rest of a line for cmd and runs it. Commands that change
// tasks are followed by the refreshed list.
func (c *ShellCmd) runLine(ctx context.Context, cmd Command, cfg *config.Config, a *app.App, rest string, out, errOut io.Writer) {
	var args []string
	if tc, ok := cmd.(textCommand); ok {
		args = splitLine(rest, tc.leadingArgs())
	} else {
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		cmd.RegisterFlags(fs)
		if err := fs.Parse(strings.Fields(rest)); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return
		}
		args = fs.Args()
	}

	code := cmd.Run(ctx, cfg, a, args, out, errOut)
	if code != exitcode.Success || !mutates(cmd) {
		return
	}
	renderList(a, cfg.Quiet, out)
}

// splitLine splits n whitespace-separated fields off s and returns them
// followed by the remainder as a single argument.
func splitLine(s string, n int) []string {
	var args []string
	for i := 0; i < n; i++ {
		field, rest := cutField(s)
		if field == "" {
			return args
		}
		args = append(args, field)
		s = rest
	}
	if s != "" {
		args = append(args, s)
	}
	return args
}

// cutField returns the first whitespace-separated field of s and the rest
// with leading whitespace removed.
func cutField(s string) (field, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
}

func mutates(cmd Command) bool {
	switch cmd.(type) {
	case *AddCmd, *ToggleCmd, *EditCmd, *RmCmd, *ClearCmd:
		return true
	}
	return false
}
