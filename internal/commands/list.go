package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskman/internal/app"
	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/output"
	"taskman/internal/view"
)

func init() {
	Register(&ListCmd{})
	Register(&FilterCmd{})
}

// ListCmd implements the list command.
// Handles both `taskman` (no args) and `taskman list [--filter <mode>]`.
type ListCmd struct {
	filter string
}

// SetFilter sets the filter flag (for testing).
func (c *ListCmd) SetFilter(filter string) {
	c.filter = filter
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "taskman list [--filter all|active|completed]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.filter, "f", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if c.filter != "" {
		f, err := view.ParseFilter(c.filter)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		a.SetFilter(f)
	}

	renderList(a, cfg.Quiet, out)
	return exitcode.Success
}

// FilterCmd implements the filter command: it sets the filter mode and shows
// the resulting list.
type FilterCmd struct{}

func (c *FilterCmd) Name() string      { return "filter" }
func (c *FilterCmd) Aliases() []string { return nil }
func (c *FilterCmd) Synopsis() string  { return "Show tasks matching a filter mode" }
func (c *FilterCmd) Usage() string     { return "taskman filter all|active|completed" }
func (c *FilterCmd) NeedsStore() bool  { return true }

func (c *FilterCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *FilterCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: filter mode required")
		return exitcode.UserError
	}
	f, err := view.ParseFilter(strings.Join(args, " "))
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	a.SetFilter(f)

	renderList(a, cfg.Quiet, out)
	return exitcode.Success
}

// renderList prints the visible tasks numbered by their position in the full
// list, so numbers stay valid as references under any filter.
func renderList(a *app.App, quiet bool, out io.Writer) {
	p := output.NewPrinter(out)
	tasks := a.Tasks()
	filter := a.Filter()

	shown := 0
	for i, t := range tasks {
		if !filter.Match(t) {
			continue
		}
		p.Task(i+1, t)
		shown++
	}

	if quiet {
		return
	}
	if shown == 0 {
		p.Empty()
	}
	if len(tasks) > 0 {
		active, completed := view.Counts(tasks)
		p.Summary(active, completed, filter)
	}
}
