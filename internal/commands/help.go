package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskman/internal/app"
	"taskman/internal/config"
	"taskman/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskman help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskman                                        List all tasks
  taskman list [common flags] [--filter <mode>]  List tasks (alias: ls)
  taskman filter [common flags] <mode>           List tasks matching a filter mode
  taskman add [common flags] <text...>           Add a task (alias: create)
  taskman toggle [common flags] <ref>            Toggle completion (alias: done)
  taskman edit [common flags] <ref> [text...]    Edit a task, prompting when no text is given
  taskman rm [common flags] <ref>                Delete a task (alias: delete)
  taskman clear [common flags]                   Delete all completed tasks
  taskman shell [common flags]                   Start an interactive session
  taskman help
  taskman version

Filter modes: all, active, completed
A <ref> is a task number as printed by list, or a unique task id prefix.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
