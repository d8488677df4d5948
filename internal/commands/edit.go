package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskman/internal/app"
	"taskman/internal/config"
	"taskman/internal/exitcode"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
// With text after the reference it edits directly; without, it prompts
// with the current text.
type EditCmd struct {
	prompter Prompter
}

// SetPrompter replaces the interactive prompt (for testing and the shell).
// nil restores the terminal form.
func (c *EditCmd) SetPrompter(p Prompter) {
	c.prompter = p
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change a task's text" }
func (c *EditCmd) Usage() string     { return "taskman edit <ref> [text...]" }
func (c *EditCmd) NeedsStore() bool  { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	t, code := resolveTask(a, args, errOut)
	if code != exitcode.Success {
		return code
	}

	item := a.Item(t.ID)
	if err := item.BeginEdit(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if len(args) > 1 {
		item.SetBuffer(strings.Join(args[1:], " "))
	} else {
		text, err := c.getPrompter().Prompt("Edit task", item.Buffer())
		if errors.Is(err, ErrPromptCancelled) {
			item.Cancel()
			if !cfg.Quiet {
				fmt.Fprintln(out, "edit cancelled")
			}
			return exitcode.Success
		}
		if err != nil {
			item.Cancel()
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		item.SetBuffer(text)
	}

	if err := item.Confirm(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

func (c *EditCmd) getPrompter() Prompter {
	if c.prompter == nil {
		return formPrompter{}
	}
	return c.prompter
}

func (c *EditCmd) leadingArgs() int { return 1 }
