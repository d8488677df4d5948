package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
)

// ErrPromptCancelled is returned by a Prompter when the user backs out.
var ErrPromptCancelled = errors.New("cancelled")

// Prompter asks the user for a line of text, starting from initial.
type Prompter interface {
	Prompt(title, initial string) (string, error)
}

// formPrompter prompts with an interactive terminal form.
type formPrompter struct{}

func (formPrompter) Prompt(title, initial string) (string, error) {
	value := initial
	err := huh.NewInput().
		Title(title).
		Value(&value).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return "", ErrPromptCancelled
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// linePrompter reads the answer from the shell's input. An empty line, end of
// input or cancellation cancels.
type linePrompter struct {
	ctx   context.Context
	lines *lineReader
	out   io.Writer
}

func (p *linePrompter) Prompt(title, initial string) (string, error) {
	fmt.Fprintf(p.out, "%s [%s]: ", title, initial)
	line, ok := p.lines.next(p.ctx)
	if !ok {
		if p.ctx.Err() != nil {
			return "", ErrPromptCancelled
		}
		if err := p.lines.Err(); err != nil {
			return "", err
		}
		return "", ErrPromptCancelled
	}
	if strings.TrimSpace(line) == "" {
		return "", ErrPromptCancelled
	}
	return line, nil
}
