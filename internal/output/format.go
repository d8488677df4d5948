// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskman/internal/task"
	"taskman/internal/view"
)

// EmptyMessage is printed when no task is visible.
const EmptyMessage = "No tasks to display. Add a new task to get started!"

// Printer writes styled task output. Styles only render on terminals.
type Printer struct {
	w         io.Writer
	done      lipgloss.Style
	count     lipgloss.Style
	secondary lipgloss.Style
}

// NewPrinter creates a Printer for w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:         w,
		done:      r.NewStyle().Faint(true).Strikethrough(true),
		count:     r.NewStyle().Bold(true),
		secondary: r.NewStyle().Faint(true),
	}
}

// Task formats a task line.
// Format: "{N:>4}  [ ] {TEXT}\n" or "{N:>4}  [x] {TEXT}\n"
func (p *Printer) Task(num int, t task.Task) {
	text := normalizeText(t.Text)
	mark := " "
	if t.Completed {
		mark = "x"
		text = p.done.Render(text)
	}
	fmt.Fprintf(p.w, "%4d  [%s] %s\n", num, mark, text)
}

// Summary prints the remaining count and, when there are completed tasks,
// how many and how to clear them. A filter other than all is named.
func (p *Printer) Summary(active, completed int, filter view.Filter) {
	line := p.count.Render(fmt.Sprint(active)) + " " + plural(active, "task", "tasks") + " remaining"
	if view.CanClearCompleted(completed) {
		line += p.secondary.Render(fmt.Sprintf(", %d completed (run: taskman clear)", completed))
	}
	if filter != view.All {
		line += p.secondary.Render(fmt.Sprintf(" [filter: %s]", filter))
	}
	fmt.Fprintln(p.w, line)
}

// Empty prints the empty-list message.
func (p *Printer) Empty() {
	fmt.Fprintln(p.w, EmptyMessage)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// normalizeText normalizes task text for display.
// Newlines are replaced with spaces.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	return text
}
