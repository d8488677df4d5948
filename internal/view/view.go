// Package view derives what is shown from the full task list.
package view

import (
	"fmt"
	"strings"

	"taskman/internal/task"
)

// Filter selects which tasks are visible.
type Filter string

const (
	All       Filter = "all"
	Active    Filter = "active"
	Completed Filter = "completed"
)

// Filters lists every filter mode in display order.
var Filters = []Filter{All, Active, Completed}

// ParseFilter parses a filter mode name (case-insensitive, trimmed).
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case All, Active, Completed:
		return f, nil
	}
	return "", fmt.Errorf("invalid filter: %s (want %s)", s, filterNames())
}

// filterNames lists the modes as "all, active or completed".
func filterNames() string {
	names := make([]string, len(Filters))
	for i, f := range Filters {
		names[i] = string(f)
	}
	last := len(names) - 1
	return strings.Join(names[:last], ", ") + " or " + names[last]
}

func (f Filter) String() string { return string(f) }

// Match reports whether t is visible under f. Unknown modes match everything.
func (f Filter) Match(t task.Task) bool {
	switch f {
	case Active:
		return !t.Completed
	case Completed:
		return t.Completed
	default:
		return true
	}
}

// Visible returns the tasks matching mode, in list order.
func Visible(tasks []task.Task, mode Filter) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if mode.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Counts returns the number of active and completed tasks.
func Counts(tasks []task.Task) (active, completed int) {
	for _, t := range tasks {
		if t.Completed {
			completed++
		} else {
			active++
		}
	}
	return active, completed
}

// CanClearCompleted reports whether the clear-completed action is offered.
func CanClearCompleted(completed int) bool {
	return completed > 0
}
