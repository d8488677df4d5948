package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"taskman/internal/app"
	"taskman/internal/exitcode"
	"taskman/internal/task"
)

var (
	errOutOfRange = errors.New("task number out of range")
	errNoMatch    = errors.New("task not found")
	errAmbiguous  = errors.New("ambiguous task id")
)

// findTask resolves ref against the full list and returns the task and its
// 1-based position.
func findTask(tasks []task.Task, ref TaskRef) (task.Task, int, error) {
	if ref.IsPosition() {
		if ref.Num < 1 || ref.Num > len(tasks) {
			return task.Task{}, 0, fmt.Errorf("%w: %d", errOutOfRange, ref.Num)
		}
		return tasks[ref.Num-1], ref.Num, nil
	}

	for i, t := range tasks {
		if strings.ToLower(t.ID) == ref.ID {
			return t, i + 1, nil
		}
	}

	match := -1
	for i, t := range tasks {
		if strings.HasPrefix(strings.ToLower(t.ID), ref.ID) {
			if match >= 0 {
				return task.Task{}, 0, fmt.Errorf("%w: %s", errAmbiguous, ref.ID)
			}
			match = i
		}
	}
	if match < 0 {
		return task.Task{}, 0, fmt.Errorf("%w: %s", errNoMatch, ref.ID)
	}
	return tasks[match], match + 1, nil
}

// resolveTask parses and resolves the reference in args, printing any error.
// The returned code is exitcode.Success when the task was found.
func resolveTask(a *app.App, args []string, errOut io.Writer) (task.Task, int) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return task.Task{}, exitcode.UserError
	}
	t, _, err := findTask(a.Tasks(), ref)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return task.Task{}, exitcode.UserError
	}
	return t, exitcode.Success
}
