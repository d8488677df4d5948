package app

import "strings"

// ItemState is the display state of a single task item.
type ItemState int

const (
	Viewing ItemState = iota
	Editing
)

func (s ItemState) String() string {
	if s == Editing {
		return "editing"
	}
	return "viewing"
}

// Item is the edit state machine for one task: Viewing -> Editing -> Viewing.
type Item struct {
	app    *App
	id     string
	state  ItemState
	buffer string
}

// Item returns a viewing-state item for the task with the given id.
func (a *App) Item(id string) *Item {
	return &Item{app: a, id: id}
}

// State returns the current state.
func (it *Item) State() ItemState { return it.state }

// Buffer returns the edit buffer. It is empty while viewing.
func (it *Item) Buffer() string { return it.buffer }

// BeginEdit enters Editing with the buffer seeded from the current text.
// It returns ErrTaskNotFound if the task no longer exists.
func (it *Item) BeginEdit() error {
	t, ok := it.app.Task(it.id)
	if !ok {
		return ErrTaskNotFound
	}
	it.state = Editing
	it.buffer = t.Text
	return nil
}

// SetBuffer replaces the edit buffer. Ignored unless editing.
func (it *Item) SetBuffer(s string) {
	if it.state == Editing {
		it.buffer = s
	}
}

// Confirm applies the buffer and returns to Viewing whether or not the edit
// applied. An unchanged buffer is not written. A blank buffer reports
// ErrEmptyTask and leaves the text as it was.
func (it *Item) Confirm() error {
	if it.state != Editing {
		return nil
	}
	buf := it.buffer
	it.state = Viewing
	it.buffer = ""

	t, ok := it.app.Task(it.id)
	if !ok {
		return ErrTaskNotFound
	}
	if strings.TrimSpace(buf) == t.Text {
		return nil
	}
	return it.app.EditTask(it.id, buf)
}

// Cancel discards the buffer and returns to Viewing without changes.
func (it *Item) Cancel() {
	it.state = Viewing
	it.buffer = ""
}
