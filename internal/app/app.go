// Package app is the application context handed to the presentation layer:
// it owns the task store and the current filter and exposes the callbacks
// and derived values the views consume.
package app

import (
	"errors"
	"io"
	"log/slog"

	"taskman/internal/config"
	"taskman/internal/kv"
	"taskman/internal/storage"
	"taskman/internal/task"
	"taskman/internal/view"
)

var (
	// ErrEmptyTask is the validation error for blank task text.
	ErrEmptyTask = errors.New("task cannot be empty")

	// ErrTaskNotFound is returned when an id matches no task.
	ErrTaskNotFound = errors.New("task not found")
)

// App is the top-level application state.
type App struct {
	store  *task.Store
	filter view.Filter
}

// New creates an App over store with the given initial filter.
func New(store *task.Store, filter view.Filter) *App {
	if filter == "" {
		filter = view.All
	}
	return &App{store: store, filter: filter}
}

// Open wires cfg into a ready App. The returned closer releases the
// key-value backend. A backend that cannot be opened is logged and replaced
// by an in-memory one so the session keeps working.
func Open(cfg *config.Config, logger *slog.Logger) (*App, io.Closer) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	backend, err := kv.Open(cfg.Storage.Backend, cfg.DataDir())
	if err != nil {
		logger.Warn("storage backend unavailable, changes will not be saved",
			"backend", cfg.Storage.Backend, "err", err)
		backend = kv.NewMemory()
	}
	logger.Debug("storage opened", "backend", cfg.Storage.Backend, "dir", cfg.DataDir())

	adapter := storage.New(kv.WithQuota(backend, cfg.Storage.QuotaBytes), cfg.Storage.Key, logger)
	store := task.NewStore(adapter, task.WithLogger(logger.With("component", "store")))
	return New(store, cfg.DefaultFilter()), backend
}

// AddTask adds a task. Blank text is rejected with ErrEmptyTask.
func (a *App) AddTask(text string) (task.Task, error) {
	t, ok := a.store.Add(text)
	if !ok {
		return task.Task{}, ErrEmptyTask
	}
	return t, nil
}

// ToggleTask flips completion. It reports whether the task existed.
func (a *App) ToggleTask(id string) bool {
	return a.store.Toggle(id)
}

// EditTask replaces a task's text.
func (a *App) EditTask(id, text string) error {
	if _, ok := a.store.Get(id); !ok {
		return ErrTaskNotFound
	}
	if !a.store.Edit(id, text) {
		return ErrEmptyTask
	}
	return nil
}

// DeleteTask removes a task. It reports whether the task existed.
func (a *App) DeleteTask(id string) bool {
	return a.store.Delete(id)
}

// ClearCompleted removes all completed tasks and returns how many.
func (a *App) ClearCompleted() int {
	return a.store.ClearCompleted()
}

// SetFilter changes the visible subset.
func (a *App) SetFilter(f view.Filter) {
	a.filter = f
}

// Filter returns the current filter.
func (a *App) Filter() view.Filter {
	return a.filter
}

// Tasks returns every task in insertion order.
func (a *App) Tasks() []task.Task {
	return a.store.Tasks()
}

// Task returns the task with the given id.
func (a *App) Task(id string) (task.Task, bool) {
	return a.store.Get(id)
}

// VisibleTasks returns the tasks matching the current filter.
func (a *App) VisibleTasks() []task.Task {
	return view.Visible(a.store.Tasks(), a.filter)
}

// ActiveCount returns the number of tasks not yet completed.
func (a *App) ActiveCount() int {
	active, _ := view.Counts(a.store.Tasks())
	return active
}

// CompletedCount returns the number of completed tasks.
func (a *App) CompletedCount() int {
	_, completed := view.Counts(a.store.Tasks())
	return completed
}

// CanClearCompleted reports whether the clear-completed action is offered.
func (a *App) CanClearCompleted() bool {
	return view.CanClearCompleted(a.CompletedCount())
}
