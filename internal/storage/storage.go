// Package storage persists the task list as JSON text under a single key.
//
// Both directions fail soft: a missing, unreadable or malformed value loads
// as an empty list, and a failed write is logged and otherwise ignored.
// Persisted state can never stop the application.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tidwall/gjson"

	"taskman/internal/kv"
	"taskman/internal/task"
)

// DefaultKey is the key the task list is stored under.
const DefaultKey = "tasks"

var (
	// ErrMalformed means the stored text is not valid JSON.
	ErrMalformed = errors.New("stored tasks are not valid JSON")

	// ErrNotArray means the stored JSON is not an array.
	ErrNotArray = errors.New("stored tasks are not an array")

	// ErrInvalidRecord means an element does not have the task shape.
	ErrInvalidRecord = errors.New("stored task failed schema validation")
)

// Adapter loads and saves the task list through a kv.Store.
type Adapter struct {
	store  kv.Store
	key    string
	logger *slog.Logger
}

// New creates an Adapter. An empty key means DefaultKey; a nil logger discards.
func New(store kv.Store, key string, logger *slog.Logger) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		store:  store,
		key:    key,
		logger: logger.With("component", "storage", "key", key),
	}
}

// Load returns the stored task list, or an empty list if there is none or it
// cannot be read or validated.
func (a *Adapter) Load() []task.Task {
	raw, ok, err := a.store.Get(a.key)
	if err != nil {
		a.logger.Warn("failed to load tasks", "err", err)
		return []task.Task{}
	}
	if !ok || raw == "" {
		return []task.Task{}
	}

	tasks, err := Decode(raw)
	if err != nil {
		a.logger.Warn("invalid tasks data, starting empty", "err", err)
		return []task.Task{}
	}
	return tasks
}

// Save writes the full task list. Failures are logged; the previously stored
// value stays as it was.
func (a *Adapter) Save(tasks []task.Task) {
	raw, err := Encode(tasks)
	if err != nil {
		a.logger.Warn("failed to encode tasks", "err", err)
		return
	}
	if err := a.store.Set(a.key, raw); err != nil {
		a.logger.Warn("failed to save tasks", "err", err, "count", len(tasks))
		return
	}
	a.logger.Debug("tasks saved", "count", len(tasks), "bytes", len(raw))
}

// Encode serializes tasks as a JSON array. A nil slice encodes as [].
func Encode(tasks []task.Task) (string, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode parses and validates stored text. Every element must be an object
// with a string id, a string text and a boolean completed, and ids must be
// unique. Keys match exactly; other properties are ignored.
func Decode(raw string) ([]task.Task, error) {
	if !gjson.Valid(raw) {
		return nil, ErrMalformed
	}
	doc := gjson.Parse(raw)
	if !doc.IsArray() {
		return nil, fmt.Errorf("%w: got %s", ErrNotArray, doc.Type)
	}

	var (
		verr  error
		tasks = []task.Task{}
		seen  = make(map[string]struct{})
	)
	doc.ForEach(func(_, v gjson.Result) bool {
		index := len(tasks)
		if err := validateRecord(v); err != nil {
			verr = fmt.Errorf("%w: element %d: %v", ErrInvalidRecord, index, err)
			return false
		}
		t := task.Task{
			ID:        v.Get("id").Str,
			Text:      v.Get("text").Str,
			Completed: v.Get("completed").Bool(),
		}
		if _, dup := seen[t.ID]; dup {
			verr = fmt.Errorf("%w: element %d: duplicate id %q", ErrInvalidRecord, index, t.ID)
			return false
		}
		seen[t.ID] = struct{}{}
		tasks = append(tasks, t)
		return true
	})
	if verr != nil {
		return nil, verr
	}
	return tasks, nil
}

func validateRecord(v gjson.Result) error {
	if !v.IsObject() {
		return fmt.Errorf("not an object")
	}
	if f := v.Get("id"); f.Type != gjson.String {
		return fmt.Errorf("id is %s, want string", f.Type)
	}
	if f := v.Get("text"); f.Type != gjson.String {
		return fmt.Errorf("text is %s, want string", f.Type)
	}
	if f := v.Get("completed"); !f.IsBool() {
		return fmt.Errorf("completed is %s, want boolean", f.Type)
	}
	return nil
}
