package task

import (
	"log/slog"
	"slices"
	"strings"
	"time"
)

// Storage loads and saves the whole task list. Both calls are fail-soft:
// Load returns an empty list on any problem and Save swallows write errors.
type Storage interface {
	Load() []Task
	Save(tasks []Task)
}

// maxIDAttempts bounds id re-rolls on collision.
const maxIDAttempts = 8

// Store is the authoritative in-memory task list.
// Every mutation that changes the list is followed by a full-list Save.
// Operations never fail: they either apply or are no-ops.
type Store struct {
	storage Storage
	tasks   []Task
	newID   func() string
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces NewID (for testing).
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithLogger sets the logger used for mutation debug logs.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates a store initialized from storage.Load().
func NewStore(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		newID:   NewID,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tasks = storage.Load()
	if s.tasks == nil {
		s.tasks = []Task{}
	}
	s.logger.Debug("task store loaded", "count", len(s.tasks))
	return s
}

// Tasks returns a copy of the list in insertion order.
func (s *Store) Tasks() []Task {
	return slices.Clone(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// Add appends a new active task with the trimmed text.
// Blank text is rejected and nothing is created.
func (s *Store) Add(text string) (Task, bool) {
	text = cleanText(text)
	if text == "" {
		return Task{}, false
	}
	t := Task{
		ID:   s.uniqueID(),
		Text: text,
	}
	s.tasks = append(s.tasks, t)
	s.logger.Debug("task added", "id", t.ID)
	s.persist()
	return t, true
}

// Toggle flips the completion flag of the task with the given id.
func (s *Store) Toggle(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.logger.Debug("task toggled", "id", id, "completed", s.tasks[i].Completed)
	s.persist()
	return true
}

// Edit replaces the text of the task with the given id.
// The new text is trimmed; blank text is rejected.
func (s *Store) Edit(id, text string) bool {
	text = cleanText(text)
	if text == "" {
		return false
	}
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Text = text
	s.logger.Debug("task edited", "id", id)
	s.persist()
	return true
}

// Delete removes the task with the given id.
func (s *Store) Delete(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.logger.Debug("task deleted", "id", id)
	s.persist()
	return true
}

// ClearCompleted removes every completed task and returns how many went.
func (s *Store) ClearCompleted() int {
	before := len(s.tasks)
	s.tasks = slices.DeleteFunc(s.tasks, func(t Task) bool { return t.Completed })
	removed := before - len(s.tasks)
	if removed == 0 {
		return 0
	}
	s.logger.Debug("completed tasks cleared", "count", removed)
	s.persist()
	return removed
}

// cleanText trims text and replaces invalid UTF-8 so the stored text reads
// back unchanged.
func cleanText(text string) string {
	return strings.ToValidUTF8(strings.TrimSpace(text), "\uFFFD")
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
}

func (s *Store) uniqueID() string {
	id := s.newID()
	for attempt := 1; s.index(id) >= 0; attempt++ {
		if attempt >= maxIDAttempts {
			return fallbackID(time.Now())
		}
		id = s.newID()
	}
	return id
}

func (s *Store) persist() {
	s.storage.Save(s.Tasks())
}
