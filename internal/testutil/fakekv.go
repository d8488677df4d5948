// Package testutil provides testing utilities.
package testutil

import (
	"errors"
	"sync"

	"taskman/internal/app"
	"taskman/internal/storage"
	"taskman/internal/task"
	"taskman/internal/view"
)

// ErrInjected is a generic error for failure injection.
var ErrInjected = errors.New("injected failure")

// FakeKV is an in-memory kv.Store for testing.
type FakeKV struct {
	mu   sync.RWMutex
	data map[string]string

	// Error injection for testing
	GetErr   error
	SetErr   error
	CloseErr error

	// Call counters
	Gets   int
	Sets   int
	Closed bool
}

// NewFakeKV creates an empty FakeKV.
func NewFakeKV() *FakeKV {
	return &FakeKV{data: make(map[string]string)}
}

// Put stores a raw value without counting it as a Set.
func (f *FakeKV) Put(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
}

// Raw returns the stored value without counting it as a Get.
func (f *FakeKV) Raw(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.data[key]
	return v, ok
}

// Get implements kv.Store.
func (f *FakeKV) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Gets++
	if f.GetErr != nil {
		return "", false, f.GetErr
	}
	v, ok := f.data[key]
	return v, ok, nil
}

// Set implements kv.Store.
func (f *FakeKV) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sets++
	if f.SetErr != nil {
		return f.SetErr
	}
	f.data[key] = value
	return nil
}

// Close implements kv.Store.
func (f *FakeKV) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return f.CloseErr
}

// NewApp builds an App over kv with the default key and a discarding logger.
func NewApp(kv *FakeKV) *app.App {
	adapter := storage.New(kv, storage.DefaultKey, nil)
	return app.New(task.NewStore(adapter), view.All)
}

// SeedTasks stores tasks under the default key as if saved earlier.
func SeedTasks(kv *FakeKV, tasks ...task.Task) {
	raw, err := storage.Encode(tasks)
	if err != nil {
		panic(err)
	}
	kv.Put(storage.DefaultKey, raw)
}
