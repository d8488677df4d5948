package storage

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"taskman/internal/kv"
	"taskman/internal/task"
)

func newLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

// failingStore returns the configured errors.
type failingStore struct {
	kv.Store
	getErr error
	setErr error
}

func (f *failingStore) Get(key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.Store.Get(key)
}

func (f *failingStore) Set(key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.Store.Set(key, value)
}

func taskGen() *rapid.Generator[task.Task] {
	return rapid.Custom(func(t *rapid.T) task.Task {
		return task.Task{
			ID:        rapid.StringMatching(`[a-z0-9-]{1,36}`).Draw(t, "id"),
			Text:      rapid.String().Draw(t, "text"),
			Completed: rapid.Bool().Draw(t, "completed"),
		}
	})
}

func TestRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tasks := rapid.SliceOfDistinct(taskGen(), func(tk task.Task) string { return tk.ID }).Draw(t, "tasks")

		a := New(kv.NewMemory(), "", nil)
		a.Save(tasks)
		got := a.Load()

		if len(tasks) == 0 {
			if len(got) != 0 {
				t.Fatalf("expected empty list, got %v", got)
			}
			return
		}
		if !assert.ObjectsAreEqual(tasks, got) {
			t.Fatalf("round trip mismatch:\nwant %#v\ngot  %#v", tasks, got)
		}
	})
}

func TestRoundTrip_TextFromInvalidUTF8(t *testing.T) {
	store := kv.NewMemory()
	s := task.NewStore(New(store, "", nil))
	added, ok := s.Add("caf\xe9")
	require.True(t, ok)

	reloaded := task.NewStore(New(store, "", nil))
	assert.Equal(t, []task.Task{added}, reloaded.Tasks())
}

func TestLoad_AbsentKeyIsEmpty(t *testing.T) {
	logger, logs := newLogger()
	a := New(kv.NewMemory(), "", logger)

	got := a.Load()
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NotContains(t, logs.String(), "level=WARN")
}

func TestLoad_EmptyValueIsEmpty(t *testing.T) {
	store := kv.NewMemory()
	require.NoError(t, store.Set(DefaultKey, ""))
	logger, logs := newLogger()

	assert.Empty(t, New(store, "", logger).Load())
	assert.NotContains(t, logs.String(), "level=WARN")
}

func TestLoad_CorruptDataFailsSoft(t *testing.T) {
	cases := map[string]string{
		"not json":            `{not json`,
		"object":              `{"id":"a","text":"A","completed":false}`,
		"string":              `"tasks"`,
		"number":              `42`,
		"null":                `null`,
		"null element":        `[null]`,
		"number element":      `[1]`,
		"missing id":          `[{"text":"A","completed":false}]`,
		"numeric id":          `[{"id":1,"text":"A","completed":false}]`,
		"missing text":        `[{"id":"a","completed":false}]`,
		"string completed":    `[{"id":"a","text":"A","completed":"false"}]`,
		"missing completed":   `[{"id":"a","text":"A"}]`,
		"one bad of two":      `[{"id":"a","text":"A","completed":false},{"id":"b","text":null,"completed":true}]`,
		"duplicate ids":       `[{"id":"a","text":"A","completed":false},{"id":"a","text":"B","completed":true}]`,
		"truncated":           `[{"id":"a","text":"A","completed":fal`,
		"trailing garbage":    `[] []`,
		"array of arrays":     `[[]]`,
		"completed is number": `[{"id":"a","text":"A","completed":0}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			store := kv.NewMemory()
			require.NoError(t, store.Set(DefaultKey, raw))
			logger, logs := newLogger()

			var got []task.Task
			assert.NotPanics(t, func() { got = New(store, "", logger).Load() })
			assert.NotNil(t, got)
			assert.Empty(t, got)
			assert.Contains(t, logs.String(), "level=WARN")
		})
	}
}

func TestLoad_ReadErrorFailsSoft(t *testing.T) {
	logger, logs := newLogger()
	store := &failingStore{Store: kv.NewMemory(), getErr: errors.New("disk on fire")}

	assert.Empty(t, New(store, "", logger).Load())
	assert.Contains(t, logs.String(), "failed to load tasks")
	assert.Contains(t, logs.String(), "disk on fire")
}

func TestLoad_ExtraFieldsAreIgnored(t *testing.T) {
	store := kv.NewMemory()
	require.NoError(t, store.Set(DefaultKey, `[{"id":"a","text":"A","completed":true,"createdAt":123}]`))

	got := New(store, "", nil).Load()
	assert.Equal(t, []task.Task{{ID: "a", Text: "A", Completed: true}}, got)
}

func TestDecode_KeysMatchExactly(t *testing.T) {
	// differently cased keys are extra properties, not the fields themselves
	raw := `[
		{"id":"a","text":"A","completed":false},
		{"id":"c","text":"C","completed":true,"ID":"a","Text":7}
	]`
	got, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, []task.Task{
		{ID: "a", Text: "A"},
		{ID: "c", Text: "C", Completed: true},
	}, got)

	store := kv.NewMemory()
	require.NoError(t, store.Set(DefaultKey, raw))
	s := task.NewStore(New(store, "", nil))
	require.True(t, s.Delete("a"))
	_, stillThere := s.Get("a")
	assert.False(t, stillThere)
	assert.Equal(t, 1, s.Len())
}

func TestLoad_CaseFoldedExtraFieldIsIgnored(t *testing.T) {
	store := kv.NewMemory()
	require.NoError(t, store.Set(DefaultKey, `[{"id":"a","text":"A","completed":false,"Completed":"yes"}]`))
	logger, logs := newLogger()

	got := New(store, "", logger).Load()
	assert.Equal(t, []task.Task{{ID: "a", Text: "A"}}, got)
	assert.NotContains(t, logs.String(), "level=WARN")
}

func TestSave_EmptyListWritesArray(t *testing.T) {
	store := kv.NewMemory()
	New(store, "", nil).Save(nil)

	v, ok, err := store.Get(DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestSave_PersistedLayout(t *testing.T) {
	store := kv.NewMemory()
	New(store, "", nil).Save([]task.Task{{ID: "a", Text: "buy milk", Completed: false}})

	v, _, _ := store.Get(DefaultKey)
	assert.JSONEq(t, `[{"id":"a","text":"buy milk","completed":false}]`, v)
}

func TestSave_QuotaExceededKeepsPriorState(t *testing.T) {
	mem := kv.NewMemory()
	store := kv.WithQuota(mem, 128)
	logger, logs := newLogger()
	a := New(store, "", logger)

	prior := []task.Task{{ID: "a", Text: "A"}}
	a.Save(prior)

	a.Save([]task.Task{{ID: "a", Text: strings.Repeat("x", 256)}})

	assert.Contains(t, logs.String(), "failed to save tasks")
	assert.Contains(t, logs.String(), kv.ErrQuotaExceeded.Error())
	assert.Equal(t, prior, a.Load())
}

func TestSave_WriteErrorDoesNotPanic(t *testing.T) {
	logger, logs := newLogger()
	store := &failingStore{Store: kv.NewMemory(), setErr: errors.New("read-only")}

	assert.NotPanics(t, func() {
		New(store, "", logger).Save([]task.Task{{ID: "a", Text: "A"}})
	})
	assert.Contains(t, logs.String(), "read-only")
}

func TestCustomKey(t *testing.T) {
	store := kv.NewMemory()
	New(store, "work", nil).Save([]task.Task{{ID: "a", Text: "A"}})

	_, ok, _ := store.Get(DefaultKey)
	assert.False(t, ok)
	assert.Len(t, New(store, "work", nil).Load(), 1)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(`nope`)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Decode(`{}`)
	assert.ErrorIs(t, err, ErrNotArray)

	_, err = Decode(`[{"id":"a"}]`)
	assert.ErrorIs(t, err, ErrInvalidRecord)
	assert.Contains(t, err.Error(), "element 0")

	got, err := Decode(`[]`)
	require.NoError(t, err)
	assert.Empty(t, got)
}
