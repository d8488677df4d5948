package app_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskman/internal/app"
	"taskman/internal/config"
	"taskman/internal/task"
	"taskman/internal/testutil"
	"taskman/internal/view"
)

func texts(tasks []task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Text
	}
	return out
}

func TestScenario_AddToggleFilter(t *testing.T) {
	kv := testutil.NewFakeKV()
	a := testutil.NewApp(kv)
	require.Empty(t, a.Tasks())

	taskA, err := a.AddTask("A")
	require.NoError(t, err)
	_, err = a.AddTask("B")
	require.NoError(t, err)
	require.True(t, a.ToggleTask(taskA.ID))

	a.SetFilter(view.Active)
	assert.Equal(t, []string{"B"}, texts(a.VisibleTasks()))
	assert.Equal(t, 1, a.ActiveCount())
	assert.Equal(t, 1, a.CompletedCount())
	assert.True(t, a.CanClearCompleted())
	assert.Equal(t, view.Active, a.Filter())

	// a fresh app over the same store sees the persisted state
	reloaded := testutil.NewApp(kv)
	assert.Equal(t, a.Tasks(), reloaded.Tasks())
}

func TestAddTask_RejectsBlank(t *testing.T) {
	kv := testutil.NewFakeKV()
	a := testutil.NewApp(kv)

	for _, text := range []string{"", "   "} {
		_, err := a.AddTask(text)
		assert.ErrorIs(t, err, app.ErrEmptyTask)
	}
	assert.Empty(t, a.Tasks())
	assert.Equal(t, 0, kv.Sets)
}

func TestEditTask(t *testing.T) {
	a := testutil.NewApp(testutil.NewFakeKV())
	tk, _ := a.AddTask("draft")

	assert.ErrorIs(t, a.EditTask("missing", "x"), app.ErrTaskNotFound)
	assert.ErrorIs(t, a.EditTask(tk.ID, "  "), app.ErrEmptyTask)
	require.NoError(t, a.EditTask(tk.ID, " final "))

	got, _ := a.Task(tk.ID)
	assert.Equal(t, "final", got.Text)
}

func TestClearCompleted(t *testing.T) {
	kv := testutil.NewFakeKV()
	testutil.SeedTasks(kv,
		task.Task{ID: "1", Text: "a", Completed: true},
		task.Task{ID: "2", Text: "b"},
	)
	a := testutil.NewApp(kv)

	assert.Equal(t, 2, len(a.Tasks()))
	assert.Equal(t, 1, a.ClearCompleted())
	assert.False(t, a.CanClearCompleted())
	assert.Equal(t, []string{"b"}, texts(a.Tasks()))
}

func TestDeleteTask(t *testing.T) {
	a := testutil.NewApp(testutil.NewFakeKV())
	x, _ := a.AddTask("x")
	y, _ := a.AddTask("y")

	assert.True(t, a.DeleteTask(x.ID))
	assert.False(t, a.DeleteTask(x.ID))
	assert.Equal(t, []task.Task{y}, a.Tasks())
}

func TestWriteFailureKeepsMemoryState(t *testing.T) {
	kv := testutil.NewFakeKV()
	testutil.SeedTasks(kv, task.Task{ID: "1", Text: "kept"})
	kv.SetErr = testutil.ErrInjected
	a := testutil.NewApp(kv)

	_, err := a.AddTask("session only")
	require.NoError(t, err)
	assert.Equal(t, []string{"kept", "session only"}, texts(a.Tasks()))

	raw, _ := kv.Raw("tasks")
	assert.JSONEq(t, `[{"id":"1","text":"kept","completed":false}]`, raw)
}

func TestOpen_UsesConfiguredBackend(t *testing.T) {
	cfg, err := config.New(t.TempDir())
	require.NoError(t, err)
	cfg.Storage.Backend = "bolt"
	cfg.Storage.DataDir = t.TempDir()
	cfg.List.DefaultFilter = "completed"

	a, closer := app.Open(cfg, nil)
	_, err = a.AddTask("persist me")
	require.NoError(t, err)
	assert.Equal(t, view.Completed, a.Filter())
	require.NoError(t, closer.Close())

	again, closer := app.Open(cfg, nil)
	defer closer.Close()
	assert.Equal(t, []string{"persist me"}, texts(again.Tasks()))
}

func TestOpen_FallsBackToMemory(t *testing.T) {
	cfg, err := config.New(t.TempDir())
	require.NoError(t, err)
	cfg.Storage.Backend = "nonsense"

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	a, closer := app.Open(cfg, logger)
	defer closer.Close()

	_, err = a.AddTask("still works")
	require.NoError(t, err)
	assert.Len(t, a.Tasks(), 1)
	assert.Contains(t, logs.String(), "storage backend unavailable")
}
