package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskman/internal/app"
	"taskman/internal/testutil"
)

func TestItem_ConfirmAppliesEdit(t *testing.T) {
	a := testutil.NewApp(testutil.NewFakeKV())
	tk, _ := a.AddTask("old")

	it := a.Item(tk.ID)
	assert.Equal(t, app.Viewing, it.State())

	require.NoError(t, it.BeginEdit())
	assert.Equal(t, app.Editing, it.State())
	assert.Equal(t, "old", it.Buffer())

	it.SetBuffer("  new  ")
	require.NoError(t, it.Confirm())
	assert.Equal(t, app.Viewing, it.State())

	got, _ := a.Task(tk.ID)
	assert.Equal(t, "new", got.Text)
}

func TestItem_ConfirmBlankReturnsToViewing(t *testing.T) {
	a := testutil.NewApp(testutil.NewFakeKV())
	tk, _ := a.AddTask("keep")

	it := a.Item(tk.ID)
	require.NoError(t, it.BeginEdit())
	it.SetBuffer("   ")

	assert.ErrorIs(t, it.Confirm(), app.ErrEmptyTask)
	assert.Equal(t, app.Viewing, it.State())

	got, _ := a.Task(tk.ID)
	assert.Equal(t, "keep", got.Text)
}

func TestItem_UnchangedBufferIsNotSaved(t *testing.T) {
	kv := testutil.NewFakeKV()
	a := testutil.NewApp(kv)
	tk, _ := a.AddTask("same")
	sets := kv.Sets

	it := a.Item(tk.ID)
	require.NoError(t, it.BeginEdit())
	it.SetBuffer(" same ")
	require.NoError(t, it.Confirm())

	assert.Equal(t, sets, kv.Sets)
}

func TestItem_CancelDiscards(t *testing.T) {
	kv := testutil.NewFakeKV()
	a := testutil.NewApp(kv)
	tk, _ := a.AddTask("original")
	sets := kv.Sets

	it := a.Item(tk.ID)
	require.NoError(t, it.BeginEdit())
	it.SetBuffer("changed")
	it.Cancel()

	assert.Equal(t, app.Viewing, it.State())
	assert.Equal(t, "", it.Buffer())
	got, _ := a.Task(tk.ID)
	assert.Equal(t, "original", got.Text)
	assert.Equal(t, sets, kv.Sets)
}

func TestItem_SetBufferIgnoredWhileViewing(t *testing.T) {
	a := testutil.NewApp(testutil.NewFakeKV())
	tk, _ := a.AddTask("x")

	it := a.Item(tk.ID)
	it.SetBuffer("ignored")
	assert.Equal(t, "", it.Buffer())
	assert.NoError(t, it.Confirm(), "confirm while viewing is a no-op")
}

func TestItem_BeginEditMissingTask(t *testing.T) {
	a := testutil.NewApp(testutil.NewFakeKV())
	it := a.Item("missing")
	assert.ErrorIs(t, it.BeginEdit(), app.ErrTaskNotFound)
	assert.Equal(t, app.Viewing, it.State())
}
