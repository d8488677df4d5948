package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"taskman/internal/task"
)

func TestVisible_CountsMatchFilters(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		flags := rapid.SliceOf(rapid.Bool()).Draw(t, "completed")
		tasks := make([]task.Task, len(flags))
		wantActive, wantCompleted := 0, 0
		for i, done := range flags {
			tasks[i] = task.Task{ID: string(rune('a' + i%26)), Text: "t", Completed: done}
			if done {
				wantCompleted++
			} else {
				wantActive++
			}
		}

		active, completed := Counts(tasks)
		if active != wantActive || completed != wantCompleted {
			t.Fatalf("Counts = (%d, %d), want (%d, %d)", active, completed, wantActive, wantCompleted)
		}
		if n := len(Visible(tasks, Active)); n != wantActive {
			t.Fatalf("active visible = %d, want %d", n, wantActive)
		}
		if n := len(Visible(tasks, Completed)); n != wantCompleted {
			t.Fatalf("completed visible = %d, want %d", n, wantCompleted)
		}
		if n := len(Visible(tasks, All)); n != wantActive+wantCompleted {
			t.Fatalf("all visible = %d, want %d", n, wantActive+wantCompleted)
		}
	})
}

func TestVisible_PreservesOrder(t *testing.T) {
	tasks := []task.Task{
		{ID: "1", Text: "a"},
		{ID: "2", Text: "b", Completed: true},
		{ID: "3", Text: "c"},
	}
	got := Visible(tasks, Active)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)

	assert.Equal(t, tasks, Visible(tasks, All))
}

func TestVisible_DoesNotAliasInput(t *testing.T) {
	tasks := []task.Task{{ID: "1", Text: "a"}}
	got := Visible(tasks, All)
	got[0].Text = "changed"
	assert.Equal(t, "a", tasks[0].Text)
}

func TestParseFilter(t *testing.T) {
	cases := map[string]Filter{
		"all":         All,
		"ACTIVE":      Active,
		" completed ": Completed,
	}
	for in, want := range cases {
		got, err := ParseFilter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, f := range Filters {
		got, err := ParseFilter(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := ParseFilter("done")
	assert.EqualError(t, err, "invalid filter: done (want all, active or completed)")
}

func TestCanClearCompleted(t *testing.T) {
	assert.False(t, CanClearCompleted(0))
	assert.True(t, CanClearCompleted(1))
}
