package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/smarttask/internal/history"
	"github.com/manav03panchal/smarttask/internal/model"
	"github.com/manav03panchal/smarttask/internal/storage"
	"github.com/manav03panchal/smarttask/internal/storage/sqlite"
)

// backends opens each real store in memory.
func backends(t *testing.T) map[string]storage.Repos {
	t.Helper()

	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sq, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sq.Close() })

	return map[string]storage.Repos{
		storage.BackendBadger: storage.NewRepos(db),
		storage.BackendSQLite: sq.Repos(),
	}
}

func TestUndoRoundTripOnBackends(t *testing.T) {
	for name, repos := range backends(t) {
		t.Run(name, func(t *testing.T) {
			c := New(repos, history.New(history.DefaultMaxDepth), Options{Now: fixedNow})
			_, err := c.EnsureDefaultCategories()
			require.NoError(t, err)

			original := mustCreate(t, c, TaskInput{
				Title:       "Buy milk",
				Description: "2 litres",
				Due:         "2025-06-12",
				Priority:    "high",
				Category:    "Home",
				Tags:        []string{"errand", "today"},
			})
			stored, err := c.GetTask(original.ID)
			require.NoError(t, err)

			_, err = c.DeleteTask(original.ID)
			require.NoError(t, err)

			res, err := c.Undo()
			require.NoError(t, err)
			require.NotNil(t, res)

			restored, err := c.GetTask(original.ID)
			require.NoError(t, err)
			assert.Equal(t, stored, restored)

			// A fresh task never reuses the restored id.
			next := mustCreate(t, c, TaskInput{Title: "Next"})
			assert.Greater(t, next.ID, original.ID)
		})
	}
}

func TestCompleteUndoOnBackends(t *testing.T) {
	for name, repos := range backends(t) {
		t.Run(name, func(t *testing.T) {
			c := New(repos, history.New(0), Options{Now: fixedNow})
			task := mustCreate(t, c, TaskInput{Title: "Late report", Due: "2025-06-02"})

			n, err := c.MarkOverdue(c.Today())
			require.NoError(t, err)
			require.Equal(t, 1, n)

			_, err = c.CompleteTask(task.ID)
			require.NoError(t, err)
			got, err := c.GetTask(task.ID)
			require.NoError(t, err)
			require.Equal(t, model.StatusCompleted, got.Status)

			_, err = c.Undo()
			require.NoError(t, err)
			got, err = c.GetTask(task.ID)
			require.NoError(t, err)
			assert.Equal(t, model.StatusOverdue, got.Status)

			entries, err := c.RecentActivity(10)
			require.NoError(t, err)
			require.NotEmpty(t, entries)
			assert.Equal(t, model.ActivityUndo, entries[0].Kind)
		})
	}
}

func TestDanglingRefsOnBackends(t *testing.T) {
	for name, repos := range backends(t) {
		t.Run(name, func(t *testing.T) {
			c := New(repos, nil, Options{Now: fixedNow})
			_, err := c.CreateCategory("Garden", "")
			require.NoError(t, err)

			task := mustCreate(t, c, TaskInput{Title: "Plant roses", Category: "Garden", Tags: []string{"spring"}})
			_, err = c.DeleteTask(task.ID)
			require.NoError(t, err)
			_, err = c.DeleteCategory("Garden")
			require.NoError(t, err)
			_, err = c.DeleteTag("spring")
			require.NoError(t, err)

			_, err = c.Undo()
			require.NoError(t, err)

			got, err := c.GetTask(task.ID)
			require.NoError(t, err)
			assert.Zero(t, got.CategoryID)
			assert.Empty(t, got.TagIDs)
		})
	}
}
