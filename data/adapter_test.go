package data

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planora/models"
	"planora/store"
)

func setupAdapter(t *testing.T) *Adapter {
	t.Helper()

	rt := store.NewRuntime(store.Options{
		Persistent: true,
		Path:       filepath.Join(t.TempDir(), "adapter.db"),
		Driver:     store.DriverSQLite,
	})
	t.Cleanup(func() { rt.Close() })

	return NewFactory().For(rt)
}

func TestFactory(t *testing.T) {
	t.Run("one adapter per runtime", func(t *testing.T) {
		rt := store.NewRuntime(store.Options{Persistent: false, Driver: store.DriverMock})
		defer rt.Close()

		f := NewFactory()
		a1 := f.For(rt)
		a2 := f.For(rt)
		assert.Same(t, a1, a2)
	})

	t.Run("different runtimes get different adapters", func(t *testing.T) {
		rt1 := store.NewRuntime(store.Options{Persistent: false, Driver: store.DriverMock})
		rt2 := store.NewRuntime(store.Options{Persistent: false, Driver: store.DriverMock})
		defer rt1.Close()
		defer rt2.Close()

		f := NewFactory()
		assert.NotSame(t, f.For(rt1), f.For(rt2))
	})
}

func TestCollectionRoundtrip(t *testing.T) {
	a := setupAdapter(t)
	ctx := context.Background()

	due := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	task, err := a.Tasks.Create(ctx, models.Task{
		UserID:   "u1",
		Title:    "write report",
		Priority: "high",
		DueDate:  &due,
		Tags:     []string{"work"},
	})
	require.NoError(t, err)

	t.Run("create fills the envelope", func(t *testing.T) {
		assert.NotEmpty(t, task.ID)
		assert.Equal(t, "u1", task.UserID)
		assert.False(t, task.CreatedAt.IsZero())
		assert.Equal(t, task.CreatedAt, task.UpdatedAt)
		require.NotNil(t, task.DueDate)
		assert.True(t, due.Equal(*task.DueDate))
	})

	t.Run("find unique by id", func(t *testing.T) {
		found, err := a.Tasks.FindUnique(ctx, task.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "write report", found.Title)
	})

	t.Run("missing record decodes to nil", func(t *testing.T) {
		found, err := a.Tasks.FindUnique(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		updated, err := a.Tasks.Update(ctx, task.ID, store.Document{"completed": true})
		require.NoError(t, err)

		assert.True(t, updated.Completed)
		assert.Equal(t, "write report", updated.Title)
		assert.Equal(t, "high", updated.Priority)
		assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
	})

	t.Run("find many filters by owner", func(t *testing.T) {
		_, err := a.Tasks.Create(ctx, models.Task{UserID: "u2", Title: "other"})
		require.NoError(t, err)

		tasks, err := a.Tasks.FindMany(ctx, store.FindOptions{
			Where: store.Where{"userId": "u1"},
		})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "write report", tasks[0].Title)
	})

	t.Run("delete then read back nil", func(t *testing.T) {
		id, err := a.Tasks.Delete(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, id)

		found, err := a.Tasks.FindUnique(ctx, task.ID)
		require.NoError(t, err)
		assert.Nil(t, found)

		// idempotent
		_, err = a.Tasks.Delete(ctx, task.ID)
		assert.NoError(t, err)
	})
}

func TestAdapterErrorPropagation(t *testing.T) {
	a := setupAdapter(t)
	ctx := context.Background()

	_, err := a.Notes.Update(ctx, "missing", store.Document{"title": "x"})
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = a.Notes.Create(ctx, models.Note{ID: "n1", UserID: "u1", Title: "a"})
	require.NoError(t, err)
	_, err = a.Notes.Create(ctx, models.Note{ID: "n1", UserID: "u1", Title: "b"})
	assert.ErrorIs(t, err, store.ErrDuplicateKey)
}

func TestMockBackedAdapter(t *testing.T) {
	rt := store.NewRuntime(store.Options{Persistent: false, Driver: store.DriverMock})
	defer rt.Close()
	a := NewFactory().For(rt)
	ctx := context.Background()

	t.Run("lists are empty, writes fabricate", func(t *testing.T) {
		tasks, err := a.Tasks.FindMany(ctx, store.FindOptions{})
		require.NoError(t, err)
		assert.Empty(t, tasks)

		task, err := a.Tasks.Create(ctx, models.Task{UserID: "u1", Title: "ghost"})
		require.NoError(t, err)
		assert.NotEmpty(t, task.ID)
		assert.Equal(t, "ghost", task.Title)
	})

	t.Run("settings reads fabricate defaults", func(t *testing.T) {
		settings, err := a.Settings.ForUser(ctx, "u1")
		require.NoError(t, err)
		require.NotNil(t, settings)
		assert.Equal(t, "u1", settings.UserID)
		assert.Equal(t, "light", settings.Theme)
		assert.Equal(t, 25, settings.WorkDuration)
	})
}
