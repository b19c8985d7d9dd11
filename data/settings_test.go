package data

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planora/store"
)

func TestSettingsForUser(t *testing.T) {
	a := setupAdapter(t)
	ctx := context.Background()

	t.Run("first read seeds defaults", func(t *testing.T) {
		settings, err := a.Settings.ForUser(ctx, "u1")
		require.NoError(t, err)
		require.NotNil(t, settings)

		assert.NotEmpty(t, settings.ID)
		assert.Equal(t, "u1", settings.UserID)
		assert.Equal(t, "light", settings.Theme)
		assert.Equal(t, 25, settings.WorkDuration)
		assert.Equal(t, 5, settings.ShortBreakDuration)
		assert.Equal(t, 15, settings.LongBreakDuration)
		assert.Equal(t, "USD", settings.Currency)
		assert.True(t, settings.NotificationsEnabled)
	})

	t.Run("repeated reads return the same record", func(t *testing.T) {
		first, err := a.Settings.ForUser(ctx, "u1")
		require.NoError(t, err)
		second, err := a.Settings.ForUser(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("concurrent first reads create one record", func(t *testing.T) {
		const n = 10

		var wg sync.WaitGroup
		ids := make(chan string, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				settings, err := a.Settings.ForUser(ctx, "u-fresh")
				if assert.NoError(t, err) {
					ids <- settings.ID
				}
			}()
		}
		wg.Wait()
		close(ids)

		seen := make(map[string]bool)
		for id := range ids {
			seen[id] = true
		}
		assert.Len(t, seen, 1, "all concurrent first reads must resolve to one settings record")
	})
}

func TestSettingsApply(t *testing.T) {
	a := setupAdapter(t)
	ctx := context.Background()

	t.Run("apply without existing settings creates defaults plus patch", func(t *testing.T) {
		settings, err := a.Settings.Apply(ctx, "u2", store.Document{"theme": "dark"})
		require.NoError(t, err)

		assert.Equal(t, "dark", settings.Theme)
		assert.Equal(t, "USD", settings.Currency)
		assert.Equal(t, "u2", settings.UserID)
	})

	t.Run("apply on existing settings patches in place", func(t *testing.T) {
		before, err := a.Settings.ForUser(ctx, "u2")
		require.NoError(t, err)

		after, err := a.Settings.Apply(ctx, "u2", store.Document{"workDuration": 50})
		require.NoError(t, err)

		assert.Equal(t, before.ID, after.ID)
		assert.Equal(t, 50, after.WorkDuration)
		assert.Equal(t, "dark", after.Theme, "earlier patch survives")

		backend, err := a.rt.Backend()
		require.NoError(t, err)
		docs, err := backend.FindMany(ctx, store.CollectionUserSettings, store.FindOptions{
			Where: store.Where{"userId": "u2"},
		})
		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})
}
