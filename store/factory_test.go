package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuntime(t *testing.T) {
	t.Run("non-persistent context selects the mock store", func(t *testing.T) {
		rt := NewRuntime(Options{Persistent: false})
		defer rt.Close()

		backend, err := rt.Backend()
		require.NoError(t, err)
		assert.IsType(t, &Mock{}, backend)
	})

	t.Run("persistent context selects the local store", func(t *testing.T) {
		rt := NewRuntime(Options{
			Persistent: true,
			Path:       filepath.Join(t.TempDir(), "rt.db"),
		})
		defer rt.Close()

		backend, err := rt.Backend()
		require.NoError(t, err)
		assert.IsType(t, &Local{}, backend)
	})

	t.Run("backend is cached for the runtime's lifetime", func(t *testing.T) {
		rt := NewRuntime(Options{Persistent: false})
		defer rt.Close()

		b1, err := rt.Backend()
		require.NoError(t, err)
		b2, err := rt.Backend()
		require.NoError(t, err)
		assert.Same(t, b1, b2)
	})

	t.Run("distinct runtimes never share a backend", func(t *testing.T) {
		rt1 := NewRuntime(Options{Persistent: false})
		rt2 := NewRuntime(Options{Persistent: false})
		defer rt1.Close()
		defer rt2.Close()

		b1, err := rt1.Backend()
		require.NoError(t, err)
		b2, err := rt2.Backend()
		require.NoError(t, err)
		assert.NotSame(t, b1, b2)
	})

	t.Run("sqlite without persistence is storage unavailable", func(t *testing.T) {
		rt := NewRuntime(Options{Persistent: false, Driver: DriverSQLite})
		defer rt.Close()

		_, err := rt.Backend()
		assert.ErrorIs(t, err, ErrStorageUnavailable)
	})

	t.Run("selection error is sticky", func(t *testing.T) {
		rt := NewRuntime(Options{Persistent: false, Driver: DriverSQLite})
		defer rt.Close()

		_, err1 := rt.Backend()
		_, err2 := rt.Backend()
		assert.Equal(t, err1, err2)
	})

	t.Run("environment override picks the driver", func(t *testing.T) {
		t.Setenv("PLANORA_STORE_DRIVER", "mock")

		rt := NewRuntime(Options{
			Persistent: true,
			Path:       filepath.Join(t.TempDir(), "ignored.db"),
		})
		defer rt.Close()

		backend, err := rt.Backend()
		require.NoError(t, err)
		assert.IsType(t, &Mock{}, backend)
	})

	t.Run("unknown driver fails", func(t *testing.T) {
		rt := NewRuntime(Options{Driver: Driver("postgres")})
		defer rt.Close()

		_, err := rt.Backend()
		assert.Error(t, err)
	})
}
