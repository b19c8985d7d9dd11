package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	t.Run("rapid successive ids are distinct", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			id := NewID()
			assert.NotEmpty(t, id)
			assert.False(t, seen[id], "id %s generated twice", id)
			seen[id] = true
		}
	})
}
