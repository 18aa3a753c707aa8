package draft

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auracity/admin-review-bot/internal/review"
)

func TestMemoryRegistry(t *testing.T) {
	ctx := context.Background()
	key := review.DraftKey{AdminID: "a1", RaterID: "r1"}

	t.Run("GetOrCreate returns a fresh draft once", func(t *testing.T) {
		reg := NewMemoryRegistry()

		d, err := reg.GetOrCreate(ctx, key)
		require.NoError(t, err)
		assert.False(t, d.Complete())

		_, err = reg.SetField(ctx, key, review.CategoryService, 3)
		require.NoError(t, err)

		d, err = reg.GetOrCreate(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 3, d.Service, "existing draft must be reused")
	})

	t.Run("SetField returns the updated draft", func(t *testing.T) {
		reg := NewMemoryRegistry()

		d, err := reg.SetField(ctx, key, review.CategoryService, 3)
		require.NoError(t, err)
		assert.False(t, d.Complete())

		d, err = reg.SetField(ctx, key, review.CategorySolving, 4)
		require.NoError(t, err)
		assert.False(t, d.Complete())

		d, err = reg.SetField(ctx, key, review.CategoryCommunication, 5)
		require.NoError(t, err)
		assert.True(t, d.Complete())
		assert.Equal(t, review.Draft{Service: 3, Solving: 4, Communication: 5}, d)
	})

	t.Run("SetField overwrites a repeated category", func(t *testing.T) {
		reg := NewMemoryRegistry()

		_, err := reg.SetField(ctx, key, review.CategoryService, 3)
		require.NoError(t, err)
		d, err := reg.SetField(ctx, key, review.CategoryService, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, d.Service)
	})

	t.Run("Remove deletes and tolerates absent keys", func(t *testing.T) {
		reg := NewMemoryRegistry()

		_, err := reg.SetField(ctx, key, review.CategoryService, 3)
		require.NoError(t, err)
		require.NoError(t, reg.Remove(ctx, key))

		d, err := reg.GetOrCreate(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 0, d.Service)

		require.NoError(t, reg.Remove(ctx, review.DraftKey{AdminID: "x", RaterID: "y"}))
	})

	t.Run("keys are isolated per admin-rater pair", func(t *testing.T) {
		reg := NewMemoryRegistry()
		other := review.DraftKey{AdminID: "a1", RaterID: "r2"}

		_, err := reg.SetField(ctx, key, review.CategoryService, 5)
		require.NoError(t, err)

		d, err := reg.GetOrCreate(ctx, other)
		require.NoError(t, err)
		assert.Equal(t, 0, d.Service)
	})
}

// Interleaved picks for the same key must not lose either field.
func TestMemoryRegistry_ConcurrentSetField(t *testing.T) {
	ctx := context.Background()
	reg := NewMemoryRegistry()
	key := review.DraftKey{AdminID: "a1", RaterID: "r1"}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := reg.SetField(ctx, key, review.CategoryService, 3)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := reg.SetField(ctx, key, review.CategorySolving, 4)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	d, err := reg.GetOrCreate(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Service)
	assert.Equal(t, 4, d.Solving)
}
