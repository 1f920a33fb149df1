package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextCapacity(t *testing.T) {
	assert.Equal(t, 16, NextCapacity(0, 1))
	assert.Equal(t, 16, NextCapacity(0, 16))
	assert.Equal(t, 32, NextCapacity(0, 17))
	assert.Equal(t, 32, NextCapacity(16, 17))
	assert.Equal(t, 64, NextCapacity(16, 50))
	assert.Equal(t, 128, NextCapacity(64, 65))
	// Capacities below the floor are promoted before doubling.
	assert.Equal(t, 16, NextCapacity(4, 3))
}

func TestShrinkCapacity(t *testing.T) {
	t.Run("halves at quarter utilization", func(t *testing.T) {
		target, ok := ShrinkCapacity(32, 128)
		require.True(t, ok)
		assert.Equal(t, 64, target)

		target, ok = ShrinkCapacity(16, 64)
		require.True(t, ok)
		assert.Equal(t, 32, target)
	})

	t.Run("holds above the threshold", func(t *testing.T) {
		_, ok := ShrinkCapacity(33, 128)
		assert.False(t, ok)
	})

	t.Run("floor stops shrinking", func(t *testing.T) {
		_, ok := ShrinkCapacity(15, 128)
		assert.False(t, ok)
	})

	t.Run("no thrash after growth", func(t *testing.T) {
		// A block that just doubled to 32 for 16 elements must not
		// immediately qualify for shrinking.
		_, ok := ShrinkCapacity(16, 32)
		assert.False(t, ok)
	})
}

func TestRealloc(t *testing.T) {
	t.Run("grow preserves contents", func(t *testing.T) {
		fresh := Realloc([]int{1, 2, 3}, 8)
		assert.Equal(t, []int{1, 2, 3}, fresh)
		assert.Equal(t, 8, cap(fresh))
	})

	t.Run("same capacity is a no-op", func(t *testing.T) {
		old := make([]int, 3, 8)
		same := Realloc(old, 8)
		assert.True(t, &old[0] == &same[0])
	})

	t.Run("dropping live elements panics", func(t *testing.T) {
		require.Panics(t, func() {
			Realloc([]int{1, 2, 3}, 2)
		})
	})
}
