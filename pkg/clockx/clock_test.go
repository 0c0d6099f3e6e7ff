package clockx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_NonPositiveCapacityCoercesToOne(t *testing.T) {
	c := New(0)
	require.Equal(t, 1, c.Capacity())
	require.Equal(t, 0, c.Size())

	c = New(-5)
	require.Equal(t, 1, c.Capacity())
}

func TestTouch_DoesNotMakeASlotEvictableOnItsOwn(t *testing.T) {
	c := New(3)

	c.Touch(1)
	require.Zero(t, c.Size(), "touch alone must not grow the evictable count")

	c.SetEvictable(1, true)
	require.Equal(t, 1, c.Size())

	// Re-asserting the same evictable state is a no-op on Size.
	c.SetEvictable(1, true)
	require.Equal(t, 1, c.Size())

	c.SetEvictable(1, false)
	require.Zero(t, c.Size())
}

func TestSetEvictable_IgnoredUntilSlotHasBeenTouched(t *testing.T) {
	c := New(2)

	c.SetEvictable(0, true)
	require.Zero(t, c.Size(), "a slot that was never touched is not present, so this must be a no-op")

	c.Touch(0)
	c.SetEvictable(0, true)
	require.Equal(t, 1, c.Size())
}

func TestEvict_ReturnsFalseWhenNothingIsEvictable(t *testing.T) {
	c := New(2)
	c.Touch(0)
	c.Touch(1)

	id, ok := c.Evict()
	require.False(t, ok)
	require.Equal(t, -1, id)
	require.Zero(t, c.Size())
}

func TestEvict_SweepsAllCandidatesExactlyOnceWithNoRepeats(t *testing.T) {
	c := New(3)
	for i := 0; i < 3; i++ {
		c.Touch(i)
		c.SetEvictable(i, true)
	}
	require.Equal(t, 3, c.Size())

	seen := map[int]bool{}
	for want := 3; want > 0; want-- {
		v, ok := c.Evict()
		require.True(t, ok)
		require.False(t, seen[v], "a slot must not be returned twice across one full drain")
		seen[v] = true
		require.Equal(t, want-1, c.Size())
	}
	require.Len(t, seen, 3)

	_, ok := c.Evict()
	require.False(t, ok, "an empty ring has nothing left to evict")
}

func TestEvict_GivesARecentlyTouchedSlotASecondChance(t *testing.T) {
	c := New(2)
	c.Touch(0)
	c.Touch(1)
	c.SetEvictable(0, true)
	c.SetEvictable(1, true)

	// Slot 0 is touched again right before the sweep. Both slots already
	// carry a set reference bit from their first Touch, so the first lap
	// clears both bits without evicting either, and a victim is only
	// taken on the second lap.
	c.Touch(0)

	first, ok := c.Evict()
	require.True(t, ok)
	require.Contains(t, []int{0, 1}, first)
	require.Equal(t, 1, c.Size())

	second, ok := c.Evict()
	require.True(t, ok)
	require.NotEqual(t, first, second, "the other candidate must come out next")
	require.Zero(t, c.Size())
}

func TestRemove_OnlyDecrementsSizeForAnEvictableSlot(t *testing.T) {
	c := New(3)
	c.Touch(0)
	c.Touch(1)
	c.SetEvictable(0, true)
	c.SetEvictable(1, true)
	require.Equal(t, 2, c.Size())

	c.Remove(0)
	require.Equal(t, 1, c.Size())

	// Removing an already-removed (or never-present) slot is a no-op.
	c.Remove(0)
	require.Equal(t, 1, c.Size())

	// A present-but-not-evictable slot removed cleanly without touching Size.
	c.Touch(2)
	c.Remove(2)
	require.Equal(t, 1, c.Size())
}

func TestRemove_ExcludesTheSlotFromLaterEvictions(t *testing.T) {
	c := New(4)
	for i := 0; i < 4; i++ {
		c.Touch(i)
		c.SetEvictable(i, true)
	}

	c.Remove(2)
	require.Equal(t, 3, c.Size())

	for want := 3; want > 0; want-- {
		v, ok := c.Evict()
		require.True(t, ok)
		require.NotEqual(t, 2, v, "a removed slot must never be handed back as a victim")
	}
	_, ok := c.Evict()
	require.False(t, ok)
}

func TestOutOfRangeIDsAreSilentlyIgnored(t *testing.T) {
	c := New(2)

	c.Touch(-1)
	c.Touch(2)
	c.SetEvictable(-1, true)
	c.SetEvictable(2, true)
	c.Remove(-1)
	c.Remove(2)

	require.Zero(t, c.Size())
	_, ok := c.Evict()
	require.False(t, ok)
}
