// Package clockx implements the CLOCK (second-chance) page-replacement
// ring: an O(1)-amortized approximation of LRU built from one reference
// bit per slot and a sweeping hand, independent of any particular
// buffer pool shape.
package clockx

// Clock tracks, for each slot id in [0, capacity), whether it is
// currently present in the ring, whether it may be evicted, and its
// reference bit. It holds no payload of its own.
type Clock struct {
	present   []bool
	evictable []bool
	ref       []bool
	hand      int
	evictSize int
}

// New creates a Clock over capacity slots. capacity <= 0 is coerced to
// 1 so a zero-value pool never produces a Clock with no slots to scan.
func New(capacity int) *Clock {
	if capacity <= 0 {
		capacity = 1
	}
	return &Clock{
		present:   make([]bool, capacity),
		evictable: make([]bool, capacity),
		ref:       make([]bool, capacity),
	}
}

// Capacity returns the number of slots the ring was built with.
func (c *Clock) Capacity() int { return len(c.present) }

// Size returns the number of slots currently evictable.
func (c *Clock) Size() int { return c.evictSize }

// Touch records an access to id: the slot becomes present (if it
// wasn't already) and its reference bit is set. Touch alone does not
// make a slot evictable -- that's SetEvictable's job.
func (c *Clock) Touch(id int) {
	if !c.inRange(id) {
		return
	}
	c.present[id] = true
	c.ref[id] = true
}

// SetEvictable toggles whether a present slot may be chosen by Evict.
// A no-op on an id that was never Touch-ed, and a no-op if the
// requested state already holds (Size only changes on a real
// transition).
func (c *Clock) SetEvictable(id int, evictable bool) {
	if !c.inRange(id) || !c.present[id] {
		return
	}
	if c.evictable[id] == evictable {
		return
	}
	c.evictable[id] = evictable
	if evictable {
		c.evictSize++
	} else {
		c.evictSize--
	}
}

// Remove drops id from the ring entirely (present, evictable, and
// reference bits all clear). A no-op on an id that isn't present.
func (c *Clock) Remove(id int) {
	if !c.inRange(id) || !c.present[id] {
		return
	}
	if c.evictable[id] {
		c.evictSize--
	}
	c.present[id] = false
	c.evictable[id] = false
	c.ref[id] = false
}

// Evict sweeps the hand forward looking for an evictable slot whose
// reference bit is already clear. An evictable slot with its
// reference bit set is given a second chance: the bit is cleared and
// the hand moves on. The sweep is bounded to two full laps -- beyond
// that, every evictable slot has already had its bit cleared once, so
// a third lap can only find the same victims a second lap would have.
// ok is false iff Size() == 0.
func (c *Clock) Evict() (id int, ok bool) {
	n := len(c.present)
	if n == 0 || c.evictSize == 0 {
		return -1, false
	}

	for swept := 0; swept < 2*n; swept++ {
		i := c.hand
		c.hand = (c.hand + 1) % n

		if !c.present[i] || !c.evictable[i] {
			continue
		}
		if c.ref[i] {
			c.ref[i] = false
			continue
		}

		c.present[i] = false
		c.evictable[i] = false
		c.evictSize--
		return i, true
	}
	return -1, false
}

func (c *Clock) inRange(id int) bool {
	return id >= 0 && id < len(c.present)
}
