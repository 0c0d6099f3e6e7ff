package bufferpool

import "github.com/tuannm99/bufpool/pkg/clockx"

// Replacer is the victim-selection capability the BPM depends on. It
// tracks frame indices and their reference bits only — it holds no
// page data. Alternative policies (LRU, LRU-K, 2Q) can satisfy this
// interface in place of clock without the BPM changing at all.
type Replacer interface {
	// RecordVictimCandidate marks f as an eviction candidate and
	// (re)asserts its reference bit. Idempotent: calling it again on an
	// already-tracked frame only reasserts the bit, it does not change
	// Size().
	RecordVictimCandidate(f FrameID)

	// RemoveCandidate removes f from the tracked set. Idempotent.
	RemoveCandidate(f FrameID)

	// ChooseVictim returns a tracked frame chosen by the replacement
	// algorithm, removing it from the tracked set. ok is false iff
	// Size() == 0.
	ChooseVictim() (f FrameID, ok bool)

	// Size returns the number of tracked (candidate) frames.
	Size() int
}

var _ Replacer = (*clockReplacer)(nil)

// clockReplacer adapts pkg/clockx's second-chance ring to the Replacer
// interface. Every tracked frame is, by construction, evictable — the
// BPM only ever calls RecordVictimCandidate on frames whose pin count
// has just dropped to zero, so clockx's separate present/evictable
// bits collapse into one tracked bit here.
type clockReplacer struct {
	c *clockx.Clock
}

func newClockReplacer(capacity int) *clockReplacer {
	return &clockReplacer{c: clockx.New(capacity)}
}

func (r *clockReplacer) RecordVictimCandidate(f FrameID) {
	r.c.Touch(int(f))
	r.c.SetEvictable(int(f), true)
}

func (r *clockReplacer) RemoveCandidate(f FrameID) {
	r.c.Remove(int(f))
}

func (r *clockReplacer) ChooseVictim() (FrameID, bool) {
	id, ok := r.c.Evict()
	if !ok {
		return 0, false
	}
	return FrameID(id), true
}

func (r *clockReplacer) Size() int {
	return r.c.Size()
}
