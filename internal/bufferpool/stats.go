package bufferpool

// Stats is a point-in-time snapshot of pool occupancy and access
// counters, for operators embedding the pool (not itself part of the
// fetch/unpin/flush contract).
type Stats struct {
	TotalFrames  int
	PinnedFrames int
	DirtyFrames  int
	FreeFrames   int
	Hits         int64
	Misses       int64
	Evictions    int64
}

// Stats reports the pool's current occupancy and lifetime counters.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := Stats{
		TotalFrames: len(p.frames),
		FreeFrames:  len(p.freeList),
		Hits:        p.hits,
		Misses:      p.misses,
		Evictions:   p.evictions,
	}
	for i := range p.frames {
		if p.frames[i].PinCount > 0 {
			s.PinnedFrames++
		}
		if p.frames[i].Dirty {
			s.DirtyFrames++
		}
	}
	return s
}
