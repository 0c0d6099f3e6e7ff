package bufferpool

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/tuannm99/bufpool/internal/storage"
)

var logPrefix = "bufferpool: "

var (
	// ErrNoFreeFrame names the condition in which fetch/new_page find no
	// frame (free list empty, Replacer tracks nothing). Pool's methods
	// report it as a false ok; none of them returns this value.
	ErrNoFreeFrame = errors.New("bufferpool: no free frame available (all pinned)")

	// ErrPagePinned names the condition in which delete_page refuses a
	// resident, pinned page. DeletePage reports it as false; it does not
	// return this value.
	ErrPagePinned = errors.New("bufferpool: page is pinned")
)

// Pool is the buffer pool manager: it owns a fixed-size array of
// frames and mediates all page I/O on behalf of callers, maintaining
// at most one cached copy per page id, refusing to evict a pinned
// frame, and flushing dirty frames before reuse.
type Pool struct {
	sm *storage.StorageManager
	fs storage.FileSet

	mu        sync.Mutex
	frames    []Frame
	pageTable map[storage.PageID]FrameID
	freeList  []FrameID
	replacer  Replacer

	hits, misses, evictions int64
}

// NewPool creates a Pool of the given capacity backed by sm/fs. Every
// frame starts unbound, clean, and on the free list.
func NewPool(sm *storage.StorageManager, fs storage.FileSet, capacity int) *Pool {
	if capacity <= 0 {
		capacity = 1
	}

	p := &Pool{
		sm:        sm,
		fs:        fs,
		frames:    make([]Frame, capacity),
		pageTable: make(map[storage.PageID]FrameID, capacity),
		freeList:  make([]FrameID, capacity),
		replacer:  newClockReplacer(capacity),
	}
	for i := range p.frames {
		p.frames[i].PageID = storage.InvalidPageID
		p.freeList[i] = FrameID(i)
	}
	return p
}

// Size returns the pool's fixed frame count.
func (p *Pool) Size() int {
	return len(p.frames)
}

// Fetch pins and returns the frame holding page_id, loading it from
// storage on a miss. It fails when no frame is free and no frame is
// evictable (every frame pinned), or when writing back the dirty victim
// or reading the page from storage fails.
func (p *Pool) Fetch(pageID storage.PageID) (FrameID, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if fid, ok := p.pageTable[pageID]; ok {
		f := &p.frames[fid]
		f.PinCount++
		if f.PinCount == 1 {
			p.replacer.RemoveCandidate(fid)
		}
		p.hits++
		slog.Debug(logPrefix+"fetch hit", "pageID", pageID, "frame", fid, "pin", f.PinCount)
		return fid, true
	}

	fid, fromFree, ok := p.acquireFrame()
	if !ok {
		slog.Debug(logPrefix + "fetch miss: no free frame")
		return 0, false
	}
	p.misses++

	f := &p.frames[fid]
	if !fromFree {
		if err := p.evictLocked(fid); err != nil {
			// Leave the frame exactly as it was: binding and dirty bit
			// preserved, caller sees a plain miss.
			slog.Error(logPrefix+"fetch: write-back failed, aborting", "frame", fid, "err", err)
			return 0, false
		}
	}

	if err := p.sm.ReadPage(p.fs, pageID, f.Data[:]); err != nil {
		slog.Error(logPrefix+"fetch: read failed", "pageID", pageID, "err", err)
		// The frame is unbound again (evictLocked/acquireFrame already
		// cleared it); put it back on the free list rather than leak it.
		p.freeList = append(p.freeList, fid)
		return 0, false
	}

	f.PageID = pageID
	f.Dirty = false
	f.PinCount = 1
	p.pageTable[pageID] = fid
	slog.Debug(logPrefix+"fetch miss: loaded", "pageID", pageID, "frame", fid)
	return fid, true
}

// acquireFrame returns a destination frame for an incoming page: the
// free list's head if non-empty, else a Replacer victim. fromFree
// tells the caller whether step "flush old binding" is needed.
func (p *Pool) acquireFrame() (fid FrameID, fromFree bool, ok bool) {
	if n := len(p.freeList); n > 0 {
		fid = p.freeList[0]
		p.freeList = p.freeList[1:]
		return fid, true, true
	}
	fid, ok = p.replacer.ChooseVictim()
	return fid, false, ok
}

// evictLocked writes back fid's current binding if dirty, removes it
// from the page table, and unbinds the frame. On write-back failure
// the frame is left completely untouched (binding and dirty bit
// preserved) so the caller's abort leaves no trace — but fid was
// already pulled out of the Replacer by acquireFrame's ChooseVictim
// call before evictLocked ever runs, so it must be handed back as a
// victim candidate here, or the frame ends up bound, unpinned, and
// untracked by anything. Caller holds p.mu.
func (p *Pool) evictLocked(fid FrameID) error {
	f := &p.frames[fid]
	if f.Dirty {
		if err := p.sm.WritePage(p.fs, f.PageID, f.Data[:]); err != nil {
			p.replacer.RecordVictimCandidate(fid)
			return err
		}
	}
	delete(p.pageTable, f.PageID)
	p.evictions++
	f.reset()
	return nil
}

// Unpin declares the caller done with page_id. Returns false if the
// page is not resident or already has a zero pin count.
func (p *Pool) Unpin(pageID storage.PageID, dirty bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	fid, ok := p.pageTable[pageID]
	if !ok {
		return false
	}
	f := &p.frames[fid]
	if f.PinCount == 0 {
		return false
	}

	if dirty {
		f.Dirty = true
	}
	f.PinCount--
	if f.PinCount == 0 {
		p.replacer.RecordVictimCandidate(fid)
	}
	slog.Debug(logPrefix+"unpin", "pageID", pageID, "frame", fid, "pin", f.PinCount, "dirty", f.Dirty)
	return true
}

// Flush writes page_id's current in-memory bytes to storage and clears
// its dirty bit. Returns false for INVALID or a non-resident id.
func (p *Pool) Flush(pageID storage.PageID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flushLocked(pageID)
}

func (p *Pool) flushLocked(pageID storage.PageID) bool {
	if pageID == storage.InvalidPageID {
		return false
	}
	fid, ok := p.pageTable[pageID]
	if !ok {
		return false
	}
	f := &p.frames[fid]
	if err := p.sm.WritePage(p.fs, pageID, f.Data[:]); err != nil {
		slog.Error(logPrefix+"flush failed", "pageID", pageID, "err", err)
		return false
	}
	f.Dirty = false
	return true
}

// NewPage allocates a fresh page id via the storage manager, binds it
// to a frame pinned once, and returns both. Fails if every frame is
// pinned, or if writing back the dirty victim fails.
func (p *Pool) NewPage() (storage.PageID, FrameID, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	allPinned := true
	for i := range p.frames {
		if p.frames[i].PinCount == 0 {
			allPinned = false
			break
		}
	}
	if allPinned {
		slog.Debug(logPrefix + "new_page: pool full, all frames pinned")
		return storage.InvalidPageID, 0, false
	}

	fid, fromFree, ok := p.acquireFrame()
	if !ok {
		return storage.InvalidPageID, 0, false
	}

	if !fromFree {
		if err := p.evictLocked(fid); err != nil {
			// Leave the frame exactly as it was, same as Fetch's abort
			// path: evictLocked has already restored it as a victim
			// candidate, so it must not also go on the free list.
			slog.Error(logPrefix+"new_page: write-back failed, aborting", "frame", fid, "err", err)
			return storage.InvalidPageID, 0, false
		}
	}

	pageID := p.sm.AllocatePage()
	f := &p.frames[fid]
	for i := range f.Data {
		f.Data[i] = 0
	}
	f.PageID = pageID
	f.Dirty = false
	f.PinCount = 1
	p.pageTable[pageID] = fid
	slog.Debug(logPrefix+"new_page", "pageID", pageID, "frame", fid)
	return pageID, fid, true
}

// DeletePage releases page_id permanently. Returns true if page_id was
// not resident (nothing to invalidate), false if resident and pinned,
// true after removing a resident-unpinned page from the pool and
// deallocating its id.
func (p *Pool) DeletePage(pageID storage.PageID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	fid, ok := p.pageTable[pageID]
	if !ok {
		return true
	}
	f := &p.frames[fid]
	if f.PinCount > 0 {
		return false
	}

	delete(p.pageTable, pageID)
	p.replacer.RemoveCandidate(fid)
	f.reset()
	p.freeList = append(p.freeList, fid)
	p.sm.DeallocatePage(pageID)
	slog.Debug(logPrefix+"delete_page", "pageID", pageID, "frame", fid)
	return true
}

// FlushAll writes back every resident page.
func (p *Pool) FlushAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.frames {
		if p.frames[i].unbound() {
			continue
		}
		p.flushLocked(p.frames[i].PageID)
	}
}

// Data exposes the page buffer for frame fid, read/write. Callers must
// hold a pin obtained from Fetch/NewPage for the duration of any
// access; a pinned frame's binding never changes underneath its
// holder, so these accessors need no latch of their own.
func (p *Pool) Data(fid FrameID) []byte {
	return p.frames[fid].Data[:]
}

// PageID returns the page id currently bound to frame fid.
func (p *Pool) PageID(fid FrameID) storage.PageID {
	return p.frames[fid].PageID
}
