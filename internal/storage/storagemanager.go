package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// FileSet opens the segment files backing one logical file (table,
// index, ...). Segments are named Base, Base.1, Base.2, ...
type FileSet interface {
	OpenSegment(segNo int32) (*os.File, error)
}

var _ FileSet = (*LocalFileSet)(nil)

// LocalFileSet is a FileSet rooted at a local directory.
type LocalFileSet struct {
	Dir  string
	Base string
}

// SegFileName returns the on-disk name of segment segNo of a file whose
// base name is base: segment 0 is base itself, segment N>0 is
// "base.N" — the classic Postgres-style relation-fork naming the
// teacher's own segmented storage layer followed.
func SegFileName(base string, segNo int32) string {
	if segNo == 0 {
		return base
	}
	return fmt.Sprintf("%s.%d", base, segNo)
}

func (lfs LocalFileSet) OpenSegment(segNo int32) (*os.File, error) {
	name := SegFileName(lfs.Base, segNo)
	path := filepath.Join(lfs.Dir, name)
	if err := os.MkdirAll(lfs.Dir, FileMode0755); err != nil {
		return nil, fmt.Errorf("storage: mkdir %s: %w", lfs.Dir, err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, FileMode0644)
	if err != nil {
		return nil, fmt.Errorf("storage: open segment %s: %w", path, err)
	}
	return f, nil
}

// StorageManager maps a logical PageID to (segment, offset) and
// performs the raw reads/writes, plus id allocation. It is the BPM's
// downward collaborator, implemented just concretely enough to make
// the pool testable end to end.
type StorageManager struct {
	mu      sync.Mutex
	nextID  PageID
	freeIDs []PageID
}

// NewStorageManager creates a StorageManager whose id allocator starts
// at page 0.
func NewStorageManager() *StorageManager {
	return &StorageManager{nextID: 0}
}

func pagesPerSegment() int32 {
	return SegmentSize / PageSize
}

func locate(pageID PageID) (segNo int32, offset int64) {
	pps := pagesPerSegment()
	segNo = int32(pageID) / pps
	pageInSeg := int32(pageID) % pps
	offset = int64(pageInSeg) * PageSize
	return segNo, offset
}

// ReadPage fills buf (exactly PageSize bytes) with the on-disk contents
// of pageID. A page never written to is zero-filled — this lets
// new_page's caller read back a logically empty page without the
// storage manager needing a separate "does this page exist" notion.
func (sm *StorageManager) ReadPage(fs FileSet, pageID PageID, buf []byte) error {
	if pageID == InvalidPageID {
		return ErrInvalidPageID
	}
	if len(buf) != PageSize {
		return ErrWrongBufferSize
	}

	segNo, off := locate(pageID)
	f, err := fs.OpenSegment(segNo)
	if err != nil {
		return err
	}
	defer closeFile(f)

	n, err := f.ReadAt(buf, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%w: %v", ErrStorageIO, err)
	}
	for i := n; i < PageSize; i++ {
		buf[i] = 0
	}
	return nil
}

// WritePage persists buf (exactly PageSize bytes) as pageID.
func (sm *StorageManager) WritePage(fs FileSet, pageID PageID, buf []byte) error {
	if pageID == InvalidPageID {
		return ErrInvalidPageID
	}
	if len(buf) != PageSize {
		return ErrWrongBufferSize
	}

	segNo, off := locate(pageID)
	f, err := fs.OpenSegment(segNo)
	if err != nil {
		return err
	}
	defer closeFile(f)

	n, err := f.WriteAt(buf, off)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageIO, err)
	}
	if n != PageSize {
		return fmt.Errorf("%w: short write", ErrStorageIO)
	}
	return nil
}

// AllocatePage reserves a fresh page id, preferring ids freed by a
// prior DeallocatePage before growing the monotonic counter.
func (sm *StorageManager) AllocatePage() PageID {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if n := len(sm.freeIDs); n > 0 {
		id := sm.freeIDs[n-1]
		sm.freeIDs = sm.freeIDs[:n-1]
		return id
	}
	id := sm.nextID
	sm.nextID++
	return id
}

// DeallocatePage reclaims pageID so a later AllocatePage may reuse it.
// Reclaiming the same id twice is a caller bug but is tolerated
// (idempotent) rather than returning an error: nothing downstream of
// this call observes anything other than "the id may now be reused".
func (sm *StorageManager) DeallocatePage(pageID PageID) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for _, id := range sm.freeIDs {
		if id == pageID {
			return
		}
	}
	sm.freeIDs = append(sm.freeIDs, pageID)
}

func closeFile(f *os.File) {
	if err := f.Close(); err != nil {
		_ = err // best-effort close; nothing actionable at this layer
	}
}
