package bufferpool

import "github.com/tuannm99/bufpool/internal/storage"

// FrameID is an index into the pool's frame array, stable for the life
// of the pool.
type FrameID int

// Frame is a fixed-size in-memory slot holding at most one logical
// page plus its metadata. Passive data: the Pool is the only thing
// that mutates a Frame.
type Frame struct {
	PageID   storage.PageID
	PinCount int32
	Dirty    bool
	Data     [storage.PageSize]byte
}

// unbound reports whether the frame currently holds no page. An
// unbound frame must have pin count zero and must not be dirty.
func (f *Frame) unbound() bool {
	return f.PageID == storage.InvalidPageID
}

func (f *Frame) reset() {
	f.PageID = storage.InvalidPageID
	f.PinCount = 0
	f.Dirty = false
}
