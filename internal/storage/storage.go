// Package storage implements the downward API the buffer pool manager
// consumes: raw fixed-size page I/O against segmented local files, plus
// page id allocation. It owns no page cache and no replacement policy —
// that lives in internal/bufferpool.
package storage

import (
	"errors"
)

const (
	oneKB = 1024

	// PageSize is the fixed size, in bytes, of every page and every frame.
	PageSize = 8 * oneKB

	// SegmentSize bounds how many pages live in one on-disk segment file
	// before a new one is opened (1 GiB, matching a classic Postgres-style
	// layout).
	SegmentSize = 1 << 30

	FileMode0644 = 0o644
	FileMode0755 = 0o755
)

// PageID identifies a logical page. The storage manager assigns these;
// nothing above it invents one. INVALID marks "no page".
type PageID int32

// InvalidPageID is the sentinel for "no page".
const InvalidPageID PageID = -1

var (
	ErrInvalidPageID   = errors.New("storage: invalid page id")
	ErrWrongBufferSize = errors.New("storage: buffer must be exactly PageSize bytes")
	ErrStorageIO       = errors.New("storage: I/O error")
)
