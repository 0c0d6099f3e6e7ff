// Package bufferpool implements the buffer pool manager (BPM): the
// in-memory page cache between a storage manager and its callers.
//
// Invariants maintained across every operation: every frame is either
// unbound and free, bound and pinned, or bound and replacer-tracked;
// the page table holds an entry for a page id exactly when some frame
// holds that page; a replacer-tracked frame always has a zero pin
// count; a free-list frame is always unbound, clean, and untracked;
// and every frame is resident (in the page table) or free, never both
// and never neither.
package bufferpool
