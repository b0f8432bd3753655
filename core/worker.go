package core

import "sync/atomic"

const cacheLineSize = 64

// progressSentinel is the reset value for a worker's progress counter. It
// sits below the first interior row (1), so no neighbor proceeds until the
// current iteration has actually produced a row.
const progressSentinel = 0

// worker is the per-goroutine descriptor. Descriptors live in one contiguous
// slice; the trailing padding keeps the frequently written progress counter
// and error accumulator of adjacent workers on separate cache lines.
type worker struct {
	id   int
	cols ColumnRange

	// progress holds the highest interior row this worker has fully
	// written during the current iteration. The right neighbor spins on
	// it; monotonically increasing within an iteration.
	progress atomic.Int64

	// errSum accumulates |old - new| over the worker's cells. Written
	// only by the owner during the sweep, read by worker 0 between the
	// post-sweep and post-reduction barriers.
	errSum float64

	_ [cacheLineSize - (3*8+16)%cacheLineSize]byte
}
