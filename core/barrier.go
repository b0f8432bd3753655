package core

import "sync"

// Barrier releases a fixed-size party of goroutines once all of them have
// arrived. It is cyclic: the same barrier is crossed three times per solver
// iteration. A phase counter distinguishes generations so a goroutine woken
// spuriously (or racing into the next cycle) never escapes early.
type Barrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	parties int
	waiting int
	phase   uint64
}

// NewBarrier creates a barrier for a fixed number of parties.
func NewBarrier(parties int) *Barrier {
	if parties <= 0 {
		panic("core: barrier parties must be > 0")
	}
	b := &Barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait blocks until all parties have arrived, then releases them together
// and resets the barrier for the next cycle. It returns the caller's arrival
// index: 0 for the first arrival, parties-1 for the arrival that tripped the
// barrier.
func (b *Barrier) Wait() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := b.waiting
	b.waiting++
	if b.waiting == b.parties {
		b.waiting = 0
		b.phase++
		b.cond.Broadcast()
		return idx
	}

	phase := b.phase
	for phase == b.phase {
		b.cond.Wait()
	}
	return idx
}
