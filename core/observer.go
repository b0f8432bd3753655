package core

import "time"

// IterationSnapshot describes one completed iteration. Converged stays true
// from the first iteration whose residual dropped to the tolerance, even
// though the solver keeps sweeping until the configured maximum.
type IterationSnapshot struct {
	Iteration int
	Residual  float64
	Converged bool
	Elapsed   time.Duration
}

// IterationObserver receives a snapshot after every iteration's reduction.
// Calls are made by worker 0 while the other workers are parked at the
// post-reduction barrier, so observers run with exclusive access to the
// snapshot but stall the whole pool for as long as they take.
type IterationObserver interface {
	ObserveIteration(IterationSnapshot)
}

// IterationObserverFunc adapts a plain function to IterationObserver.
type IterationObserverFunc func(IterationSnapshot)

// ObserveIteration implements IterationObserver.
func (f IterationObserverFunc) ObserveIteration(s IterationSnapshot) { f(s) }
