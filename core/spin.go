package core

import (
	"runtime"
	"sync/atomic"
)

// DefaultSpinPause is the number of busy iterations between consecutive
// atomic loads in the wavefront wait.
const DefaultSpinPause = 100

// spinYieldEvery bounds the pure spin: after this many unsuccessful checks
// the waiter yields the processor so oversubscribed pools keep making
// progress.
const spinYieldEvery = 32

// spinWaiter blocks until an atomic counter reaches a minimum value. The
// wait is a busy spin rather than a blocking primitive: the handoff between
// adjacent workers is row-granular and latency-sensitive, and a condition
// variable wakeup would serialize the pipeline. The pause length is the
// tunable half of the policy; the check itself is always a plain atomic
// load.
type spinWaiter struct {
	pause int
}

func (s spinWaiter) waitAtLeast(ctr *atomic.Int64, min int64) {
	for checks := 0; ctr.Load() < min; checks++ {
		for i := 0; i < s.pause; i++ {
			// burn cycles off the coherence traffic
		}
		if checks%spinYieldEvery == spinYieldEvery-1 {
			runtime.Gosched()
		}
	}
}
