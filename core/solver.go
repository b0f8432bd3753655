package core

import (
	"fmt"
	"math"
	"time"

	"github.com/go-logr/logr"
	"github.com/sourcegraph/conc"
)

// Params configure a solve.
type Params struct {
	// Workers is the number of concurrent sweep goroutines.
	Workers int
	// Iterations is the number of full-grid sweeps. The solver always
	// runs all of them; convergence is recorded, not acted on.
	Iterations int
	// Tolerance is the global residual at or below which the solution
	// counts as converged.
	Tolerance float64
	// SpinPause is the busy-loop length between wavefront progress
	// checks. Zero selects DefaultSpinPause.
	SpinPause int
}

func (p Params) validate() error {
	if p.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", p.Workers)
	}
	if p.Iterations < 0 {
		return fmt.Errorf("iterations must not be negative, got %d", p.Iterations)
	}
	if p.Tolerance < 0 || math.IsNaN(p.Tolerance) {
		return fmt.Errorf("tolerance must be non-negative, got %v", p.Tolerance)
	}
	if p.SpinPause < 0 {
		return fmt.Errorf("spin pause must not be negative, got %d", p.SpinPause)
	}
	return nil
}

// Result reports the outcome of a run. Non-convergence is not an error: the
// grid still holds the best approximation after the configured iterations.
type Result struct {
	// Converged reports whether the residual reached the tolerance at any
	// iteration.
	Converged bool
	// Iteration is the first iteration (1-based) whose residual was at or
	// below the tolerance, or the configured maximum if none was.
	Iteration int
	// Residual is the global residual after the final iteration.
	Residual float64
}

// Solver runs wavefront-pipelined Gauss-Seidel relaxation over a grid.
//
// Each worker owns an exclusive contiguous column range. Within an
// iteration every worker sweeps rows top to bottom; before touching row i a
// worker spins until its left neighbor has published row i, because the
// leftmost owned cell of the row reads the neighbor's freshly written value.
// The result is a diagonal wave of activity that reproduces the exact update
// order of a sequential left-to-right sweep.
type Solver struct {
	grid   *Grid
	params Params
	log    logr.Logger
	obs    []IterationObserver

	workers []worker
	barrier *Barrier
	spin    spinWaiter

	// Written only by worker 0 between the post-sweep and post-reduction
	// barriers; read elsewhere only after Run returns.
	globalErr float64
	converged bool
	finalIter int
}

// Option customizes a Solver.
type Option func(*Solver)

// WithLogger attaches a logger for diagnostic narration. The default
// discards everything; logging never affects numeric results.
func WithLogger(log logr.Logger) Option {
	return func(s *Solver) { s.log = log }
}

// WithObserver registers an observer notified after every iteration.
func WithObserver(obs IterationObserver) Option {
	return func(s *Solver) { s.obs = append(s.obs, obs) }
}

// New validates the parameters and allocates the worker descriptors and the
// iteration barrier. The grid must already hold its boundary and initial
// interior values.
func New(grid *Grid, params Params, opts ...Option) (*Solver, error) {
	if grid == nil {
		return nil, fmt.Errorf("grid must not be nil")
	}
	if err := params.validate(); err != nil {
		return nil, fmt.Errorf("invalid solver params: %w", err)
	}
	if params.SpinPause == 0 {
		params.SpinPause = DefaultSpinPause
	}

	s := &Solver{
		grid:   grid,
		params: params,
		log:    logr.Discard(),

		workers: make([]worker, params.Workers),
		barrier: NewBarrier(params.Workers),
		spin:    spinWaiter{pause: params.SpinPause},

		// Start above the tolerance so a zero-iteration run never
		// reports convergence.
		globalErr: params.Tolerance + 1,
		finalIter: params.Iterations,
	}
	for _, opt := range opts {
		opt(s)
	}

	for t, cols := range Partition(grid.Size(), params.Workers) {
		s.workers[t].id = t
		s.workers[t].cols = cols
	}

	s.log.V(1).Info("solver initialized",
		"size", grid.Size(),
		"workers", params.Workers,
		"iterations", params.Iterations,
		"tolerance", params.Tolerance,
	)
	return s, nil
}

// Run executes the configured number of iterations and blocks until every
// worker has finished. A Solver is single-shot: Run must be called at most
// once.
func (s *Solver) Run() Result {
	s.log.V(1).Info("starting workers", "count", len(s.workers))

	var wg conc.WaitGroup
	for t := range s.workers {
		w := &s.workers[t]
		wg.Go(func() { s.compute(w) })
	}
	wg.Wait()

	res := Result{
		Converged: s.converged,
		Iteration: s.finalIter,
		Residual:  s.globalErr,
	}
	if res.Converged {
		s.log.Info("solution converged",
			"iteration", res.Iteration, "residual", res.Residual)
	} else {
		s.log.Info("reached maximum iterations without converging",
			"iterations", s.params.Iterations,
			"residual", res.Residual,
			"tolerance", s.params.Tolerance,
		)
	}
	return res
}

// compute is the worker body: one sweep per configured iteration, three
// barrier crossings per sweep.
func (s *Solver) compute(w *worker) {
	var left *worker
	if w.id > 0 {
		left = &s.workers[w.id-1]
	}

	for iter := 1; iter <= s.params.Iterations; iter++ {
		// Reset before anyone may read a neighbor's counter. A value
		// left over from the previous iteration would let the right
		// neighbor read rows that have not been swept yet.
		w.progress.Store(progressSentinel)
		w.errSum = 0
		s.barrier.Wait()

		start := time.Now()
		s.sweep(w, left)

		s.barrier.Wait()

		if w.id == 0 {
			s.reduce(iter, time.Since(start))
		}

		s.barrier.Wait()
	}
}

// sweep relaxes every interior row over w's column range, publishing row
// completion as it goes. Cells are updated in place, so the up and left
// neighbors are current-iteration values and the down and right neighbors
// are previous-iteration values, exactly as in a sequential Gauss-Seidel
// pass.
func (s *Solver) sweep(w, left *worker) {
	g := s.grid
	for row := 1; row <= g.size-2; row++ {
		if left != nil {
			s.spin.waitAtLeast(&left.progress, int64(row))
		}

		for col := w.cols.Lo; col < w.cols.Hi; col++ {
			i := g.Index(row, col)
			old := g.data[i]
			next := 0.25 * (g.data[i-g.size] + g.data[i+g.size] +
				g.data[i-1] + g.data[i+1])
			w.errSum += math.Abs(old - next)
			g.data[i] = next
		}

		w.progress.Store(int64(row))
	}
}

// reduce folds the per-worker residuals into the global residual, records
// the first converged iteration, and notifies observers. Runs on worker 0
// only, between the post-sweep and post-reduction barriers.
func (s *Solver) reduce(iter int, elapsed time.Duration) {
	total := 0.0
	for t := range s.workers {
		total += s.workers[t].errSum
	}
	s.globalErr = total

	if !s.converged && total <= s.params.Tolerance {
		s.converged = true
		s.finalIter = iter
		s.log.V(1).Info("tolerance reached", "iteration", iter, "residual", total)
	}

	s.log.V(2).Info("iteration complete",
		"iteration", iter, "residual", total, "elapsed", elapsed)

	snap := IterationSnapshot{
		Iteration: iter,
		Residual:  total,
		Converged: s.converged,
		Elapsed:   elapsed,
	}
	for _, o := range s.obs {
		o.ObserveIteration(snap)
	}
}
