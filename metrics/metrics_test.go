package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gsrelax/core"
)

func TestObserverFeedsCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	Register(reg)

	obs := Observer()
	obs.ObserveIteration(core.IterationSnapshot{
		Iteration: 1,
		Residual:  12.5,
		Converged: false,
		Elapsed:   3 * time.Millisecond,
	})

	assert.Equal(t, 12.5, testutil.ToFloat64(residual))
	assert.Equal(t, 0.0, testutil.ToFloat64(converged))

	obs.ObserveIteration(core.IterationSnapshot{
		Iteration: 2,
		Residual:  0.004,
		Converged: true,
		Elapsed:   2 * time.Millisecond,
	})

	assert.Equal(t, 0.004, testutil.ToFloat64(residual))
	assert.Equal(t, 1.0, testutil.ToFloat64(converged))
	assert.Equal(t, 2.0, testutil.ToFloat64(iterationsCompleted))

	count, err := testutil.GatherAndCount(reg,
		"gsrelax_iterations_completed_total",
		"gsrelax_residual",
		"gsrelax_converged",
		"gsrelax_iteration_duration_seconds",
	)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}
