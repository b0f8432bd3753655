package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gsrelax/config"
	"gsrelax/core"
	"gsrelax/metrics"
	"gsrelax/monitor"
)

func runSolve(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Logging.Verbosity)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	grid, err := core.NewGrid(cfg.Grid.Size)
	if err != nil {
		return err
	}
	grid.FillInterior(cfg.Grid.Initial)
	grid.ApplyBoundary(core.Boundary{
		Top:    cfg.Grid.Boundary.Top,
		Bottom: cfg.Grid.Boundary.Bottom,
		Left:   cfg.Grid.Boundary.Left,
		Right:  cfg.Grid.Boundary.Right,
	})

	metrics.Register(prometheus.DefaultRegisterer)
	opts := []core.Option{
		core.WithLogger(log),
		core.WithObserver(metrics.Observer()),
	}

	if cfg.Monitor.Addr != "" {
		mon := monitor.New(cfg.Monitor.Addr, log.WithName("monitor"))
		if err := mon.Start(); err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = mon.Shutdown(ctx)
		}()
		opts = append(opts, core.WithObserver(mon))
	}

	solver, err := core.New(grid, core.Params{
		Workers:    cfg.Solver.Workers,
		Iterations: cfg.Solver.Iterations,
		Tolerance:  cfg.Solver.Tolerance,
		SpinPause:  cfg.Solver.SpinPause,
	}, opts...)
	if err != nil {
		return err
	}

	res := solver.Run()

	if res.Converged {
		fmt.Fprintf(cmd.OutOrStdout(),
			"solution converged at iteration %d (residual %.6g)\n",
			res.Iteration, res.Residual)
	} else {
		// Not an error: the grid holds the best approximation after
		// the configured sweeps.
		fmt.Fprintf(cmd.OutOrStdout(),
			"reached maximum of %d iterations without converging (residual %.6g, tolerance %.6g)\n",
			cfg.Solver.Iterations, res.Residual, cfg.Solver.Tolerance)
	}
	return nil
}

// newLogger builds a zap-backed logr.Logger. Verbosity n enables V(n) and
// below.
func newLogger(verbosity int) (logr.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity))
	z, err := zc.Build()
	if err != nil {
		return logr.Logger{}, err
	}
	return zapr.NewLogger(z), nil
}
