// Package cmd wires the command line interface to the solver.
package cmd

import (
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gsrelax/config"
)

var rootCmd = &cobra.Command{
	Use:   "gsrelax",
	Short: "Parallel Gauss-Seidel grid relaxation",
	Long: `gsrelax solves a dense 2D elliptic relaxation problem with a fixed pool
of workers. A wavefront of per-worker progress counters pipelines adjacent
column ranges so the parallel sweep reproduces the exact update order of a
sequential Gauss-Seidel pass.`,
	RunE:          runSolve,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.Flags()
	flags.IntP("size", "s", 256, "grid dimension, boundary included")
	flags.IntP("workers", "w", runtime.NumCPU(), "number of sweep workers")
	flags.IntP("iterations", "i", 5000, "number of full sweeps to run")
	flags.Float64P("tolerance", "t", 0.01, "residual at which the run counts as converged")
	flags.Float64("initial", 0, "initial interior value")
	flags.Float64("top", 100, "top boundary value")
	flags.Float64("bottom", 0, "bottom boundary value")
	flags.Float64("left", 0, "left boundary value")
	flags.Float64("right", 0, "right boundary value")
	flags.Int("spin-pause", 100, "busy iterations between wavefront progress checks")
	flags.String("monitor-addr", "", "listen address for the websocket/metrics monitor (empty disables)")
	flags.CountP("verbose", "v", "increase log verbosity (repeatable)")

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is ./gsrelax.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	for key, flag := range map[string]string{
		"grid.size":            "size",
		"grid.initial":         "initial",
		"grid.boundary.top":    "top",
		"grid.boundary.bottom": "bottom",
		"grid.boundary.left":   "left",
		"grid.boundary.right":  "right",
		"solver.workers":       "workers",
		"solver.iterations":    "iterations",
		"solver.tolerance":     "tolerance",
		"solver.spin_pause":    "spin-pause",
		"monitor.addr":         "monitor-addr",
		"logging.verbosity":    "verbose",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}

func initConfig() {
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("gsrelax")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("GSRELAX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Config file is optional.
	_ = viper.ReadInConfig()
}
