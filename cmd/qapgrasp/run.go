package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	grasp "github.com/scarvalho/qapgrasp"
	"github.com/scarvalho/qapgrasp/config"
	"github.com/scarvalho/qapgrasp/metrics"
	"github.com/scarvalho/qapgrasp/rng"
	"github.com/scarvalho/qapgrasp/zlog"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Args:  cobra.NoArgs,
	Short: "Generate a random QAP instance and solve it with GRASP + path-relinking",
	RunE:  runSolve,
}

func init() {
	runCmd.Flags().Int("n", 20, "instance dimension")
	runCmd.Flags().Float64("alpha", 0, "RCL greediness in (0,1] (0 uses config/default)")
	runCmd.Flags().Float64("beta", 0, "phase-1 candidate window in (0,1] (0 uses config/default)")
	runCmd.Flags().Int("elite-size", 0, "elite pool capacity (0 uses config/default)")
	runCmd.Flags().Int("max-itr", 0, "maximum GRASP+path-relink iterations (0 uses config/default)")
	runCmd.Flags().Int64("look4", 0, "stop early once this cost is reached (zero or negative disables)")
	runCmd.Flags().Duration("max-time", 0, "wall-clock time budget (0 disables)")
	runCmd.Flags().Uint32("seed", 0, "RNG seed (0 uses config/default)")
	runCmd.Flags().Int64("instance-seed", 1, "seed for the random instance generator")
	runCmd.Flags().String("metrics-addr", "", "if set, serve Prometheus metrics on this address while the run is in progress")
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	n, _ := cmd.Flags().GetInt("n")
	if alpha, _ := cmd.Flags().GetFloat64("alpha"); alpha != 0 {
		cfg.Solver.Alpha = alpha
	}
	if beta, _ := cmd.Flags().GetFloat64("beta"); beta != 0 {
		cfg.Solver.Beta = beta
	}
	if eliteSize, _ := cmd.Flags().GetInt("elite-size"); eliteSize != 0 {
		cfg.Solver.EliteSize = eliteSize
	}
	if maxIter, _ := cmd.Flags().GetInt("max-itr"); maxIter != 0 {
		cfg.Solver.MaxIter = maxIter
	}
	if look4, _ := cmd.Flags().GetInt64("look4"); cmd.Flags().Changed("look4") {
		cfg.Solver.Look4 = look4
	}
	if maxTime, _ := cmd.Flags().GetDuration("max-time"); maxTime != 0 {
		cfg.Solver.MaxTime = maxTime
	}
	if seed, _ := cmd.Flags().GetUint32("seed"); seed != 0 {
		cfg.Solver.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := zerolog.InfoLevel
	if verbose || cfg.Logging.Level == "debug" {
		level = zerolog.DebugLevel
	}
	logger := zlog.New(zlog.WithLevel(level))

	var m *metrics.Metrics
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
	enableMetrics := cfg.Metrics.Enabled || cmd.Flags().Changed("metrics-addr")
	if metricsAddr == "" {
		metricsAddr = cfg.Metrics.Addr
	}
	if enableMetrics {
		m = metrics.New(nil)
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		go func() {
			logger.Infof("serving metrics on %s", metricsAddr)
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				logger.Warnf("metrics server stopped: %v", err)
			}
		}()
	}

	instSeed, _ := cmd.Flags().GetInt64("instance-seed")
	inst, err := randomInstance(n, uint32(instSeed))
	if err != nil {
		return fmt.Errorf("generating instance: %w", err)
	}

	params := grasp.Params{
		Alpha:     cfg.Solver.Alpha,
		Beta:      cfg.Solver.Beta,
		MaxIter:   cfg.Solver.MaxIter,
		Look4:     cfg.Solver.Look4,
		EliteSize: cfg.Solver.EliteSize,
		MaxTime:   cfg.Solver.MaxTime,
		Seed:      cfg.Solver.Seed,
		Logger:    logger,
	}
	if m != nil {
		params.Metrics = m
	}

	start := time.Now()
	result, err := grasp.Solve(context.Background(), inst, params)
	if err != nil {
		return err
	}

	fmt.Printf("best cost: %d\n", result.Cost)
	fmt.Printf("iterations: %d\n", result.Iterations)
	fmt.Printf("elapsed: %s\n", time.Since(start))
	fmt.Printf("permutation: %v\n", result.Perm)
	return nil
}

// randomInstance builds a symmetric, zero-diagonal QAP instance of dimension
// n: distances and flows are each drawn uniformly from [1,100]. This module
// never reads instance files, so run always generates its own instance.
func randomInstance(n int, seed uint32) (*grasp.Instance, error) {
	g := rng.New(seed)
	dist := make([]int64, n*n)
	flow := make([]int64, n*n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := int64(1 + g.Intn(100))
			f := int64(1 + g.Intn(100))
			dist[i*n+j], dist[j*n+i] = d, d
			flow[i*n+j], flow[j*n+i] = f, f
		}
	}
	return grasp.NewInstance(n, flow, dist)
}
