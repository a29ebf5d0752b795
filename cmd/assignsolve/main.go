// Command assignsolve is a thin demonstration CLI around the network
// package. It builds a fixed ten-worker, five-task network, solves it,
// and prints the resulting assignment and score. It is not a parser for
// arbitrary input formats; feeding it real data is the job of whatever
// caller embeds the network package as a library.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/bill-pace/assignment-solver/internal/network"
	"github.com/bill-pace/assignment-solver/pkg/config"
	"github.com/bill-pace/assignment-solver/pkg/logger"
	"github.com/bill-pace/assignment-solver/pkg/metrics"
)

// taskBound is one task's headcount requirement.
type taskBound struct {
	name     string
	min, max int
}

var demoTasks = []taskBound{
	{"Task 1", 1, 2},
	{"Task 2", 2, 2},
	{"Task 3", 0, 2},
	{"Task 4", 2, 3},
	{"Task 5", 1, 2},
}

// demoAffinities[i][j] is worker i's score for demoTasks[j].
var demoAffinities = [][]float64{
	{2.5, 3.0, 1.1, 0.9, 2.0},
	{2.6, 1.9, 2.2, 1.4, 3.1},
	{1.0, 2.8, 3.3, 2.1, 0.7},
	{3.2, 2.0, 1.5, 0.6, 1.8},
	{0.8, 1.6, 2.4, 3.0, 2.9},
	{2.1, 0.9, 1.7, 2.6, 1.3},
	{1.4, 2.3, 0.5, 1.9, 3.2},
	{3.0, 1.1, 2.6, 0.8, 2.2},
	{0.6, 2.9, 1.3, 2.4, 1.7},
	{2.2, 1.5, 3.1, 1.0, 0.9},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger.InitWithConfig(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	var collectors *metrics.Collectors
	if cfg.Metrics.Enabled {
		collectors = metrics.NewCollectors(cfg.Metrics.Namespace, cfg.Metrics.Subsystem)
	}

	net := network.New()
	log := logger.WithSessionID(net.ID().String())
	log.Info("building demo network", "tasks", len(demoTasks), "workers", len(demoAffinities))

	for _, task := range demoTasks {
		if _, err := net.AddTask(task.name, task.min, task.max); err != nil {
			log.Error("failed to add task", "task", task.name, "error", err)
			os.Exit(1)
		}
	}

	for i, scores := range demoAffinities {
		affinities := make([]network.Affinity, len(scores))
		for j, score := range scores {
			affinities[j] = network.Affinity{Task: demoTasks[j].name, Score: score}
		}
		name := fmt.Sprintf("Worker %d", i+1)
		if _, err := net.AddWorker(name, affinities); err != nil {
			log.Error("failed to add worker", "worker", name, "error", err)
			os.Exit(1)
		}
	}

	ctx := context.Background()
	if cfg.Solve.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Solve.Timeout)
		defer cancel()
	}

	progress := metrics.NewProgressAdapter(len(demoAffinities))
	opts := network.DefaultSolveOptions().
		WithContext(ctx).
		WithProgress(func(fraction float64) {
			progress.Observe(fraction)
			log.Debug("solve progress", "fraction", fraction)
		})

	start := time.Now()
	err = net.Solve(opts)
	elapsed := time.Since(start)

	if collectors != nil {
		switch {
		case err == nil:
			collectors.ObserveSolve(metrics.OutcomeSuccess, elapsed, progress.Iterations(), net.TotalScore())
		case errors.Is(err, network.ErrInfeasible):
			collectors.ObserveSolve(metrics.OutcomeInfeasible, elapsed, 0, 0)
		default:
			collectors.ObserveSolve(metrics.OutcomeError, elapsed, 0, 0)
		}
	}

	if err != nil {
		log.Error("solve failed", "error", err)
		fmt.Fprintf(os.Stderr, "solve failed: %v\n", err)
		os.Exit(1)
	}

	log.Info("solve complete", "iterations", progress.Iterations(), "score", net.TotalScore(), "duration", elapsed)

	fmt.Printf("Total score: %.2f\n\n", net.TotalScore())
	for task, workers := range net.WorkerAssignments() {
		fmt.Printf("%s: %v\n", task, workers)
	}
}
