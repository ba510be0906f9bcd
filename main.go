package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/evosim/config"
	"github.com/pthm-cable/evosim/sim"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	s, err := sim.New(cfg, sim.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		StepsPerUpdate: *stepsPerUpdate,
	})
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := s.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}()

	slog.Info("starting simulation",
		"seed", rngSeed,
		"max_ticks", *maxTicks,
		"steps_per_update", *stepsPerUpdate,
		"output_dir", *outputDir,
	)

	start := time.Now()
	for {
		s.Update()

		if s.Extinct() {
			break
		}
		if *maxTicks > 0 && s.Tick() >= *maxTicks {
			slog.Info("max ticks reached", "tick", s.Tick())
			break
		}
	}

	summary := s.Environment().Summary()
	slog.Info("simulation finished",
		"tick", s.Tick(),
		"elapsed", time.Since(start).String(),
		"predators", summary.Predators,
		"herbivores", summary.Herbivores,
		"food", summary.Food,
		"avg_speed", summary.AvgSpeed,
		"avg_size", summary.AvgSize,
		"max_age", summary.MaxAge,
	)
}
