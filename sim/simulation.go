package sim

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/evosim/components"
	"github.com/pthm-cable/evosim/config"
	"github.com/pthm-cable/evosim/genome"
	"github.com/pthm-cable/evosim/systems"
	"github.com/pthm-cable/evosim/telemetry"
)

// Options configures a simulation run.
type Options struct {
	Seed           int64
	Rand           genome.Rand // Overrides Seed when set
	LogStats       bool        // Log window stats and bookmarks via slog
	OutputDir      string      // CSV and config output; empty disables it
	StepsPerUpdate int         // Ticks per Update call
	StatsCallback  func(telemetry.WindowStats)
}

// Simulation is the tick scheduler. It owns the environment and the
// telemetry that observes it.
type Simulation struct {
	cfg *config.Config
	env *Environment
	rng genome.Rand

	// State
	tick           int
	paused         bool
	stepsPerUpdate int

	// Telemetry
	collector     *telemetry.Collector
	lifetime      *telemetry.LifetimeTracker
	history       *telemetry.PopulationHistory
	bookmarks     *telemetry.BookmarkDetector
	perf          *telemetry.PerfCollector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	// Population samples not yet written to population.csv
	pendingPopulation []telemetry.PopulationPoint
}

// New creates a simulation and seeds the initial food and population.
func New(cfg *config.Config, opts Options) (*Simulation, error) {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(opts.Seed))
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	s := &Simulation{
		cfg:            cfg,
		env:            NewEnvironment(cfg, rng),
		rng:            rng,
		stepsPerUpdate: steps,
		collector:      telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		lifetime:       telemetry.NewLifetimeTracker(),
		history:        telemetry.NewPopulationHistory(cfg.Telemetry.HistorySize),
		bookmarks: telemetry.NewBookmarkDetector(
			cfg.Bookmarks.HistorySize,
			cfg.Bookmarks.CrashDropPercent,
			cfg.Bookmarks.CrashMinDrop,
		),
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		output:        output,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}

	s.seed()
	return s, nil
}

// seed places the initial food and random organisms.
func (s *Simulation) seed() {
	for i := 0; i < s.cfg.Food.Initial; i++ {
		s.env.SpawnFood()
	}

	w, h := s.env.Width(), s.env.Height()
	for i := 0; i < s.cfg.Population.Initial; i++ {
		pos := components.Position{
			X: systems.Uniform(s.rng, 0, w),
			Y: systems.Uniform(s.rng, 0, h),
		}
		s.AddOrganism(genome.NewRandom(s.rng, s.cfg.Genome), pos, s.cfg.Population.InitialEnergy)
	}

	predators, herbivores := s.env.PopulationCounts()
	slog.Info("world seeded",
		"width", s.cfg.World.Width,
		"height", s.cfg.World.Height,
		"predators", predators,
		"herbivores", herbivores,
		"food", s.env.FoodCount(),
	)
}

// AddOrganism inserts a founder organism and registers it with the lifetime tracker.
func (s *Simulation) AddOrganism(g genome.Genome, pos components.Position, energy float64) ecs.Entity {
	id := s.env.NextID()
	e := s.env.AddOrganism(g, pos, energy)
	s.lifetime.Register(id, s.tick, 0)
	return e
}

// Update advances the world by StepsPerUpdate ticks unless paused.
func (s *Simulation) Update() {
	if s.paused {
		return
	}
	for i := 0; i < s.stepsPerUpdate; i++ {
		s.Step()
	}
}

// Step advances the world by exactly one tick, paused or not.
func (s *Simulation) Step() {
	s.perf.StartTick()
	s.tick++

	s.perf.StartPhase(telemetry.PhaseFood)
	if s.tick%s.cfg.Food.SpawnInterval == 0 {
		energy := s.env.SpawnFood()
		s.collector.Record(telemetry.NewFoodSpawnedEvent(s.tick, energy))
	}

	// Organisms born this tick are appended past n and wait for the next tick
	s.perf.StartPhase(telemetry.PhaseOrganisms)
	n := len(s.env.roster)
	for i := 0; i < n; i++ {
		s.recordOutcome(s.env.UpdateOrganism(s.env.roster[i]))
	}

	s.perf.StartPhase(telemetry.PhaseReap)
	s.recordDeaths(s.env.RemoveDead())

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.recordPopulation()
	s.flushTelemetry()

	s.perf.EndTick(n)
}

// SetPaused pauses or resumes Update.
func (s *Simulation) SetPaused(paused bool) { s.paused = paused }

// TogglePause flips the pause state.
func (s *Simulation) TogglePause() { s.paused = !s.paused }

// Paused reports whether Update is currently a no-op.
func (s *Simulation) Paused() bool { return s.paused }

// StepsPerUpdate returns the number of ticks each Update runs.
func (s *Simulation) StepsPerUpdate() int { return s.stepsPerUpdate }

// SetStepsPerUpdate sets the ticks per Update, at least 1.
func (s *Simulation) SetStepsPerUpdate(n int) {
	if n < 1 {
		n = 1
	}
	s.stepsPerUpdate = n
}

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() int { return s.tick }

// Environment returns the simulated environment.
func (s *Simulation) Environment() *Environment { return s.env }

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() *config.Config { return s.cfg }

// History returns the population history ring buffer.
func (s *Simulation) History() *telemetry.PopulationHistory { return s.history }

// Lifetime returns the per-organism lifetime tracker.
func (s *Simulation) Lifetime() *telemetry.LifetimeTracker { return s.lifetime }

// Perf returns the tick phase timing collector.
func (s *Simulation) Perf() *telemetry.PerfCollector { return s.perf }

// Extinct reports whether no organisms remain.
func (s *Simulation) Extinct() bool { return s.env.Len() == 0 }

// Close writes pending output and closes the output files.
func (s *Simulation) Close() error {
	if err := s.writePendingPopulation(); err != nil {
		slog.Error("failed to write population", "error", err)
	}
	return s.output.Close()
}
