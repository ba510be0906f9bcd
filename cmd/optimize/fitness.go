package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/evosim/config"
	"github.com/pthm-cable/evosim/sim"
	"github.com/pthm-cable/evosim/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
	lastSurvive float64 // mean survival ticks from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// LastSurvival returns the mean survival ticks from the most recent evaluation.
func (fe *FitnessEvaluator) LastSurvival() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSurvive
}

// If either class stays below minViablePop for extinctionGraceTicks
// consecutive ticks it counts as functionally extinct.
const (
	minViablePop         = 3
	extinctionGraceTicks = 500
	warmupTicks          = 100
)

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int                     // ticks before functional extinction (or maxTicks if survived)
	windowStats   []telemetry.WindowStats // collected via StatsCallback each window
}

type seedResult struct {
	fitness  float64
	quality  float64
	survival float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	if err := fe.params.ApplyToConfig(cfg, x); err != nil {
		// Unusable parameter sets score as an immediate collapse
		return 0
	}

	// Seeds share the config read-only and run in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(cfg, s)
			quality := computeQuality(result.windowStats)
			results[idx] = seedResult{
				fitness:  computeFitness(result.survivalTicks, quality),
				quality:  quality,
				survival: float64(result.survivalTicks),
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality, totalSurvival float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
		totalSurvival += r.survival
	}
	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.lastSurvive = totalSurvival / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes a single headless simulation run.
// Runs until functional extinction or maxTicks, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) *runResult {
	result := &runResult{}

	s, err := sim.New(cfg, sim.Options{
		Seed: seed,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return result
	}
	defer s.Close()

	var herbBelow, predBelow int
	for s.Tick() < fe.maxTicks {
		s.Step()

		tick := s.Tick()
		if tick < warmupTicks {
			continue
		}

		predators, herbivores := s.Environment().PopulationCounts()
		if predators == 0 || herbivores == 0 {
			result.survivalTicks = tick
			return result
		}

		herbBelow = belowCount(herbivores, herbBelow)
		predBelow = belowCount(predators, predBelow)
		if herbBelow >= extinctionGraceTicks || predBelow >= extinctionGraceTicks {
			result.survivalTicks = tick
			return result
		}
	}

	result.survivalTicks = fe.maxTicks
	return result
}

func belowCount(pop, count int) int {
	if pop < minViablePop {
		return count + 1
	}
	return 0
}

// copyConfig returns a copy of the base config. Config holds no references,
// so a value copy is deep.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness calculates the scalar fitness (lower = better).
// Survival dominates; quality adds up to 20% to separate configs with
// similar survival.
func computeFitness(survivalTicks int, quality float64) float64 {
	return -(float64(survivalTicks) * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightRatio     = 0.35
	qualityWeightStability = 0.30
	qualityWeightEnergy    = 0.20
	qualityWeightHunting   = 0.15

	qualityWarmupWindows = 1 // skip first N windows
	qualityMinPop        = 3 // exclude windows where either class < this

	targetRatio = 10.0 // herbivores per predator
)

// computeQuality computes ecosystem quality in [0, 1] from window stats.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}

	var ratioSum, energySum, huntSum float64
	var valid, huntCount int
	herbCounts := make([]float64, 0, len(windows))
	predCounts := make([]float64, 0, len(windows))

	for _, w := range windows[qualityWarmupWindows:] {
		if w.Herbivores < qualityMinPop || w.Predators < qualityMinPop {
			continue
		}
		valid++

		herbCounts = append(herbCounts, float64(w.Herbivores))
		predCounts = append(predCounts, float64(w.Predators))

		logErr := math.Log(float64(w.Herbivores) / float64(w.Predators) / targetRatio)
		ratioSum += math.Exp(-logErr * logErr)

		// Median energy should sit comfortably above starvation
		herbH := 1 - math.Exp(-w.HerbEnergyP50/30)
		predH := 1 - math.Exp(-w.PredEnergyP50/30)
		energySum += (herbH + predH) / 2

		if w.Kills > 0 {
			killsPerPred := float64(w.Kills) / float64(w.Predators)
			huntSum += 1 - math.Exp(-killsPerPred)
			huntCount++
		}
	}

	if valid == 0 {
		return 0
	}

	ratioScore := ratioSum / float64(valid)
	energyScore := energySum / float64(valid)

	stabilityScore := 0.0
	if valid >= 2 {
		cvHerb := cv(herbCounts)
		cvPred := cv(predCounts)
		stabilityScore = math.Exp(-(cvHerb*cvHerb + cvPred*cvPred))
	}

	huntScore := 0.0
	if huntCount > 0 {
		huntScore = huntSum / float64(huntCount)
	}

	quality := qualityWeightRatio*ratioScore +
		qualityWeightStability*stabilityScore +
		qualityWeightEnergy*energyScore +
		qualityWeightHunting*huntScore

	return math.Max(0, math.Min(1, quality))
}

// cv computes the coefficient of variation (std/mean).
func cv(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean, std := stat.MeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}
