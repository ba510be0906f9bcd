package telemetry

import (
	"github.com/pthm-cable/evosim/components"
	"github.com/pthm-cable/evosim/traits"
)

// RosterSample is the population state sampled when a window is flushed.
type RosterSample struct {
	Herbivores int
	Predators  int
	Food       int

	HerbivoreEnergies []float64
	PredatorEnergies  []float64

	// Per-organism trait values
	Metabolism []float64
	Sense      []float64
	Activeness []float64
	Size       []float64

	MaxGeneration int
}

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int

	// Current window tracking
	windowStartTick int

	// Event counters for current window
	herbBirths  int
	predBirths  int
	herbDeaths  int
	predDeaths  int
	causes      [4]int // indexed by components.DeathCause
	kills       int
	harvested   float64
	foodSpawned int
	foodEaten   int
	foodEnergy  float64
	lifespanSum int
}

// NewCollector creates a new stats collector flushing every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowDurationTicks: windowTicks}
}

// Record counts an event in the current window.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventBirth:
		if ev.Class == traits.Predator {
			c.predBirths++
		} else {
			c.herbBirths++
		}
	case EventDeath:
		if ev.Class == traits.Predator {
			c.predDeaths++
		} else {
			c.herbDeaths++
		}
		if int(ev.Cause) < len(c.causes) {
			c.causes[ev.Cause]++
		}
		c.lifespanSum += ev.Age
	case EventKill:
		c.kills++
		c.harvested += ev.Amount
	case EventFoodSpawned:
		c.foodSpawned++
	case EventFoodEaten:
		c.foodEaten++
		c.foodEnergy += ev.Amount
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int, sample RosterSample) WindowStats {
	herbMean, herbP10, herbP50, herbP90 := ComputeEnergyStats(sample.HerbivoreEnergies)
	predMean, predP10, predP50, predP90 := ComputeEnergyStats(sample.PredatorEnergies)

	deaths := c.herbDeaths + c.predDeaths
	var meanLifespan float64
	if deaths > 0 {
		meanLifespan = float64(c.lifespanSum) / float64(deaths)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Herbivores: sample.Herbivores,
		Predators:  sample.Predators,
		Food:       sample.Food,

		HerbivoreBirths: c.herbBirths,
		PredatorBirths:  c.predBirths,
		HerbivoreDeaths: c.herbDeaths,
		PredatorDeaths:  c.predDeaths,

		Starved:   c.causes[components.CauseStarvation],
		DiedOfAge: c.causes[components.CauseOldAge],
		Eaten:     c.causes[components.CausePredation],

		Kills:           c.kills,
		EnergyHarvested: c.harvested,
		FoodSpawned:     c.foodSpawned,
		FoodEaten:       c.foodEaten,
		FoodEnergy:      c.foodEnergy,

		MeanLifespan:  meanLifespan,
		MaxGeneration: sample.MaxGeneration,

		HerbEnergyMean: herbMean,
		HerbEnergyP10:  herbP10,
		HerbEnergyP50:  herbP50,
		HerbEnergyP90:  herbP90,

		PredEnergyMean: predMean,
		PredEnergyP10:  predP10,
		PredEnergyP50:  predP50,
		PredEnergyP90:  predP90,
	}
	stats.MetabolismMean, stats.MetabolismStd = TraitStats(sample.Metabolism)
	stats.SenseMean, stats.SenseStd = TraitStats(sample.Sense)
	stats.ActivenessMean, stats.ActivenessStd = TraitStats(sample.Activeness)
	stats.SizeMean, stats.SizeStd = TraitStats(sample.Size)

	// Reset for next window
	*c = Collector{
		windowDurationTicks: c.windowDurationTicks,
		windowStartTick:     currentTick,
	}

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int {
	return c.windowDurationTicks
}
