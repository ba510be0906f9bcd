package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/evosim/components"
	"github.com/pthm-cable/evosim/traits"
)

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(100)

	if c.ShouldFlush(99) {
		t.Error("ShouldFlush before window end")
	}
	if !c.ShouldFlush(100) {
		t.Error("ShouldFlush at window end")
	}

	events := []Event{
		NewBirthEvent(3, 10, 1, traits.Herbivore),
		NewBirthEvent(4, 11, 2, traits.Predator),
		NewBirthEvent(5, 12, 1, traits.Herbivore),
		NewFoodSpawnedEvent(5, 30),
		NewFoodEatenEvent(6, 10, traits.Herbivore, 30),
		NewKillEvent(7, 11, 12, 25),
		NewDeathEvent(7, 12, traits.Herbivore, components.CausePredation, 4),
		NewDeathEvent(50, 1, traits.Herbivore, components.CauseOldAge, 1100),
		NewDeathEvent(60, 2, traits.Predator, components.CauseStarvation, 300),
	}
	for _, ev := range events {
		c.Record(ev)
	}

	stats := c.Flush(100, RosterSample{
		Herbivores:        1,
		Predators:         1,
		Food:              8,
		HerbivoreEnergies: []float64{40},
		PredatorEnergies:  []float64{80},
		Metabolism:        []float64{0.4, 0.6},
		MaxGeneration:     2,
	})

	checks := []struct {
		name      string
		got, want int
	}{
		{"herb births", stats.HerbivoreBirths, 2},
		{"pred births", stats.PredatorBirths, 1},
		{"herb deaths", stats.HerbivoreDeaths, 2},
		{"pred deaths", stats.PredatorDeaths, 1},
		{"starved", stats.Starved, 1},
		{"died of age", stats.DiedOfAge, 1},
		{"eaten", stats.Eaten, 1},
		{"kills", stats.Kills, 1},
		{"food spawned", stats.FoodSpawned, 1},
		{"food eaten", stats.FoodEaten, 1},
		{"population", stats.Population(), 2},
		{"window start", stats.WindowStartTick, 0},
		{"window end", stats.WindowEndTick, 100},
		{"max generation", stats.MaxGeneration, 2},
	}
	for _, chk := range checks {
		if chk.got != chk.want {
			t.Errorf("%s = %d, want %d", chk.name, chk.got, chk.want)
		}
	}
	if math.Abs(stats.MeanLifespan-468) > 1e-9 {
		t.Errorf("mean lifespan = %v, want 468", stats.MeanLifespan)
	}
	if stats.EnergyHarvested != 25 || stats.FoodEnergy != 30 {
		t.Errorf("energy totals = %v / %v", stats.EnergyHarvested, stats.FoodEnergy)
	}
	if math.Abs(stats.MetabolismMean-0.5) > 1e-9 {
		t.Errorf("metabolism mean = %v, want 0.5", stats.MetabolismMean)
	}
	if stats.HerbEnergyMean != 40 || stats.PredEnergyMean != 80 {
		t.Errorf("energy means = %v / %v", stats.HerbEnergyMean, stats.PredEnergyMean)
	}

	// Counters reset and the next window starts at the flush tick
	next := c.Flush(200, RosterSample{})
	if next.HerbivoreBirths != 0 || next.Kills != 0 || next.MeanLifespan != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.WindowStartTick != 100 {
		t.Errorf("next window start = %d, want 100", next.WindowStartTick)
	}
}

func TestLifetimeTrackerGenerations(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(1, 0, 0)
	lt.RegisterChild(2, 1, 50)
	lt.RegisterChild(3, 2, 90)
	lt.RecordFood(1, 30)
	lt.RecordKill(1, 20)
	lt.UpdateEnergy(1, 75)
	lt.UpdateEnergy(1, 60)

	if got := lt.Get(3).Generation; got != 2 {
		t.Errorf("grandchild generation = %d, want 2", got)
	}
	if got := lt.Get(1).Children; got != 1 {
		t.Errorf("children = %d, want 1", got)
	}
	s := lt.Get(1)
	if s.TotalGained != 50 || s.FoodEaten != 1 || s.Kills != 1 || s.PeakEnergy != 75 {
		t.Errorf("lifetime stats = %+v", s)
	}

	lt.Remove(3)
	if lt.MaxGeneration() != 2 {
		t.Errorf("MaxGeneration = %d, want 2", lt.MaxGeneration())
	}
	if lt.LiveMaxGeneration() != 1 {
		t.Errorf("LiveMaxGeneration = %d, want 1", lt.LiveMaxGeneration())
	}

	// Orphans start at generation 1
	lt.RegisterChild(9, 404, 100)
	if lt.Get(9).Generation != 1 {
		t.Errorf("orphan generation = %d, want 1", lt.Get(9).Generation)
	}
}
