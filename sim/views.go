package sim

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/evosim/components"
	"github.com/pthm-cable/evosim/genome"
	"github.com/pthm-cable/evosim/telemetry"
	"github.com/pthm-cable/evosim/traits"
)

// Histogram bin widths for the trait overlays.
const (
	MetabolismBin = 0.1
	SenseBin      = 10.0
	ActivenessBin = 0.1
)

// OrganismView is a read-only snapshot of one organism for presentation.
type OrganismView struct {
	ID       uint64
	Position components.Position
	Size     float64
	Speed    float64
	Color    traits.ColorClass
	Energy   float64
	Age      int
	Alive    bool
	Genome   genome.Genome
}

// FoodView is a read-only snapshot of one food item.
type FoodView struct {
	Cell   components.Cell
	Energy float64
}

// View returns the snapshot of a single organism.
func (env *Environment) View(e ecs.Entity) (OrganismView, bool) {
	if !env.world.Alive(e) {
		return OrganismView{}, false
	}
	org := env.orgMap.Get(e)
	if org == nil {
		return OrganismView{}, false
	}
	pos, _, body, vitals, _ := env.orgMapper.Get(e)
	return OrganismView{
		ID:       org.ID,
		Position: *pos,
		Size:     body.Size,
		Speed:    body.Speed,
		Color:    org.Class(),
		Energy:   vitals.Energy,
		Age:      vitals.Age,
		Alive:    vitals.Alive,
		Genome:   org.Genome,
	}, true
}

// Organisms returns snapshots of the roster in update order.
func (env *Environment) Organisms() []OrganismView {
	out := make([]OrganismView, 0, len(env.roster))
	for _, e := range env.roster {
		if v, ok := env.View(e); ok {
			out = append(out, v)
		}
	}
	return out
}

// FoodItems returns snapshots of every food item.
func (env *Environment) FoodItems() []FoodView {
	out := make([]FoodView, 0, env.FoodCount())
	query := env.foodFilter.Query()
	for query.Next() {
		_, food := query.Get()
		out = append(out, FoodView{Cell: food.Cell, Energy: food.Energy})
	}
	return out
}

// PopulationCounts scans the roster and counts living organisms per color class.
func (env *Environment) PopulationCounts() (predators, herbivores int) {
	for _, e := range env.roster {
		if !env.vitalsMap.Get(e).Alive {
			continue
		}
		if env.orgMap.Get(e).Class() == traits.Predator {
			predators++
		} else {
			herbivores++
		}
	}
	return predators, herbivores
}

// Summary is the population overview shown next to the world.
type Summary struct {
	Organisms  int
	Predators  int
	Herbivores int
	Food       int
	AvgSpeed   float64
	AvgSize    float64
	MaxAge     int
	MaxEnergy  float64
}

// Summary computes the overview over the roster. An empty roster yields zeros.
func (env *Environment) Summary() Summary {
	s := Summary{Food: env.FoodCount()}
	if len(env.roster) == 0 {
		return s
	}

	speeds := make([]float64, 0, len(env.roster))
	sizes := make([]float64, 0, len(env.roster))
	energies := make([]float64, 0, len(env.roster))
	for _, e := range env.roster {
		_, _, body, vitals, org := env.orgMapper.Get(e)
		speeds = append(speeds, body.Speed)
		sizes = append(sizes, body.Size)
		energies = append(energies, vitals.Energy)
		if vitals.Age > s.MaxAge {
			s.MaxAge = vitals.Age
		}
		if org.Class() == traits.Predator {
			s.Predators++
		} else {
			s.Herbivores++
		}
	}

	s.Organisms = len(env.roster)
	s.AvgSpeed = stat.Mean(speeds, nil)
	s.AvgSize = stat.Mean(sizes, nil)
	s.MaxEnergy = floats.Max(energies)
	return s
}

// TraitHistograms holds the per-gene distributions of the roster.
type TraitHistograms struct {
	Metabolism []telemetry.HistogramBin
	Sense      []telemetry.HistogramBin
	Activeness []telemetry.HistogramBin
}

// TraitHistograms buckets metabolism rate, food sense distance and activeness
// genes of the roster. Empty rosters yield nil histograms.
func (env *Environment) TraitHistograms() TraitHistograms {
	metabolism, sense, activeness := env.geneValues()
	return TraitHistograms{
		Metabolism: telemetry.TraitHistogram(metabolism, MetabolismBin),
		Sense:      telemetry.TraitHistogram(sense, SenseBin),
		Activeness: telemetry.TraitHistogram(activeness, ActivenessBin),
	}
}

// geneValues collects the histogram genes of every organism that carries them.
func (env *Environment) geneValues() (metabolism, sense, activeness []float64) {
	for _, e := range env.roster {
		g := env.orgMap.Get(e).Genome
		if v, ok := g.Get(genome.MetabolismRate); ok {
			if f, ok := v.Float(); ok {
				metabolism = append(metabolism, f)
			}
		}
		if v, ok := g.Get(genome.FoodSenseDistance); ok {
			if f, ok := v.Float(); ok {
				sense = append(sense, f)
			}
		}
		if v, ok := g.Get(genome.Activeness); ok {
			if f, ok := v.Float(); ok {
				activeness = append(activeness, f)
			}
		}
	}
	return metabolism, sense, activeness
}
