// Package traits derives behavioral parameters from a genome.
package traits

import "github.com/pthm-cable/evosim/genome"

// Decoder constants.
const (
	SpeedScale          = 50.0 // speed = metabolism / size * SpeedScale
	PreySenseMultiplier = 1.2  // Non-plant diets sense further
	PlantReproduction   = 5.0  // reproduction_rate multiplier for plant eaters
	PreyReproduction    = 2.0  // reproduction_rate multiplier for predators
	EnergyPerMetabolism = 1000.0

	// Fallbacks for genomes missing a gene.
	DefaultInitialSize       = 3.0
	DefaultMetabolismRate    = 0.5
	DefaultFoodSenseDistance = 50.0
)

// ColorClass is the binary display class of an organism.
type ColorClass uint8

const (
	Herbivore ColorClass = iota
	Predator
)

func (c ColorClass) String() string {
	if c == Predator {
		return "predator"
	}
	return "herbivore"
}

// Classify maps a diet to its color class. Only a pure prey diet is a predator.
func Classify(d genome.Diet) ColorClass {
	if d == genome.DietPrey {
		return Predator
	}
	return Herbivore
}

// Traits holds the decoded parameters of a genome.
type Traits struct {
	Size              float64
	Speed             float64
	FoodSenseDistance float64
	Color             ColorClass
	ReproductionRate  float64
	MaxEnergy         float64
}

// Decode maps a genome to its traits. It is pure: equal genomes decode to equal traits.
func Decode(g genome.Genome) Traits {
	diet := g.Diet()
	size := g.Float(genome.InitialSize, DefaultInitialSize)
	metabolism := g.Float(genome.MetabolismRate, DefaultMetabolismRate)
	sense := g.Float(genome.FoodSenseDistance, DefaultFoodSenseDistance)

	t := Traits{
		Size:              size,
		Speed:             Speed(metabolism, size),
		FoodSenseDistance: sense,
		Color:             Classify(diet),
		ReproductionRate:  metabolism * PlantReproduction,
		MaxEnergy:         metabolism * EnergyPerMetabolism,
	}
	if diet != genome.DietPlant {
		t.FoodSenseDistance = sense * PreySenseMultiplier
		t.ReproductionRate = metabolism * PreyReproduction
	}
	return t
}

// Speed is the distance covered per tick for a given body size.
func Speed(metabolismRate, size float64) float64 {
	if size <= 0 {
		return 0
	}
	return metabolismRate / size * SpeedScale
}

// GrowthFactors are the size asymptote multipliers per color class.
type GrowthFactors struct {
	Predator  float64 `yaml:"predator"`
	Herbivore float64 `yaml:"herbivore"`
}

// DefaultGrowthFactors returns the stock asymptotes.
func DefaultGrowthFactors() GrowthFactors {
	return GrowthFactors{Predator: 1.8, Herbivore: 1.4}
}

// For returns the factor for a color class.
func (f GrowthFactors) For(c ColorClass) float64 {
	if c == Predator {
		return f.Predator
	}
	return f.Herbivore
}

// GrowSize returns the body size at the given age. Before the midpoint of life
// the size is initialSize*factor scaled by (maxAge/2)/(maxAge-age); from the
// midpoint on it stays at current.
func GrowSize(initialSize, factor float64, age, maxAge int, current float64) float64 {
	half := float64(maxAge) / 2
	if half-float64(age) <= 0 {
		return current
	}
	return initialSize * factor / float64(maxAge-age) * half
}
