package genome

import "strings"

// Rand is the random source used for gene sampling and mutation.
// *math/rand.Rand satisfies it; tests supply scripted sources.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Range is an inclusive sampling range.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Sample draws uniformly from [Min, Max].
func (r Range) Sample(rng Rand) float64 {
	return r.Min + (r.Max-r.Min)*rng.Float64()
}

// SampleInt draws a uniform integer from [Min, Max], both ends inclusive.
func (r Range) SampleInt(rng Rand) int {
	lo, hi := int(r.Min), int(r.Max)
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// Params holds creation ranges and mutation settings.
type Params struct {
	InitialSize       Range   `yaml:"initial_size"`
	MetabolismRate    Range   `yaml:"metabolism_rate"`
	Aggressiveness    Range   `yaml:"aggressiveness"`
	FoodSenseDistance Range   `yaml:"food_sense_distance"`
	Activeness        Range   `yaml:"activeness"`
	MaxAge            Range   `yaml:"max_age"`
	PreyWeight        float64 `yaml:"prey_weight"`    // Chance a new genome is a predator
	MutationRate      float64 `yaml:"mutation_rate"`  // Per-gene mutation chance
	MutationScale     Range   `yaml:"mutation_scale"` // Factor applied to continuous genes
}

// DefaultParams returns the stock creation and mutation settings.
func DefaultParams() Params {
	return Params{
		InitialSize:       Range{2.0, 4.0},
		MetabolismRate:    Range{0.2, 1.3},
		Aggressiveness:    Range{0.0, 1.0},
		FoodSenseDistance: Range{25.0, 35.0},
		Activeness:        Range{0.4, 1.0},
		MaxAge:            Range{1000, 1200},
		PreyWeight:        0.10,
		MutationRate:      0.10,
		MutationScale:     Range{0.9, 1.1},
	}
}

// mutationRule is what Mutate does to a gene once its mutation roll succeeds.
type mutationRule uint8

const (
	keep mutationRule = iota
	scale
	rerollDiet
)

// mutationPolicy is fixed: genes absent from it are inherited unchanged.
var mutationPolicy = [numGenes]mutationRule{
	InitialSize:       scale,
	MetabolismRate:    scale,
	FoodDiet:          rerollDiet,
	FoodSenseDistance: scale,
	Activeness:        scale,
}

// Mutable reports whether a gene has a mutation rule.
func Mutable(g Gene) bool {
	return g.Valid() && mutationPolicy[g] != keep
}

// Genome is an immutable set of gene values.
type Genome struct {
	values [numGenes]Value
}

// New builds a genome from explicit gene values. Unrecognized genes are ignored.
func New(values map[Gene]Value) Genome {
	var g Genome
	for gene, v := range values {
		if gene.Valid() {
			g.values[gene] = v
		}
	}
	return g
}

// NewRandom samples every gene independently.
func NewRandom(rng Rand, p Params) Genome {
	var g Genome
	g.values[InitialSize] = FloatValue(p.InitialSize.Sample(rng))
	g.values[MetabolismRate] = FloatValue(p.MetabolismRate.Sample(rng))
	diet := DietPlant
	if rng.Float64() < p.PreyWeight {
		diet = DietPrey
	}
	g.values[FoodDiet] = DietValue(diet)
	g.values[Aggressiveness] = FloatValue(p.Aggressiveness.Sample(rng))
	g.values[SocialBehavior] = BoolValue(rng.Intn(2) == 1)
	g.values[FoodSenseDistance] = FloatValue(p.FoodSenseDistance.Sample(rng))
	g.values[Activeness] = FloatValue(p.Activeness.Sample(rng))
	g.values[MaxAge] = IntValue(p.MaxAge.SampleInt(rng))
	return g
}

// Mutate returns a mutated copy. Each present gene rolls once against
// MutationRate; on success its rule from the policy table is applied.
func (g Genome) Mutate(rng Rand, p Params) Genome {
	child := g
	for i := range child.values {
		v := child.values[i]
		if !v.Present() {
			continue
		}
		if rng.Float64() >= p.MutationRate {
			continue
		}
		switch mutationPolicy[i] {
		case scale:
			if f, ok := v.Float(); ok {
				child.values[i] = FloatValue(f * p.MutationScale.Sample(rng))
			}
		case rerollDiet:
			diet := DietPlant
			if rng.Intn(2) == 1 {
				diet = DietPrey
			}
			child.values[i] = DietValue(diet)
		}
	}
	return child
}

// With returns a copy with one gene replaced.
func (g Genome) With(gene Gene, v Value) Genome {
	if gene.Valid() {
		g.values[gene] = v
	}
	return g
}

// Get returns the value of a gene, or false if it is absent or unrecognized.
func (g Genome) Get(gene Gene) (Value, bool) {
	if !gene.Valid() {
		return Value{}, false
	}
	v := g.values[gene]
	return v, v.Present()
}

// Lookup is Get by gene name.
func (g Genome) Lookup(name string) (Value, bool) {
	gene, ok := ParseGene(name)
	if !ok {
		return Value{}, false
	}
	return g.Get(gene)
}

// Float returns a numeric gene or fallback.
func (g Genome) Float(gene Gene, fallback float64) float64 {
	if v, ok := g.Get(gene); ok {
		if f, ok := v.Float(); ok {
			return f
		}
	}
	return fallback
}

// Int returns an integer gene or fallback.
func (g Genome) Int(gene Gene, fallback int) int {
	if v, ok := g.Get(gene); ok {
		if i, ok := v.Int(); ok {
			return i
		}
	}
	return fallback
}

// Bool returns a boolean gene or fallback.
func (g Genome) Bool(gene Gene, fallback bool) bool {
	if v, ok := g.Get(gene); ok {
		if b, ok := v.Bool(); ok {
			return b
		}
	}
	return fallback
}

// Diet returns the diet gene, defaulting to DietPlant.
func (g Genome) Diet() Diet {
	if v, ok := g.Get(FoodDiet); ok {
		if d, ok := v.Diet(); ok {
			return d
		}
	}
	return DietPlant
}

func (g Genome) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for i, v := range g.values {
		if !v.Present() {
			continue
		}
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(Gene(i).String())
		sb.WriteString(": ")
		sb.WriteString(v.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
