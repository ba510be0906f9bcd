// Package genome defines the heritable gene set of an organism.
//
// A Genome is a fixed-size value keyed by the closed Gene enumeration. It is
// never modified in place: NewRandom and Mutate always build a new value, and
// copying a Genome copies every gene.
package genome

import "strconv"

// Gene identifies one heritable gene.
type Gene uint8

const (
	InitialSize Gene = iota
	MetabolismRate
	FoodDiet
	Aggressiveness
	SocialBehavior
	FoodSenseDistance
	Activeness
	MaxAge

	numGenes
)

// NumGenes is the number of recognized genes.
const NumGenes = int(numGenes)

var geneNames = [numGenes]string{
	InitialSize:       "initial_size",
	MetabolismRate:    "metabolism_rate",
	FoodDiet:          "food_diet",
	Aggressiveness:    "aggressiveness",
	SocialBehavior:    "social_behavior",
	FoodSenseDistance: "food_sense_distance",
	Activeness:        "activeness",
	MaxAge:            "max_age",
}

// Valid reports whether g is a recognized gene.
func (g Gene) Valid() bool {
	return g < numGenes
}

// String returns the snake_case gene name.
func (g Gene) String() string {
	if !g.Valid() {
		return "gene(" + strconv.Itoa(int(g)) + ")"
	}
	return geneNames[g]
}

// ParseGene looks up a gene by its snake_case name.
func ParseGene(name string) (Gene, bool) {
	for i, n := range geneNames {
		if n == name {
			return Gene(i), true
		}
	}
	return 0, false
}

// Diet is a set of food sources an organism can sense and eat.
// Genes only ever carry DietPlant or DietPrey; the set form lets the
// behavior code handle diets that include both.
type Diet uint8

const (
	DietPlant Diet = 1 << iota // Eats food items
	DietPrey                   // Eats non-predator organisms
)

// Includes reports whether d contains any of the sources in other.
func (d Diet) Includes(other Diet) bool {
	return d&other != 0
}

func (d Diet) String() string {
	switch d {
	case DietPlant:
		return "plant"
	case DietPrey:
		return "prey"
	case DietPlant | DietPrey:
		return "plant+prey"
	}
	return "none"
}

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindNone Kind = iota // Absent gene
	KindFloat
	KindInt
	KindBool
	KindDiet
)

// Value is a tagged gene value. The zero Value is absent.
type Value struct {
	kind Kind
	num  float64
	flag bool
	diet Diet
}

// FloatValue wraps a continuous gene value.
func FloatValue(f float64) Value { return Value{kind: KindFloat, num: f} }

// IntValue wraps an integer gene value.
func IntValue(i int) Value { return Value{kind: KindInt, num: float64(i)} }

// BoolValue wraps a boolean gene value.
func BoolValue(b bool) Value { return Value{kind: KindBool, flag: b} }

// DietValue wraps a categorical diet gene value.
func DietValue(d Diet) Value { return Value{kind: KindDiet, diet: d} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// Present reports whether the value holds anything.
func (v Value) Present() bool { return v.kind != KindNone }

// Float returns numeric genes (float or int) as float64.
func (v Value) Float() (float64, bool) {
	if v.kind == KindFloat || v.kind == KindInt {
		return v.num, true
	}
	return 0, false
}

// Int returns integer genes. Float genes are truncated.
func (v Value) Int() (int, bool) {
	if v.kind == KindFloat || v.kind == KindInt {
		return int(v.num), true
	}
	return 0, false
}

// Bool returns boolean genes.
func (v Value) Bool() (bool, bool) {
	if v.kind == KindBool {
		return v.flag, true
	}
	return false, false
}

// Diet returns diet genes.
func (v Value) Diet() (Diet, bool) {
	if v.kind == KindDiet {
		return v.diet, true
	}
	return 0, false
}

func (v Value) String() string {
	switch v.kind {
	case KindFloat:
		return strconv.FormatFloat(v.num, 'f', 3, 64)
	case KindInt:
		return strconv.Itoa(int(v.num))
	case KindBool:
		return strconv.FormatBool(v.flag)
	case KindDiet:
		return v.diet.String()
	}
	return "absent"
}
