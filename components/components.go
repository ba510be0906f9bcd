// Package components defines ECS components for the simulation.
package components

import (
	"github.com/pthm-cable/evosim/genome"
	"github.com/pthm-cable/evosim/traits"
)

// Organism bundles identity, heritable genome and decoded traits.
// Genome is never mutated in place; offspring receive a mutated copy.
type Organism struct {
	ID     uint64
	Genome genome.Genome
	Traits traits.Traits // Decoded at birth; Size and Speed live on Body
}

// Class returns the color class of the organism.
func (o *Organism) Class() traits.ColorClass {
	return o.Traits.Color
}

// Diet returns the organism's diet gene.
func (o *Organism) Diet() genome.Diet {
	return o.Genome.Diet()
}

// MaxAge returns the organism's lifespan gene in ticks.
func (o *Organism) MaxAge() int {
	return o.Genome.Int(genome.MaxAge, 0)
}

// Food is a consumable item placed on an integer cell.
type Food struct {
	Energy float64
	Cell   Cell
}

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

// CellOf truncates a position to its integer cell.
func CellOf(p Position) Cell {
	return Cell{X: int(p.X), Y: int(p.Y)}
}

// Center returns the cell as a position.
func (c Cell) Center() Position {
	return Position{X: float64(c.X), Y: float64(c.Y)}
}
