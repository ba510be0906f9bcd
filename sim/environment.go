// Package sim runs the ecosystem: the Environment that owns food and
// organisms, the per-tick organism update and the tick scheduler.
//
// Everything here is single-threaded. A tick runs to completion before any
// read accessor observes the new state.
package sim

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/evosim/components"
	"github.com/pthm-cable/evosim/config"
	"github.com/pthm-cable/evosim/genome"
	"github.com/pthm-cable/evosim/systems"
	"github.com/pthm-cable/evosim/traits"
)

// TargetKind says what a sensed target is.
type TargetKind uint8

const (
	TargetNone TargetKind = iota
	TargetFood
	TargetPrey
)

// Target is the result of a nearest-food or nearest-prey query.
type Target struct {
	Entity ecs.Entity
	Pos    components.Position
	Cell   components.Cell // Food only
	Dist   float64
	Kind   TargetKind
}

// Removed describes an organism evicted by RemoveDead.
type Removed struct {
	ID    uint64
	Class traits.ColorClass
	Cause components.DeathCause
	Age   int
}

// Environment owns the organism roster and the food collection.
// All mutation goes through its methods.
type Environment struct {
	cfg *config.Config
	rng genome.Rand

	world *ecs.World

	orgMapper *ecs.Map5[
		components.Position,
		components.Heading,
		components.Body,
		components.Vitals,
		components.Organism,
	]
	foodMapper *ecs.Map2[components.Position, components.Food]
	foodFilter *ecs.Filter2[components.Position, components.Food]

	// Individual component mappers for lookups
	posMap    *ecs.Map1[components.Position]
	vitalsMap *ecs.Map1[components.Vitals]
	orgMap    *ecs.Map1[components.Organism]
	foodMap   *ecs.Map1[components.Food]

	// Roster in insertion order; update order follows it
	roster []ecs.Entity

	// Food entities per cell, oldest first
	foodAt map[components.Cell][]ecs.Entity

	foodGrid *systems.SpatialGrid
	orgGrid  *systems.SpatialGrid

	ids    *IDGenerator
	bounds systems.Bounds
}

// NewEnvironment creates an empty environment sized by cfg.World.
// rng drives food placement, headings, wandering, death draws and mutation.
func NewEnvironment(cfg *config.Config, rng genome.Rand) *Environment {
	world := ecs.NewWorld()
	w, h := float64(cfg.World.Width), float64(cfg.World.Height)

	return &Environment{
		cfg:   cfg,
		rng:   rng,
		world: world,
		orgMapper: ecs.NewMap5[
			components.Position,
			components.Heading,
			components.Body,
			components.Vitals,
			components.Organism,
		](world),
		foodMapper: ecs.NewMap2[components.Position, components.Food](world),
		foodFilter: ecs.NewFilter2[components.Position, components.Food](world),
		posMap:     ecs.NewMap1[components.Position](world),
		vitalsMap:  ecs.NewMap1[components.Vitals](world),
		orgMap:     ecs.NewMap1[components.Organism](world),
		foodMap:    ecs.NewMap1[components.Food](world),
		foodAt:     make(map[components.Cell][]ecs.Entity),
		foodGrid:   systems.NewSpatialGrid(w, h, cfg.Derived.CellSize),
		orgGrid:    systems.NewSpatialGrid(w, h, cfg.Derived.CellSize),
		ids:        NewIDGenerator(0),
		bounds:     systems.Bounds{Width: w, Height: h},
	}
}

// Width returns the world width.
func (env *Environment) Width() float64 { return env.bounds.Width }

// Height returns the world height.
func (env *Environment) Height() float64 { return env.bounds.Height }

// AmbientLight is 1 at the world center and falls off linearly to 0 at the
// light radius. Outside the radius it is 0.
func (env *Environment) AmbientLight(x, y float64) float64 {
	r := env.cfg.Derived.LightRadius
	if r <= 0 {
		return 0
	}
	d := math.Hypot(x-env.cfg.Derived.CenterX, y-env.cfg.Derived.CenterY)
	if d > r {
		return 0
	}
	return 1 - d/r
}

// AmbientTemperature interpolates linearly between the left and right border
// temperatures by horizontal position.
func (env *Environment) AmbientTemperature(x, _ float64) float64 {
	wc := env.cfg.World
	return wc.TemperatureLeft + x/env.bounds.Width*(wc.TemperatureRight-wc.TemperatureLeft)
}

// SpawnFood places one food item on a uniformly random cell and returns its energy.
func (env *Environment) SpawnFood() float64 {
	cell := components.Cell{
		X: env.rng.Intn(env.cfg.World.Width),
		Y: env.rng.Intn(env.cfg.World.Height),
	}
	energy := systems.Uniform(env.rng, env.cfg.Food.MinEnergy, env.cfg.Food.MaxEnergy)
	env.AddFood(cell, energy)
	return energy
}

// AddFood places a food item with the given energy on cell.
// Several items may share a cell.
func (env *Environment) AddFood(cell components.Cell, energy float64) ecs.Entity {
	pos := cell.Center()
	food := components.Food{Energy: energy, Cell: cell}
	e := env.foodMapper.NewEntity(&pos, &food)
	env.foodAt[cell] = append(env.foodAt[cell], e)
	env.foodGrid.Insert(e, pos)
	return e
}

// FoodCount returns the number of food items.
func (env *Environment) FoodCount() int {
	return env.foodGrid.Len()
}

// ConsumeFood removes the oldest food item on cell and returns its energy.
// Returns 0 if the cell holds no food, e.g. because another organism ate it
// earlier in the tick.
func (env *Environment) ConsumeFood(cell components.Cell) float64 {
	items := env.foodAt[cell]
	if len(items) == 0 {
		return 0
	}
	e := items[0]
	if len(items) == 1 {
		delete(env.foodAt, cell)
	} else {
		env.foodAt[cell] = items[1:]
	}

	energy := env.foodMap.Get(e).Energy
	env.foodGrid.Remove(e, cell.Center())
	env.world.RemoveEntity(e)
	return energy
}

// NearestFoodWithin returns the closest food item at distance <= radius.
// Ties go to whichever item the grid yields first.
func (env *Environment) NearestFoodWithin(p components.Position, radius float64) (Target, bool) {
	e, d, ok := env.foodGrid.Nearest(p, radius, env.posMap, nil)
	if !ok {
		return Target{}, false
	}
	return Target{
		Entity: e,
		Pos:    *env.posMap.Get(e),
		Cell:   env.foodMap.Get(e).Cell,
		Dist:   d,
		Kind:   TargetFood,
	}, true
}

// NearestPreyWithin returns the closest living organism at distance <= radius
// that is not self and whose diet is not prey. Predators never target predators.
func (env *Environment) NearestPreyWithin(p components.Position, radius float64, self ecs.Entity) (Target, bool) {
	accept := func(e ecs.Entity) bool {
		if e == self {
			return false
		}
		v := env.vitalsMap.Get(e)
		if v == nil || !v.Alive || v.Energy <= 0 {
			return false
		}
		return env.orgMap.Get(e).Diet() != genome.DietPrey
	}

	e, d, ok := env.orgGrid.Nearest(p, radius, env.posMap, accept)
	if !ok {
		return Target{}, false
	}
	return Target{
		Entity: e,
		Pos:    *env.posMap.Get(e),
		Dist:   d,
		Kind:   TargetPrey,
	}, true
}

// KillAndHarvest marks the target dead and returns its energy.
// A target that is already dead yields 0.
func (env *Environment) KillAndHarvest(e ecs.Entity) float64 {
	if !env.world.Alive(e) {
		return 0
	}
	v := env.vitalsMap.Get(e)
	if v == nil || !v.Alive {
		return 0
	}
	energy := v.Energy
	v.Kill(components.CausePredation)
	return energy
}

// AddOrganism inserts a new organism with decoded traits and a random heading.
// Any component pointer obtained before this call may be invalidated.
func (env *Environment) AddOrganism(g genome.Genome, pos components.Position, energy float64) ecs.Entity {
	t := traits.Decode(g)

	heading := systems.RandomHeading(env.rng)
	body := components.Body{Size: t.Size, Speed: t.Speed}
	vitals := components.Vitals{Energy: energy, Alive: true}
	org := components.Organism{ID: env.ids.Next(), Genome: g, Traits: t}

	e := env.orgMapper.NewEntity(&pos, &heading, &body, &vitals, &org)
	env.roster = append(env.roster, e)
	env.orgGrid.Insert(e, pos)
	return e
}

// RemoveDead evicts every organism that is not alive, compacting the roster
// in place. Organisms whose energy ran out are marked starved first.
func (env *Environment) RemoveDead() []Removed {
	// First pass: collect dead entities and compact the roster
	var dead []ecs.Entity
	kept := env.roster[:0]
	for _, e := range env.roster {
		if env.checkLiveness(env.vitalsMap.Get(e)) {
			kept = append(kept, e)
		} else {
			dead = append(dead, e)
		}
	}
	env.roster = kept

	// Second pass: remove entities
	removed := make([]Removed, 0, len(dead))
	for _, e := range dead {
		org := env.orgMap.Get(e)
		v := env.vitalsMap.Get(e)
		removed = append(removed, Removed{
			ID:    org.ID,
			Class: org.Class(),
			Cause: v.Cause,
			Age:   v.Age,
		})
		env.orgGrid.Remove(e, *env.posMap.Get(e))
		env.world.RemoveEntity(e)
	}
	return removed
}

// checkLiveness marks an organism with no energy left as starved and reports
// whether it is still alive.
func (env *Environment) checkLiveness(v *components.Vitals) bool {
	if v.Alive && v.Energy <= 0 {
		v.Kill(components.CauseStarvation)
	}
	return v.Alive
}

// Len returns the number of organisms in the roster, dead or alive.
func (env *Environment) Len() int {
	return len(env.roster)
}

// Roster returns a copy of the roster in update order.
func (env *Environment) Roster() []ecs.Entity {
	out := make([]ecs.Entity, len(env.roster))
	copy(out, env.roster)
	return out
}

// NextID returns the id the next organism will receive.
func (env *Environment) NextID() uint64 {
	return env.ids.Peek()
}
