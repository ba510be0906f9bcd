package sim

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/evosim/components"
	"github.com/pthm-cable/evosim/genome"
	"github.com/pthm-cable/evosim/systems"
	"github.com/pthm-cable/evosim/traits"
)

// defaultActiveness is used when a genome carries no activeness gene.
const defaultActiveness = 0.5

// Outcome reports what an organism did during one update.
type Outcome struct {
	ID    uint64
	Class traits.ColorClass

	Skipped   bool // Not alive when the update started
	DiedOfAge bool
	Moved     bool

	AteFood    bool
	FoodEnergy float64

	Killed    bool
	PreyID    uint64
	Harvested float64

	Born       bool
	Child      ecs.Entity
	ChildID    uint64
	ChildClass traits.ColorClass
}

// UpdateOrganism runs one tick of the organism state machine:
// age, death draw, sense, move and feed, metabolize, regrow, reproduce.
// A dead organism is left untouched.
func (env *Environment) UpdateOrganism(e ecs.Entity) Outcome {
	if !env.world.Alive(e) {
		return Outcome{Skipped: true}
	}
	pos, heading, body, vitals, org := env.orgMapper.Get(e)
	out := Outcome{ID: org.ID, Class: org.Class()}
	if !env.checkLiveness(vitals) {
		out.Skipped = true
		return out
	}

	lc := env.cfg.Lifecycle
	rc := env.cfg.Reproduction
	maxAge := org.MaxAge()
	metabolism := org.Genome.Float(genome.MetabolismRate, traits.DefaultMetabolismRate)

	vitals.Age++

	if p := systems.AgeDeathProbability(vitals.Age, maxAge, lc); p > 0 && env.rng.Float64() < p {
		vitals.Kill(components.CauseOldAge)
		out.DiedOfAge = true
		return out
	}

	from := *pos
	if target, ok := env.sense(e, *pos, org); ok {
		systems.StepToward(pos, target.Pos, body.Speed)
		out.Moved = true
		if pos.DistanceTo(target.Pos) < body.Size {
			env.feed(vitals, target, &out)
		}
	} else if env.rng.Float64() < org.Genome.Float(genome.Activeness, defaultActiveness) {
		systems.Wander(pos, heading, body.Speed, lc.WanderJitter, env.bounds, env.rng)
		out.Moved = true
	}
	env.orgGrid.Move(e, from, *pos)

	vitals.Energy -= systems.MetabolicCost(metabolism, out.Moved, lc)

	// Speed follows last tick's size
	body.Speed = traits.Speed(metabolism, body.Size)
	body.Size = traits.GrowSize(
		org.Genome.Float(genome.InitialSize, traits.DefaultInitialSize),
		lc.Growth.For(org.Class()),
		vitals.Age, maxAge, body.Size,
	)

	if systems.AccrueFertility(vitals, maxAge, rc) {
		childGenome := org.Genome.Mutate(env.rng, env.cfg.Genome)
		childPos := systems.ChildPosition(*pos, rc, env.rng)

		// Adding an entity invalidates the pointers above
		out.ChildID = env.ids.Peek()
		out.ChildClass = traits.Classify(childGenome.Diet())
		out.Child = env.AddOrganism(childGenome, childPos, rc.ChildEnergy)
		out.Born = true
	}
	return out
}

// sense picks the single nearest target across the organism's diet.
// Prey replaces food only when strictly closer.
func (env *Environment) sense(self ecs.Entity, p components.Position, org *components.Organism) (Target, bool) {
	diet := org.Diet()
	radius := org.Traits.FoodSenseDistance

	var (
		best  Target
		found bool
	)
	if diet.Includes(genome.DietPlant) {
		best, found = env.NearestFoodWithin(p, radius)
	}
	if diet.Includes(genome.DietPrey) {
		if prey, ok := env.NearestPreyWithin(p, radius, self); ok && (!found || prey.Dist < best.Dist) {
			best, found = prey, true
		}
	}
	return best, found
}

// feed consumes the target. Losing a race to another organism gains nothing.
func (env *Environment) feed(vitals *components.Vitals, target Target, out *Outcome) {
	switch target.Kind {
	case TargetFood:
		if gained := env.ConsumeFood(target.Cell); gained > 0 {
			vitals.Energy += gained
			out.AteFood = true
			out.FoodEnergy = gained
		}
	case TargetPrey:
		preyID := env.orgMap.Get(target.Entity).ID
		if !env.vitalsMap.Get(target.Entity).Alive {
			return
		}
		gained := env.KillAndHarvest(target.Entity)
		vitals.Energy += gained
		out.Killed = true
		out.PreyID = preyID
		out.Harvested = gained
	}
}
