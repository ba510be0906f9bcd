package systems

import (
	"github.com/pthm-cable/evosim/components"
	"github.com/pthm-cable/evosim/config"
	"github.com/pthm-cable/evosim/genome"
)

// Mature reports whether an organism is old enough to accrue fertility.
func Mature(age, maxAge int, rc config.ReproductionConfig) bool {
	return float64(age) > float64(maxAge)*rc.MaturityFraction
}

// AccrueFertility advances the fertility accumulator of a mature organism and
// reports whether it produces a child this tick. While energy is at least
// MinEnergy one unit accrues at FertilityCost energy. Each call yields at most
// one child and takes Threshold units off the accumulator.
func AccrueFertility(v *components.Vitals, maxAge int, rc config.ReproductionConfig) bool {
	if !Mature(v.Age, maxAge, rc) {
		return false
	}
	if v.Energy >= rc.MinEnergy {
		v.FertileDevelopment++
		v.Energy -= rc.FertilityCost
	}
	if v.FertileDevelopment >= rc.Threshold {
		v.FertileDevelopment -= rc.Threshold
		return true
	}
	return false
}

// ChildPosition places a child within ±SpawnJitter of its parent on each axis.
func ChildPosition(parent components.Position, rc config.ReproductionConfig, rng genome.Rand) components.Position {
	return components.Position{
		X: parent.X + Uniform(rng, -rc.SpawnJitter, rc.SpawnJitter),
		Y: parent.Y + Uniform(rng, -rc.SpawnJitter, rc.SpawnJitter),
	}
}
