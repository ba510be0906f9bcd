package systems

import (
	"math"

	"github.com/pthm-cable/evosim/config"
)

// DeathProbability returns the chance that an organism of the given age dies
// this tick. It is 0 before onset*maxAge, rises as 1-exp(-x*steepness) with
// x the fraction of the remaining span already lived, and is clamped to [0, 1].
func DeathProbability(age, maxAge int, onset, steepness float64) float64 {
	if maxAge <= 0 {
		return 1
	}
	m := float64(maxAge)
	start := onset * m
	if float64(age) < start {
		return 0
	}
	span := m - start
	if span <= 0 {
		return 1
	}
	x := (float64(age) - start) / span
	return clamp01(1 - math.Exp(-x*steepness))
}

// AgeDeathProbability applies DeathProbability with the lifecycle config.
func AgeDeathProbability(age, maxAge int, lc config.LifecycleConfig) float64 {
	return DeathProbability(age, maxAge, lc.DeathOnset, lc.DeathSteepness)
}

// MetabolicCost returns the energy spent this tick.
// Moving costs metabolism/MoveCostDivisor, staying still metabolism/IdleCostDivisor.
func MetabolicCost(metabolismRate float64, moved bool, lc config.LifecycleConfig) float64 {
	if moved {
		return metabolismRate / lc.MoveCostDivisor
	}
	return metabolismRate / lc.IdleCostDivisor
}
