package systems

import (
	"github.com/pthm-cable/evosim/components"
	"github.com/pthm-cable/evosim/genome"
)

// Bounds represents the simulation bounds.
type Bounds struct {
	Width, Height float64
}

// StepToward moves pos straight at target by speed. It may overshoot.
func StepToward(pos *components.Position, target components.Position, speed float64) {
	d := pos.DistanceTo(target)
	if d <= 0 {
		return
	}
	pos.X += (target.X - pos.X) / d * speed
	pos.Y += (target.Y - pos.Y) / d * speed
}

// RandomHeading returns an unnormalized heading with each axis in [-1, 1).
func RandomHeading(rng genome.Rand) components.Heading {
	return components.Heading{X: Uniform(rng, -1, 1), Y: Uniform(rng, -1, 1)}
}

// Wander perturbs the heading by up to ±jitter per axis, renormalizes it and
// moves along it at speed. An axis whose coordinate reaches the border has its
// heading component reflected and the coordinate clamped into [0, size-1].
func Wander(pos *components.Position, h *components.Heading, speed, jitter float64, b Bounds, rng genome.Rand) {
	h.X += Uniform(rng, -jitter, jitter)
	h.Y += Uniform(rng, -jitter, jitter)
	*h = h.Normalized()

	pos.X += h.X * speed
	pos.Y += h.Y * speed

	maxX, maxY := b.Width-1, b.Height-1
	if pos.X <= 0 || pos.X >= maxX {
		h.X = -h.X
		pos.X = clampFloat(pos.X, 0, maxX)
	}
	if pos.Y <= 0 || pos.Y >= maxY {
		h.Y = -h.Y
		pos.Y = clampFloat(pos.Y, 0, maxY)
	}
}
