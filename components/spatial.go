package components

import "math"

// Position represents an entity's world position.
type Position struct {
	X, Y float64
}

// DistanceTo returns the Euclidean distance to q.
func (p Position) DistanceTo(q Position) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Heading is an organism's direction of travel. It is unit length once set.
type Heading struct {
	X, Y float64
}

// Normalized returns h scaled to unit length. A zero heading stays zero.
func (h Heading) Normalized() Heading {
	l := math.Hypot(h.X, h.Y)
	if l == 0 {
		return h
	}
	return Heading{X: h.X / l, Y: h.Y / l}
}
