package components

// Vitals tracks an organism's metabolic and life state.
type Vitals struct {
	Energy             float64
	Age                int // Ticks alive
	FertileDevelopment int // Accumulator gating reproduction
	Alive              bool
	Cause              DeathCause // Set when Alive becomes false
}

// Kill marks the organism dead with the given cause. Only the first cause sticks.
func (v *Vitals) Kill(cause DeathCause) {
	if !v.Alive {
		return
	}
	v.Alive = false
	v.Cause = cause
}
