package components

// Body holds the age-dependent physical traits of an organism.
// Both fields are recomputed every tick.
type Body struct {
	Size  float64
	Speed float64 // Distance covered per tick
}
