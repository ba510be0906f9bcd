package telemetry

// PopulationPoint is one sample of the class counts.
type PopulationPoint struct {
	Tick       int `csv:"tick"`
	Predators  int `csv:"predators"`
	Herbivores int `csv:"herbivores"`
}

// Total returns the organism count of the sample.
func (p PopulationPoint) Total() int {
	return p.Predators + p.Herbivores
}

// PopulationHistory keeps the most recent population samples in a ring buffer.
type PopulationHistory struct {
	samples    []PopulationPoint
	writeIndex int
	count      int
}

// NewPopulationHistory creates a history holding up to size samples.
func NewPopulationHistory(size int) *PopulationHistory {
	if size < 1 {
		size = 1000
	}
	return &PopulationHistory{samples: make([]PopulationPoint, size)}
}

// Record appends a sample, overwriting the oldest once full.
func (h *PopulationHistory) Record(p PopulationPoint) {
	h.samples[h.writeIndex] = p
	h.writeIndex = (h.writeIndex + 1) % len(h.samples)
	if h.count < len(h.samples) {
		h.count++
	}
}

// Len returns the number of stored samples.
func (h *PopulationHistory) Len() int {
	return h.count
}

// Cap returns the maximum number of stored samples.
func (h *PopulationHistory) Cap() int {
	return len(h.samples)
}

// Latest returns the newest sample.
func (h *PopulationHistory) Latest() (PopulationPoint, bool) {
	if h.count == 0 {
		return PopulationPoint{}, false
	}
	i := (h.writeIndex - 1 + len(h.samples)) % len(h.samples)
	return h.samples[i], true
}

// Recent returns up to n of the newest samples, oldest first.
func (h *PopulationHistory) Recent(n int) []PopulationPoint {
	if n > h.count {
		n = h.count
	}
	if n <= 0 {
		return nil
	}
	out := make([]PopulationPoint, n)
	start := h.writeIndex - n + len(h.samples)
	for i := range out {
		out[i] = h.samples[(start+i)%len(h.samples)]
	}
	return out
}

// All returns every stored sample, oldest first.
func (h *PopulationHistory) All() []PopulationPoint {
	return h.Recent(h.count)
}
