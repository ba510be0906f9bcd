package sim

// IDGenerator hands out monotonically increasing organism ids.
// Each Environment owns one; ids are never reused within a run.
type IDGenerator struct {
	next uint64
}

// NewIDGenerator creates a generator whose first id is start.
func NewIDGenerator(start uint64) *IDGenerator {
	return &IDGenerator{next: start}
}

// Next returns a fresh id.
func (g *IDGenerator) Next() uint64 {
	id := g.next
	g.next++
	return id
}

// Peek returns the id the next call to Next will return.
func (g *IDGenerator) Peek() uint64 {
	return g.next
}
