package telemetry

// LifetimeStats tracks per-organism statistics over its lifetime.
type LifetimeStats struct {
	BirthTick  int
	Generation int // 0 for seeded organisms

	Kills     int
	FoodEaten int
	Children  int

	// Energy
	PeakEnergy  float64
	TotalGained float64 // cumulative energy from food and prey
}

// LifetimeTracker manages per-organism lifetime statistics.
type LifetimeTracker struct {
	stats         map[uint64]*LifetimeStats
	maxGeneration int
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint64]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new organism.
func (lt *LifetimeTracker) Register(id uint64, birthTick, generation int) {
	lt.stats[id] = &LifetimeStats{
		BirthTick:  birthTick,
		Generation: generation,
	}
	if generation > lt.maxGeneration {
		lt.maxGeneration = generation
	}
}

// RegisterChild registers a child one generation below its parent.
func (lt *LifetimeTracker) RegisterChild(childID, parentID uint64, birthTick int) {
	gen := 1
	if s := lt.stats[parentID]; s != nil {
		s.Children++
		gen = s.Generation + 1
	}
	lt.Register(childID, birthTick, gen)
}

// Get returns the lifetime stats for an organism, or nil if not found.
func (lt *LifetimeTracker) Get(id uint64) *LifetimeStats {
	return lt.stats[id]
}

// Remove removes an organism's stats and returns them.
func (lt *LifetimeTracker) Remove(id uint64) *LifetimeStats {
	stats := lt.stats[id]
	delete(lt.stats, id)
	return stats
}

// RecordKill increments kill count and adds the harvested energy.
func (lt *LifetimeTracker) RecordKill(id uint64, energy float64) {
	if s := lt.stats[id]; s != nil {
		s.Kills++
		s.TotalGained += energy
	}
}

// RecordFood increments food count and adds the food energy.
func (lt *LifetimeTracker) RecordFood(id uint64, energy float64) {
	if s := lt.stats[id]; s != nil {
		s.FoodEaten++
		s.TotalGained += energy
	}
}

// UpdateEnergy tracks peak energy.
func (lt *LifetimeTracker) UpdateEnergy(id uint64, energy float64) {
	if s := lt.stats[id]; s != nil {
		if energy > s.PeakEnergy {
			s.PeakEnergy = energy
		}
	}
}

// Count returns the number of tracked organisms.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}

// MaxGeneration returns the deepest generation ever registered.
func (lt *LifetimeTracker) MaxGeneration() int {
	return lt.maxGeneration
}

// LiveMaxGeneration returns the deepest generation among tracked organisms.
func (lt *LifetimeTracker) LiveMaxGeneration() int {
	deepest := 0
	for _, s := range lt.stats {
		if s.Generation > deepest {
			deepest = s.Generation
		}
	}
	return deepest
}
