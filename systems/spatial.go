// Package systems provides the per-organism rules and the spatial index for the simulation.
package systems

import (
	"math"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/evosim/components"
)

// SpatialGrid provides neighbor lookups using a uniform cell grid.
// The world is bounded, not toroidal: positions outside the grid are stored
// in the nearest edge cell, so a query still finds them.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]ecs.Entity // flat grid of entity lists
	count    int
}

// NewSpatialGrid creates a spatial grid covering the given world size.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]ecs.Entity, cols*rows)
	for i := range cells {
		cells[i] = make([]ecs.Entity, 0, 4) // pre-allocate small capacity
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// CellSize returns the edge length of a grid cell.
func (g *SpatialGrid) CellSize() float64 {
	return g.cellSize
}

// Len returns the number of indexed entities.
func (g *SpatialGrid) Len() int {
	return g.count
}

// Clear removes all entities from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	g.count = 0
}

// Insert adds an entity to the grid at the given position.
func (g *SpatialGrid) Insert(e ecs.Entity, p components.Position) {
	idx := g.cellIndex(p.X, p.Y)
	g.cells[idx] = append(g.cells[idx], e)
	g.count++
}

// Remove deletes an entity indexed at the given position.
// Returns false if the entity was not found in that cell.
func (g *SpatialGrid) Remove(e ecs.Entity, p components.Position) bool {
	idx := g.cellIndex(p.X, p.Y)
	i := slices.Index(g.cells[idx], e)
	if i < 0 {
		return false
	}
	// Keep insertion order so ties resolve to the earliest entry
	g.cells[idx] = slices.Delete(g.cells[idx], i, i+1)
	g.count--
	return true
}

// Move re-indexes an entity after its position changed.
func (g *SpatialGrid) Move(e ecs.Entity, from, to components.Position) {
	if g.cellIndex(from.X, from.Y) == g.cellIndex(to.X, to.Y) {
		return
	}
	if g.Remove(e, from) {
		g.Insert(e, to)
	}
}

// Nearest returns the closest entity within radius of p for which accept
// returns true. Ties keep the first entity encountered. accept may be nil.
func (g *SpatialGrid) Nearest(
	p components.Position,
	radius float64,
	posMap *ecs.Map1[components.Position],
	accept func(ecs.Entity) bool,
) (ecs.Entity, float64, bool) {
	var (
		best     ecs.Entity
		bestDist = math.Inf(1)
		found    bool
	)
	if radius < 0 {
		return best, 0, false
	}

	minCol, maxCol := g.span(p.X-radius, p.X+radius, g.cols)
	minRow, maxRow := g.span(p.Y-radius, p.Y+radius, g.rows)

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, e := range g.cells[row*g.cols+col] {
				pos := posMap.Get(e)
				if pos == nil {
					continue
				}
				d := p.DistanceTo(*pos)
				if d > radius || d >= bestDist {
					continue
				}
				if accept != nil && !accept(e) {
					continue
				}
				best, bestDist, found = e, d, true
			}
		}
	}

	if !found {
		return best, 0, false
	}
	return best, bestDist, true
}

// span returns the clamped cell range covering [lo, hi].
func (g *SpatialGrid) span(lo, hi float64, n int) (int, int) {
	return clampInt(int(math.Floor(lo/g.cellSize)), 0, n-1),
		clampInt(int(math.Floor(hi/g.cellSize)), 0, n-1)
}

// cellIndex returns the flat index for a world position.
func (g *SpatialGrid) cellIndex(x, y float64) int {
	col := clampInt(int(math.Floor(x/g.cellSize)), 0, g.cols-1)
	row := clampInt(int(math.Floor(y/g.cellSize)), 0, g.rows-1)
	return row*g.cols + col
}
