package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/evosim/components"
)

func newTestGrid(t *testing.T) (*SpatialGrid, *ecs.Map1[components.Position]) {
	t.Helper()
	w := ecs.NewWorld()
	return NewSpatialGrid(200, 100, 20), ecs.NewMap1[components.Position](w)
}

func TestSpatialGridNearest(t *testing.T) {
	grid, posMap := newTestGrid(t)

	positions := []components.Position{{X: 10, Y: 10}, {X: 30, Y: 10}, {X: 150, Y: 80}}
	var entities []ecs.Entity
	for i := range positions {
		e := posMap.NewEntity(&positions[i])
		grid.Insert(e, positions[i])
		entities = append(entities, e)
	}

	tests := []struct {
		name   string
		at     components.Position
		radius float64
		want   int // index into entities, -1 for none
	}{
		{"closest of two", components.Position{X: 25, Y: 10}, 50, 1},
		{"out of range", components.Position{X: 100, Y: 50}, 10, -1},
		{"far corner", components.Position{X: 140, Y: 80}, 15, 2},
		{"radius boundary inclusive", components.Position{X: 10, Y: 0}, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, ok := grid.Nearest(tt.at, tt.radius, posMap, nil)
			if tt.want < 0 {
				if ok {
					t.Errorf("expected no result, got %v", e)
				}
				return
			}
			if !ok || e != entities[tt.want] {
				t.Errorf("Nearest = %v (ok=%v), want %v", e, ok, entities[tt.want])
			}
		})
	}
}

func TestSpatialGridNearestAcceptFilter(t *testing.T) {
	grid, posMap := newTestGrid(t)

	near := components.Position{X: 50, Y: 50}
	far := components.Position{X: 60, Y: 50}
	eNear := posMap.NewEntity(&near)
	eFar := posMap.NewEntity(&far)
	grid.Insert(eNear, near)
	grid.Insert(eFar, far)

	e, d, ok := grid.Nearest(components.Position{X: 45, Y: 50}, 30, posMap, func(e ecs.Entity) bool {
		return e != eNear
	})
	if !ok || e != eFar {
		t.Fatalf("Nearest with filter = %v, want far entity", e)
	}
	if d != 15 {
		t.Errorf("distance = %v, want 15", d)
	}
}

func TestSpatialGridRemoveAndMove(t *testing.T) {
	grid, posMap := newTestGrid(t)

	p := components.Position{X: 5, Y: 5}
	e := posMap.NewEntity(&p)
	grid.Insert(e, p)

	// Move across several cells
	to := components.Position{X: 185, Y: 95}
	grid.Move(e, p, to)
	*posMap.Get(e) = to

	if _, _, ok := grid.Nearest(p, 10, posMap, nil); ok {
		t.Error("entity still found at old position")
	}
	if got, _, ok := grid.Nearest(to, 1, posMap, nil); !ok || got != e {
		t.Error("entity not found at new position")
	}

	if !grid.Remove(e, to) {
		t.Fatal("Remove returned false")
	}
	if grid.Remove(e, to) {
		t.Error("second Remove should return false")
	}
	if grid.Len() != 0 {
		t.Errorf("Len = %d, want 0", grid.Len())
	}
}

func TestSpatialGridOutOfBounds(t *testing.T) {
	grid, posMap := newTestGrid(t)

	// Children may land outside the world; they are kept in edge cells
	p := components.Position{X: -4, Y: 103}
	e := posMap.NewEntity(&p)
	grid.Insert(e, p)

	if got, _, ok := grid.Nearest(components.Position{X: 2, Y: 98}, 10, posMap, nil); !ok || got != e {
		t.Error("out-of-bounds entity not found from inside the world")
	}
	if got, _, ok := grid.Nearest(components.Position{X: -10, Y: 110}, 10, posMap, nil); !ok || got != e {
		t.Error("out-of-bounds entity not found from outside the world")
	}
}

func TestSpatialGridTieKeepsFirst(t *testing.T) {
	grid, posMap := newTestGrid(t)

	a := components.Position{X: 40, Y: 40}
	b := components.Position{X: 40, Y: 40}
	ea := posMap.NewEntity(&a)
	eb := posMap.NewEntity(&b)
	grid.Insert(ea, a)
	grid.Insert(eb, b)

	if got, _, _ := grid.Nearest(components.Position{X: 41, Y: 40}, 5, posMap, nil); got != ea {
		t.Errorf("tie resolved to %v, want first inserted %v", got, ea)
	}
}
