package systems

import (
	"testing"

	"github.com/pthm-cable/evosim/components"
	"github.com/pthm-cable/evosim/config"
)

func TestAccrueFertilityImmature(t *testing.T) {
	rc := config.Default().Reproduction
	v := components.Vitals{Energy: 100, Age: 100, Alive: true}

	// 10% of 1000 is 100; age must exceed it
	if AccrueFertility(&v, 1000, rc) {
		t.Error("immature organism reproduced")
	}
	if v.FertileDevelopment != 0 || v.Energy != 100 {
		t.Errorf("immature organism accrued: %+v", v)
	}
}

func TestAccrueFertilityCycle(t *testing.T) {
	rc := config.Default().Reproduction
	v := components.Vitals{Energy: 1000, Age: 500, Alive: true}

	children := 0
	for tick := 1; tick <= 90; tick++ {
		if AccrueFertility(&v, 1000, rc) {
			children++
			if v.FertileDevelopment != 0 {
				t.Fatalf("tick %d: accumulator = %d after reproducing, want 0", tick, v.FertileDevelopment)
			}
		}
		if v.FertileDevelopment >= rc.Threshold {
			t.Fatalf("tick %d: accumulator %d left at or above threshold", tick, v.FertileDevelopment)
		}
	}
	if children != 3 {
		t.Errorf("children = %d, want 3", children)
	}
	if v.Energy != 1000-90 {
		t.Errorf("energy = %v, want %v", v.Energy, 1000-90)
	}
}

func TestAccrueFertilityLowEnergy(t *testing.T) {
	rc := config.Default().Reproduction
	v := components.Vitals{Energy: 30.9, Age: 500, FertileDevelopment: 10, Alive: true}

	if AccrueFertility(&v, 1000, rc) {
		t.Error("reproduced below minimum energy")
	}
	if v.FertileDevelopment != 10 || v.Energy != 30.9 {
		t.Errorf("low energy organism accrued: %+v", v)
	}
}

func TestAccrueFertilityOverflowYieldsOneChild(t *testing.T) {
	rc := config.Default().Reproduction
	v := components.Vitals{Energy: 20, Age: 500, FertileDevelopment: 65, Alive: true}

	if !AccrueFertility(&v, 1000, rc) {
		t.Fatal("expected reproduction")
	}
	if v.FertileDevelopment != 35 {
		t.Errorf("accumulator = %d, want 35", v.FertileDevelopment)
	}
}

func TestChildPositionJitter(t *testing.T) {
	rc := config.Default().Reproduction
	parent := components.Position{X: 100, Y: 100}

	lo := ChildPosition(parent, rc, scriptedRand{f: 0})
	if lo.X != 95 || lo.Y != 95 {
		t.Errorf("child at %+v, want {95 95}", lo)
	}
	mid := ChildPosition(parent, rc, scriptedRand{f: 0.5})
	if mid != parent {
		t.Errorf("child at %+v, want parent position", mid)
	}
}
