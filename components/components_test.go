package components

import (
	"math"
	"testing"
)

func TestHeadingNormalized(t *testing.T) {
	h := Heading{X: 3, Y: 4}.Normalized()
	if math.Abs(h.X-0.6) > 1e-12 || math.Abs(h.Y-0.8) > 1e-12 {
		t.Errorf("Normalized() = %+v, want {0.6 0.8}", h)
	}
	if z := (Heading{}).Normalized(); z != (Heading{}) {
		t.Errorf("zero heading normalized to %+v", z)
	}
}

func TestCellOf(t *testing.T) {
	if c := CellOf(Position{X: 12.9, Y: 3.1}); c != (Cell{X: 12, Y: 3}) {
		t.Errorf("CellOf = %+v, want {12 3}", c)
	}
}

func TestVitalsKillKeepsFirstCause(t *testing.T) {
	v := Vitals{Energy: 10, Alive: true}
	v.Kill(CausePredation)
	v.Kill(CauseStarvation)
	if v.Alive {
		t.Error("still alive after Kill")
	}
	if v.Cause != CausePredation {
		t.Errorf("Cause = %v, want predation", v.Cause)
	}
}

func TestDeathCauseString(t *testing.T) {
	tests := []struct {
		cause DeathCause
		want  string
	}{
		{CauseNone, "none"},
		{CauseStarvation, "starvation"},
		{CauseOldAge, "old_age"},
		{CausePredation, "predation"},
		{DeathCause(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.cause.String(); got != tt.want {
			t.Errorf("DeathCause(%d).String() = %q, want %q", tt.cause, got, tt.want)
		}
	}
	if DeathCauseCount() != 4 {
		t.Errorf("DeathCauseCount() = %d, want 4", DeathCauseCount())
	}
}
