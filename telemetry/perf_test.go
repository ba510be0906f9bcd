package telemetry

import (
	"math"
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock { return &fakeClock{t: time.Unix(0, 0)} }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// runTick records one tick whose phases take the given durations.
func runTick(pc *PerfCollector, clock *fakeClock, organisms int, phases map[Phase]time.Duration) {
	pc.StartTick()
	for ph := Phase(0); ph < phaseCount; ph++ {
		pc.StartPhase(ph)
		clock.advance(phases[ph])
	}
	pc.EndTick(organisms)
}

func TestPerfCollectorPhases(t *testing.T) {
	clock := newFakeClock()
	pc := newPerfCollector(10, clock.now)

	for i := 0; i < 4; i++ {
		runTick(pc, clock, 50, map[Phase]time.Duration{
			PhaseFood:      100 * time.Microsecond,
			PhaseOrganisms: 800 * time.Microsecond,
			PhaseReap:      100 * time.Microsecond,
		})
	}

	s := pc.Stats()
	if s.Ticks != 4 {
		t.Errorf("Ticks = %d, want 4", s.Ticks)
	}
	if s.MeanTick != time.Millisecond {
		t.Errorf("MeanTick = %v, want 1ms", s.MeanTick)
	}
	if s.PhaseMean[PhaseOrganisms] != 800*time.Microsecond {
		t.Errorf("organisms mean = %v, want 800µs", s.PhaseMean[PhaseOrganisms])
	}

	tests := []struct {
		phase Phase
		want  float64
	}{
		{PhaseFood, 10},
		{PhaseOrganisms, 80},
		{PhaseReap, 10},
		{PhaseTelemetry, 0},
	}
	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			if got := s.PhaseShare[tt.phase]; math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("share = %f, want %f", got, tt.want)
			}
		})
	}

	if math.Abs(s.TicksPerSecond-1000) > 1e-6 {
		t.Errorf("TicksPerSecond = %f, want 1000", s.TicksPerSecond)
	}
	if math.Abs(s.UpdatesPerSecond-50000) > 1e-6 {
		t.Errorf("UpdatesPerSecond = %f, want 50000", s.UpdatesPerSecond)
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	clock := newFakeClock()
	pc := newPerfCollector(3, clock.now)

	// Two slow ticks fall out of the window
	for i := 0; i < 2; i++ {
		runTick(pc, clock, 1, map[Phase]time.Duration{PhaseOrganisms: 10 * time.Millisecond})
	}
	for i := 0; i < 3; i++ {
		runTick(pc, clock, 1, map[Phase]time.Duration{PhaseOrganisms: time.Millisecond})
	}

	s := pc.Stats()
	if s.Ticks != 3 {
		t.Errorf("Ticks = %d, want 3", s.Ticks)
	}
	if s.MaxTick != time.Millisecond {
		t.Errorf("MaxTick = %v, want 1ms", s.MaxTick)
	}
	if s.MeanTick != time.Millisecond {
		t.Errorf("MeanTick = %v, want 1ms", s.MeanTick)
	}
}

func TestPerfCollectorTail(t *testing.T) {
	clock := newFakeClock()
	pc := newPerfCollector(20, clock.now)

	for i := 0; i < 19; i++ {
		runTick(pc, clock, 1, map[Phase]time.Duration{PhaseOrganisms: time.Millisecond})
	}
	runTick(pc, clock, 1, map[Phase]time.Duration{PhaseOrganisms: 20 * time.Millisecond})

	s := pc.Stats()
	if s.MaxTick != 20*time.Millisecond {
		t.Errorf("MaxTick = %v, want 20ms", s.MaxTick)
	}
	if s.P95Tick != time.Millisecond {
		t.Errorf("P95Tick = %v, want 1ms", s.P95Tick)
	}
	if s.MeanTick <= time.Millisecond {
		t.Errorf("MeanTick = %v, want above 1ms", s.MeanTick)
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	s := NewPerfCollector(0).Stats()
	if s.Ticks != 0 || s.MeanTick != 0 || s.TicksPerSecond != 0 {
		t.Errorf("empty stats = %+v", s)
	}
}

func TestPerfStatsRecord(t *testing.T) {
	var s PerfStats
	s.MeanTick = 250 * time.Microsecond
	s.PhaseShare[PhaseOrganisms] = 80
	s.PhaseShare[PhaseReap] = 5

	row := s.Record(1000)
	if row.WindowEnd != 1000 || row.MeanTickUS != 250 {
		t.Errorf("row = %+v", row)
	}
	if row.OrganismsPct != 80 || row.ReapPct != 5 || row.FoodPct != 0 {
		t.Errorf("phase shares = %+v", row)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseReap.String() != "reap" || Phase(42).String() != "unknown" {
		t.Errorf("got %q, %q", PhaseReap.String(), Phase(42).String())
	}
}
