package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase identifies one stage of a simulation step.
type Phase uint8

const (
	PhaseFood Phase = iota
	PhaseOrganisms
	PhaseReap
	PhaseTelemetry
	phaseCount
)

var phaseNames = [phaseCount]string{"food", "organisms", "reap", "telemetry"}

func (p Phase) String() string {
	if p < phaseCount {
		return phaseNames[p]
	}
	return "unknown"
}

type tickSample struct {
	total     time.Duration
	phases    [phaseCount]time.Duration
	organisms int
}

// PerfCollector times step phases over a rolling window of ticks.
type PerfCollector struct {
	now func() time.Time

	samples []tickSample
	next    int
	filled  int

	current    tickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	return newPerfCollector(windowSize, time.Now)
}

func newPerfCollector(windowSize int, now func() time.Time) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		now:     now,
		samples: make([]tickSample, windowSize),
	}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.current = tickSample{}
	p.tickStart = p.now()
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := p.now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = true
}

// EndTick closes the tick. organisms is the number of organism updates it ran.
func (p *PerfCollector) EndTick(organisms int) {
	now := p.now()
	p.closePhase(now)
	p.inPhase = false

	p.current.total = now.Sub(p.tickStart)
	p.current.organisms = organisms
	p.samples[p.next] = p.current
	p.next = (p.next + 1) % len(p.samples)
	if p.filled < len(p.samples) {
		p.filled++
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.phase < phaseCount {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// PerfStats summarises the current window.
type PerfStats struct {
	Ticks int

	MeanTick time.Duration
	P95Tick  time.Duration
	MaxTick  time.Duration

	PhaseMean  [phaseCount]time.Duration
	PhaseShare [phaseCount]float64 // Percent of mean tick time

	TicksPerSecond   float64
	UpdatesPerSecond float64 // Organism updates per wall-clock second
}

// Stats computes the window summary. An empty window yields zeros.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	if p.filled == 0 {
		return s
	}
	s.Ticks = p.filled

	totals := make([]float64, p.filled)
	var phaseSum [phaseCount]time.Duration
	var sum time.Duration
	organisms := 0
	for i, sample := range p.samples[:p.filled] {
		totals[i] = float64(sample.total)
		sum += sample.total
		organisms += sample.organisms
		for ph, d := range sample.phases {
			phaseSum[ph] += d
		}
	}

	sort.Float64s(totals)
	n := time.Duration(p.filled)
	s.MeanTick = sum / n
	s.MaxTick = time.Duration(totals[len(totals)-1])
	s.P95Tick = time.Duration(stat.Quantile(0.95, stat.Empirical, totals, nil))

	for ph := range phaseSum {
		s.PhaseMean[ph] = phaseSum[ph] / n
		if s.MeanTick > 0 {
			s.PhaseShare[ph] = float64(s.PhaseMean[ph]) / float64(s.MeanTick) * 100
		}
	}

	if sum > 0 {
		s.TicksPerSecond = float64(p.filled) / sum.Seconds()
		s.UpdatesPerSecond = float64(organisms) / sum.Seconds()
	}
	return s
}

// LogStats logs the window summary.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("mean_tick_us", s.MeanTick.Microseconds()),
		slog.Int64("p95_tick_us", s.P95Tick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
		slog.Float64("updates_per_sec", s.UpdatesPerSecond),
	}
	for ph := Phase(0); ph < phaseCount; ph++ {
		attrs = append(attrs, slog.Float64(ph.String()+"_pct", s.PhaseShare[ph]))
	}
	return slog.GroupValue(attrs...)
}

// PerfRecord is one row of perf.csv.
type PerfRecord struct {
	WindowEnd     int     `csv:"window_end"`
	MeanTickUS    int64   `csv:"mean_tick_us"`
	P95TickUS     int64   `csv:"p95_tick_us"`
	MaxTickUS     int64   `csv:"max_tick_us"`
	TicksPerSec   float64 `csv:"ticks_per_sec"`
	UpdatesPerSec float64 `csv:"updates_per_sec"`
	FoodPct       float64 `csv:"food_pct"`
	OrganismsPct  float64 `csv:"organisms_pct"`
	ReapPct       float64 `csv:"reap_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// Record flattens the summary into a perf.csv row.
func (s PerfStats) Record(windowEnd int) PerfRecord {
	return PerfRecord{
		WindowEnd:     windowEnd,
		MeanTickUS:    s.MeanTick.Microseconds(),
		P95TickUS:     s.P95Tick.Microseconds(),
		MaxTickUS:     s.MaxTick.Microseconds(),
		TicksPerSec:   s.TicksPerSecond,
		UpdatesPerSec: s.UpdatesPerSecond,
		FoodPct:       s.PhaseShare[PhaseFood],
		OrganismsPct:  s.PhaseShare[PhaseOrganisms],
		ReapPct:       s.PhaseShare[PhaseReap],
		TelemetryPct:  s.PhaseShare[PhaseTelemetry],
	}
}
