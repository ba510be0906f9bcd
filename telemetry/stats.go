package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a tick window.
type WindowStats struct {
	WindowStartTick int `csv:"-"`
	WindowEndTick   int `csv:"window_end"`

	// Population counts at window end
	Herbivores int `csv:"herbivores"`
	Predators  int `csv:"predators"`
	Food       int `csv:"food"`

	// Events during window
	HerbivoreBirths int `csv:"herb_births"`
	PredatorBirths  int `csv:"pred_births"`
	HerbivoreDeaths int `csv:"herb_deaths"`
	PredatorDeaths  int `csv:"pred_deaths"`

	// Deaths by cause
	Starved   int `csv:"starved"`
	DiedOfAge int `csv:"died_of_age"`
	Eaten     int `csv:"eaten"`

	// Feeding
	Kills           int     `csv:"kills"`
	EnergyHarvested float64 `csv:"energy_harvested"`
	FoodSpawned     int     `csv:"food_spawned"`
	FoodEaten       int     `csv:"food_eaten"`
	FoodEnergy      float64 `csv:"food_energy"`

	// Lineage
	MeanLifespan  float64 `csv:"mean_lifespan"`
	MaxGeneration int     `csv:"max_generation"`

	// Energy distribution (sampled at window end)
	HerbEnergyMean float64 `csv:"herb_energy_mean"`
	HerbEnergyP10  float64 `csv:"herb_energy_p10"`
	HerbEnergyP50  float64 `csv:"herb_energy_p50"`
	HerbEnergyP90  float64 `csv:"herb_energy_p90"`

	PredEnergyMean float64 `csv:"pred_energy_mean"`
	PredEnergyP10  float64 `csv:"pred_energy_p10"`
	PredEnergyP50  float64 `csv:"pred_energy_p50"`
	PredEnergyP90  float64 `csv:"pred_energy_p90"`

	// Trait distribution
	MetabolismMean float64 `csv:"metabolism_mean"`
	MetabolismStd  float64 `csv:"metabolism_std"`
	SenseMean      float64 `csv:"sense_mean"`
	SenseStd       float64 `csv:"sense_std"`
	ActivenessMean float64 `csv:"activeness_mean"`
	ActivenessStd  float64 `csv:"activeness_std"`
	SizeMean       float64 `csv:"size_mean"`
	SizeStd        float64 `csv:"size_std"`
}

// Population returns the total organism count at window end.
func (s WindowStats) Population() int {
	return s.Herbivores + s.Predators
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeEnergyStats calculates mean and percentiles from energy values.
func ComputeEnergyStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	// Sort for percentiles
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// TraitStats returns the mean and sample standard deviation of values.
// Empty input yields zeros; a single value has zero spread.
func TraitStats(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// HistogramBin is one bar of a trait histogram covering [Lo, Hi).
type HistogramBin struct {
	Lo    float64
	Hi    float64
	Count int
}

// TraitHistogram buckets values into bins of width binSize aligned to
// multiples of binSize. Empty input or a non-positive bin size yields nil.
func TraitHistogram(values []float64, binSize float64) []HistogramBin {
	if len(values) == 0 || binSize <= 0 {
		return nil
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	first := math.Floor(sorted[0] / binSize)
	last := math.Floor(floats.Max(sorted) / binSize)
	n := int(last-first) + 1

	dividers := make([]float64, n+1)
	for i := range dividers {
		dividers[i] = (first + float64(i)) * binSize
	}
	// Guard the edges against rounding in the division above
	dividers[0] = math.Min(dividers[0], sorted[0])
	dividers[n] = math.Max(dividers[n], math.Nextafter(sorted[len(sorted)-1], math.Inf(1)))

	counts := stat.Histogram(nil, dividers, sorted, nil)

	bins := make([]HistogramBin, n)
	for i := range bins {
		bins[i] = HistogramBin{
			Lo:    (first + float64(i)) * binSize,
			Hi:    (first + float64(i) + 1) * binSize,
			Count: int(counts[i]),
		}
	}
	return bins
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Int("herbivores", s.Herbivores),
		slog.Int("predators", s.Predators),
		slog.Int("food", s.Food),
		slog.Int("herb_births", s.HerbivoreBirths),
		slog.Int("pred_births", s.PredatorBirths),
		slog.Int("herb_deaths", s.HerbivoreDeaths),
		slog.Int("pred_deaths", s.PredatorDeaths),
		slog.Int("starved", s.Starved),
		slog.Int("died_of_age", s.DiedOfAge),
		slog.Int("eaten", s.Eaten),
		slog.Int("kills", s.Kills),
		slog.Float64("energy_harvested", s.EnergyHarvested),
		slog.Int("food_spawned", s.FoodSpawned),
		slog.Int("food_eaten", s.FoodEaten),
		slog.Float64("food_energy", s.FoodEnergy),
		slog.Float64("mean_lifespan", s.MeanLifespan),
		slog.Int("max_generation", s.MaxGeneration),
		slog.Float64("herb_energy_mean", s.HerbEnergyMean),
		slog.Float64("herb_energy_p50", s.HerbEnergyP50),
		slog.Float64("pred_energy_mean", s.PredEnergyMean),
		slog.Float64("pred_energy_p50", s.PredEnergyP50),
		slog.Float64("metabolism_mean", s.MetabolismMean),
		slog.Float64("sense_mean", s.SenseMean),
		slog.Float64("activeness_mean", s.ActivenessMean),
		slog.Float64("size_mean", s.SizeMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"herbivores", s.Herbivores,
		"predators", s.Predators,
		"food", s.Food,
		"herb_births", s.HerbivoreBirths,
		"pred_births", s.PredatorBirths,
		"herb_deaths", s.HerbivoreDeaths,
		"pred_deaths", s.PredatorDeaths,
		"starved", s.Starved,
		"died_of_age", s.DiedOfAge,
		"eaten", s.Eaten,
		"kills", s.Kills,
		"food_spawned", s.FoodSpawned,
		"food_eaten", s.FoodEaten,
		"mean_lifespan", s.MeanLifespan,
		"max_generation", s.MaxGeneration,
		"herb_energy_mean", s.HerbEnergyMean,
		"herb_energy_p10", s.HerbEnergyP10,
		"herb_energy_p50", s.HerbEnergyP50,
		"herb_energy_p90", s.HerbEnergyP90,
		"pred_energy_mean", s.PredEnergyMean,
		"pred_energy_p10", s.PredEnergyP10,
		"pred_energy_p50", s.PredEnergyP50,
		"pred_energy_p90", s.PredEnergyP90,
		"metabolism_mean", s.MetabolismMean,
		"metabolism_std", s.MetabolismStd,
		"sense_mean", s.SenseMean,
		"sense_std", s.SenseStd,
		"activeness_mean", s.ActivenessMean,
		"activeness_std", s.ActivenessStd,
		"size_mean", s.SizeMean,
		"size_std", s.SizeStd,
	)
}
