package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeEnergyStats(t *testing.T) {
	values := []float64{100, 20, 30, 40, 50, 60, 70, 80, 90, 10}
	mean, p10, p50, p90 := ComputeEnergyStats(values)

	if math.Abs(mean-55) > 0.001 {
		t.Errorf("mean = %v, want 55", mean)
	}
	if math.Abs(p10-19) > 0.01 {
		t.Errorf("p10 = %v, want 19", p10)
	}
	if math.Abs(p50-55) > 0.01 {
		t.Errorf("p50 = %v, want 55", p50)
	}
	if math.Abs(p90-91) > 0.01 {
		t.Errorf("p90 = %v, want 91", p90)
	}

	// Input must not be reordered
	if values[0] != 100 {
		t.Error("ComputeEnergyStats sorted its input")
	}
}

func TestComputeEnergyStatsEmpty(t *testing.T) {
	mean, p10, p50, p90 := ComputeEnergyStats([]float64{})

	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestTraitStats(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		wantMean float64
		wantStd  float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{0.7}, 0.7, 0},
		{"pair", []float64{1, 3}, 2, math.Sqrt2},
		{"constant", []float64{5, 5, 5}, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std := TraitStats(tt.values)
			if math.Abs(mean-tt.wantMean) > 1e-9 || math.Abs(std-tt.wantStd) > 1e-9 {
				t.Errorf("TraitStats = (%v, %v), want (%v, %v)", mean, std, tt.wantMean, tt.wantStd)
			}
		})
	}
}

func TestTraitHistogram(t *testing.T) {
	values := []float64{25.5, 29, 31, 34.9, 41, 26}
	bins := TraitHistogram(values, 10)

	want := []HistogramBin{
		{Lo: 20, Hi: 30, Count: 3},
		{Lo: 30, Hi: 40, Count: 2},
		{Lo: 40, Hi: 50, Count: 1},
	}
	if len(bins) != len(want) {
		t.Fatalf("got %d bins %+v, want %d", len(bins), bins, len(want))
	}
	total := 0
	for i := range want {
		if bins[i] != want[i] {
			t.Errorf("bin %d = %+v, want %+v", i, bins[i], want[i])
		}
		total += bins[i].Count
	}
	if total != len(values) {
		t.Errorf("histogram holds %d values, want %d", total, len(values))
	}
}

func TestTraitHistogramFractionalBins(t *testing.T) {
	// Metabolism-style values on 0.1 bins; every value must land in some bin
	values := []float64{0.2, 0.3, 0.45, 0.7, 1.0, 1.29}
	bins := TraitHistogram(values, 0.1)

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != len(values) {
		t.Errorf("histogram holds %d values, want %d", total, len(values))
	}
}

func TestTraitHistogramEmpty(t *testing.T) {
	if bins := TraitHistogram(nil, 0.1); bins != nil {
		t.Errorf("empty input gave %+v", bins)
	}
	if bins := TraitHistogram([]float64{1}, 0); bins != nil {
		t.Errorf("zero bin size gave %+v", bins)
	}
}
